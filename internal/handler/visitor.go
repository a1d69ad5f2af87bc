package handler

import (
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/labstack/echo/v4"
)

type VisitorHandler struct {
	Handler
	visitors *service.VisitorService
}

func NewVisitorHandler(s *server.Server, visitors *service.VisitorService) *VisitorHandler {
	return &VisitorHandler{Handler: NewHandler(s), visitors: visitors}
}

// CheckVisitors counts the visit and returns the new total.
func (h *VisitorHandler) CheckVisitors(c echo.Context, _ *model.VisitorCountRequest) (*model.VisitorCountResponse, error) {
	return h.visitors.Hit(c.Request().Context())
}
