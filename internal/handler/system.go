package handler

import (
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// SystemHandler serves the API root.
type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{Handler: NewHandler(s)}
}

// PingRequest has no parameters.
type PingRequest struct{}

func (*PingRequest) Rules() validation.Rules { return nil }

// Ping answers GET /api with a fixed HTML fragment.
func (h *SystemHandler) Ping(c echo.Context, _ *PingRequest) (string, error) {
	return "<h4>API is working</h4>", nil
}
