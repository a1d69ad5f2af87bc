package router

import (
	"net/http"

	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the health endpoint and the API root.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/api", handler.HandleHTML(h.System.Handler, h.System.Ping, http.StatusOK, &handler.PingRequest{}))
}
