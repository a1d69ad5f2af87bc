package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/middleware"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its stores are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

// dependencies lists the configured checks for the stores this server
// actually holds.
func (h *HealthHandler) dependencies(cfg *config.HealthChecksConfig) []dependencyCheck {
	var deps []dependencyCheck
	if h.server.DB != nil && slices.Contains(cfg.Checks, "firestore") {
		deps = append(deps, dependencyCheck{name: "firestore", ping: h.server.DB.Ping})
	}
	if h.server.Blobs != nil && slices.Contains(cfg.Checks, "blob_storage") {
		deps = append(deps, dependencyCheck{name: "blob_storage", ping: h.server.Blobs.Ping})
	}
	return deps
}

// CheckHealth answers GET /status: 200 when every check passes, 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	if obs == nil {
		obs = config.DefaultObservabilityConfig()
	}

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !obs.HealthChecks.Enabled {
		return c.JSON(http.StatusOK, response)
	}

	isHealthy := true
	for _, dep := range h.dependencies(&obs.HealthChecks) {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		depStart := time.Now()
		err := dep.ping(ctx)
		cancel()

		if err != nil {
			isHealthy = false
			checks[dep.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(depStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", dep.name).
				Dur("response_time", time.Since(depStart)).
				Msg("health check failed")

			h.server.LoggerService.RecordEvent("HealthCheckError", map[string]any{
				"check_type":       dep.name,
				"operation":        "health_check",
				"error_type":       dep.name + "_unhealthy",
				"response_time_ms": time.Since(depStart).Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[dep.name] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(depStart).String(),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
