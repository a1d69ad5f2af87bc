// Package router builds the echo instance: global middleware in order,
// the error handler, and every route.
package router

import (
	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/deppfellow/portfolio-api/internal/middleware"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the application's echo instance.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
		mw.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerAPIRoutes(api, s, h, mw)

	return router
}
