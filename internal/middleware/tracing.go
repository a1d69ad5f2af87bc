package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/portfolio-api/internal/server"
)

// TracingMiddleware opens a New Relic transaction per request and labels it
// with the portfolio resource, the caller and the outcome. Without a New
// Relic application both middlewares pass requests through.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{server: s, nrApp: nrApp}
}

func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing decorates the current transaction. Caller attributes are
// added after next returns because the admin gate runs per route, inside it.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			for key, value := range requestAttributes(c, tm.server.Config.Primary.Env) {
				txn.AddAttribute(key, value)
			}

			err := next(c)

			for key, value := range callerAttributes(c) {
				txn.AddAttribute(key, value)
			}
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}

func requestAttributes(c echo.Context, env string) map[string]any {
	attrs := map[string]any{
		"http.real_ip":        c.RealIP(),
		"http.user_agent":     c.Request().UserAgent(),
		"service.environment": env,
		"portfolio.route":     c.Path(),
		"portfolio.resource":  resourceOf(c.Path()),
	}
	if requestID := GetRequestID(c); requestID != "" {
		attrs["request.id"] = requestID
	}
	return attrs
}

func callerAttributes(c echo.Context) map[string]any {
	claims := GetClaims(c)
	if claims == nil {
		return map[string]any{"auth.verified": false}
	}
	return map[string]any{
		"auth.verified": true,
		"auth.admin":    claims.Admin,
		"user.id":       claims.UID,
	}
}

// resourceOf names the API resource of a route pattern:
// "/api/blogs/:id" -> "blogs", "/api" -> "root", "/status" -> "status".
func resourceOf(route string) string {
	segments := strings.Split(strings.Trim(route, "/"), "/")
	switch {
	case segments[0] == "":
		return "unknown"
	case segments[0] != "api":
		return segments[0]
	case len(segments) == 1:
		return "root"
	}
	return segments[1]
}
