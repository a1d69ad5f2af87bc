package middleware

import (
	"strings"
	"time"

	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/lib/identity"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/labstack/echo/v4"
)

// ClaimsKey stores the verified *identity.Claims on the echo context.
const ClaimsKey = "claims"

// AuthMiddleware gates routes behind a verified admin identity token.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAdmin reads "Authorization: Bearer <token>", verifies the token and
// requires the admin claim.
//
//   - no token: 401 "No token provided"
//   - verification error or empty claims: 401 "Invalid token"
//   - valid token without the admin claim: 403 "Unauthorized"
//
// On success the claims are stored under ClaimsKey and the caller's uid
// under UserIDKey.
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c).With().Str("function", "RequireAdmin").Logger()

		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			logger.Warn().Dur("duration", time.Since(start)).Msg("missing bearer token")
			return errs.NewUnauthorizedError("No token provided", true)
		}

		claims, err := auth.server.Verifier.VerifyToken(c.Request().Context(), token)
		if err != nil || claims == nil {
			logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("token verification failed")
			return errs.NewUnauthorizedError("Invalid token", true)
		}

		if !claims.Admin {
			logger.Warn().
				Str("user_id", claims.UID).
				Dur("duration", time.Since(start)).
				Msg("caller lacks admin claim")
			return errs.NewForbiddenError("Unauthorized", true)
		}

		setClaims(c, claims)

		logger.Info().
			Str("user_id", claims.UID).
			Dur("duration", time.Since(start)).
			Msg("admin authenticated successfully")

		return next(c)
	}
}

func setClaims(c echo.Context, claims *identity.Claims) {
	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UID)

	enriched := GetLogger(c).With().Str("user_id", claims.UID).Logger()
	c.Set(LoggerKey, &enriched)
}

// GetClaims returns the claims set by RequireAdmin, or nil.
func GetClaims(c echo.Context) *identity.Claims {
	if claims, ok := c.Get(ClaimsKey).(*identity.Claims); ok {
		return claims
	}
	return nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
