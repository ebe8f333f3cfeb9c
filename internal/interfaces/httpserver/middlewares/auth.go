package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/infrastructure/auth"
	"swipehub/session-api/internal/interfaces/httpserver/responses"
	"swipehub/session-api/internal/utils/platformerrors"
)

const claimsContextKey = "claims"

// AuthMiddleware verifies the bearer token and stores its claims for the
// handler. Identity comes only from the verified token; request bodies
// never stand in for it.
func AuthMiddleware(issuer *auth.Issuer, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authorization token is required")
			return
		}

		claims, err := issuer.Verify(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			logger.Warn().Err(err).
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("token verification failed")
			responses.HandleError(c, err, "unauthorized")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims, if any.
func ClaimsFromContext(c *gin.Context) (session.Claims, bool) {
	val, ok := c.Get(claimsContextKey)
	if !ok {
		return session.Claims{}, false
	}
	claims, ok := val.(session.Claims)
	return claims, ok
}
