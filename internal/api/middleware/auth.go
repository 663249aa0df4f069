package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/neuronet-health/neuronet/internal/api/metrics"
	"github.com/neuronet-health/neuronet/internal/core/domain"
	"github.com/neuronet-health/neuronet/internal/core/ports"
)

// Auth validates the bearer JWT and injects its claims into context under
// "user_id", "email", and "role". Rejections are counted and, when a sink is
// provided, recorded in the audit trail. A nil sink disables auditing.
func Auth(jwtSecret string, audit ports.AuditSink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				reject(audit, "", "missing_header")
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				reject(audit, "", "bad_header")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				// The email claim is unverified here but still useful for
				// correlating rejected tokens in the trail.
				email, _ := claims["email"].(string)
				reject(audit, email, "invalid_token")
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}

			c.Set("user_id", claims["sub"])
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])

			return next(c)
		}
	}
}

func reject(audit ports.AuditSink, actor, reason string) {
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	if audit == nil {
		return
	}
	audit.Enqueue(domain.AuditEvent{
		Actor:   actor,
		Action:  domain.AuditTokenRejected,
		Outcome: domain.OutcomeFailure,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}
