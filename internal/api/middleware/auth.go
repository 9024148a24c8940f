package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/metrics"
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// Context keys populated by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// Auth validates the access token and injects the caller's identity into
// the echo context. The subject is re-resolved against the store on every
// request: role and email come from the current record, not from the token,
// so a stale token cannot grant a role the user no longer holds. Every
// failure collapses to a generic 401.
func Auth(tokens ports.TokenService, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("access").Inc()
				return err
			}

			claims, err := tokens.ValidateAccess(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("access").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := repo.FindByID(c.Request().Context(), claims.Subject)
			if err != nil || !user.IsActive {
				if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
					c.Logger().Error(err)
				}
				metrics.AuthRejectionsTotal.WithLabelValues("access").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxEmail, user.Email)
			c.Set(CtxRole, user.Role())

			return next(c)
		}
	}
}

// RefreshGuard validates the refresh token and injects only the subject id.
// Role and email are deliberately not extracted here; the refresh flow
// re-derives them from the store before minting new tokens.
func RefreshGuard(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("refresh").Inc()
				return err
			}

			sub, err := tokens.ValidateRefresh(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("refresh").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, sub)

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	return parts[1], nil
}
