package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/metrics"
	"github.com/arkelabs/user-management-api/internal/core/domain"
)

// RBAC enforces role-based access control on routes. Declaring no roles
// means the route is open to any authenticated caller. When roles are
// declared, a missing caller role is a denial, never an implicit allow.
// The 403 is distinct from the 401s issued by Auth: the caller is known,
// just insufficiently privileged.
func RBAC(requiredRoles ...domain.Role) echo.MiddlewareFunc {
	required := make(map[domain.Role]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		required[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(required) == 0 {
				return next(c)
			}

			role, ok := c.Get(CtxRole).(domain.Role)
			if !ok || role == "" {
				metrics.RBACDenialsTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "missing role information")
			}

			if _, allowed := required[role]; !allowed {
				metrics.RBACDenialsTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient privileges")
			}

			return next(c)
		}
	}
}
