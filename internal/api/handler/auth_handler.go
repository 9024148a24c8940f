package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/metrics"
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// AuthHandler handles the login and refresh endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns an access+refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many failed login attempts"})
		}
		// Wrong password, unknown email and internal faults all land here:
		// the client must not be able to tell them apart.
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         toUserResponse(user),
	})
}

// Refresh issues a new token pair from a valid refresh token. The token is
// validated by the RefreshGuard middleware before this handler runs; only
// the subject id survives into the context, so role and email are re-read
// from the store by the service.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Produce      json
// @Security     RefreshToken
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	subjectID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), subjectID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}

	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	return c.JSON(http.StatusOK, refreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
