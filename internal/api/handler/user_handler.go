package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/metrics"
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user management operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new user.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "email already in use"})
		}
		if errors.Is(err, domain.ErrEmailRequired) || errors.Is(err, domain.ErrInvalidRole) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List returns users matching the optional query filters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email      query     string  false  "Partial email match"
// @Param        username   query     string  false  "Partial username match"
// @Param        name       query     string  false  "Partial profile name match"
// @Param        role       query     string  false  "Exact role match"  Enums(USER, MODERATOR, SUPPORT, ADMIN)
// @Param        is_active  query     bool    false  "Activation state"
// @Param        search     query     string  false  "Free search across email, username and names"
// @Success      200        {array}   userResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.UserFilter{
		Email:       c.QueryParam("email"),
		Username:    c.QueryParam("username"),
		ProfileName: c.QueryParam("name"),
		Role:        domain.Role(c.QueryParam("role")),
		SearchTerm:  c.QueryParam("search"),
	}
	switch c.QueryParam("is_active") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	users, err := h.service.FindAll(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// Get returns a single user by id. This endpoint is admin-facing, so
// disclosing existence through a 404 is acceptable here. Login, in
// contrast, never reveals whether an email is registered.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Profile returns the authenticated caller's own record.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.FindByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial update to a user.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		if errors.Is(err, domain.ErrEmailInUse) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "email already in use"})
		}
		if errors.Is(err, domain.ErrInvalidRole) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Activate re-enables a user account.
//
// @Summary      Activate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /users/activate/{id} [put]
func (h *UserHandler) Activate(c echo.Context) error {
	user, err := h.service.Activate(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		if errors.Is(err, domain.ErrUserAlreadyActive) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "user is already active"})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("activate").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Deactivate disables a user account. Their tokens stop validating on the
// next request because access-token validation re-resolves the subject.
//
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /users/deactivate/{id} [put]
func (h *UserHandler) Deactivate(c echo.Context) error {
	user, err := h.service.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		if errors.Is(err, domain.ErrUserAlreadyInactive) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "user is already inactive"})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("deactivate").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user permanently.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
