package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/middleware"
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

type stubUserService struct {
	user  *domain.User
	users []*domain.User
	err   error

	gotID     string
	gotFilter ports.UserFilter
	gotCreate ports.CreateUserInput
	gotUpdate ports.UpdateUserInput
}

func (s *stubUserService) Create(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
	s.gotCreate = input
	return s.user, s.err
}

func (s *stubUserService) FindAll(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	s.gotFilter = filter
	return s.users, s.err
}

func (s *stubUserService) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.gotID = id
	return s.user, s.err
}

func (s *stubUserService) Update(_ context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	s.gotID = id
	s.gotUpdate = input
	return s.user, s.err
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	s.gotID = id
	return s.err
}

func (s *stubUserService) Activate(_ context.Context, id string) (*domain.User, error) {
	s.gotID = id
	return s.user, s.err
}

func (s *stubUserService) Deactivate(_ context.Context, id string) (*domain.User, error) {
	s.gotID = id
	return s.user, s.err
}

func (s *stubUserService) EnsureDefaultAdmin(_ context.Context, _, _ string) error {
	return s.err
}

func request(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newUserEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestUserHandler_Create(t *testing.T) {
	e := newUserEcho()
	svc := &stubUserService{user: sampleUser()}
	h := NewUserHandler(svc)

	body := `{"username":"erin","email":"Erin@Example.com","password":"secret1",
		"profile":{"role":"ADMIN","first_name":"Erin"}}`
	c, rec := request(e, http.MethodPost, "/users", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotCreate.Email != "Erin@Example.com" || svc.gotCreate.Profile.Role != domain.RoleAdmin {
		t.Fatalf("input not forwarded: %+v", svc.gotCreate)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked into response: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	e := newUserEcho()
	h := NewUserHandler(&stubUserService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@b.com","password":"secret1"}`},
		{"bad email", `{"username":"x","email":"nope","password":"secret1"}`},
		{"short password", `{"username":"x","email":"a@b.com","password":"abc"}`},
		{"unknown role", `{"username":"x","email":"a@b.com","password":"secret1","profile":{"role":"OVERLORD"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := request(e, http.MethodPost, "/users", tc.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUserHandler_Create_EmailConflict(t *testing.T) {
	e := newUserEcho()
	h := NewUserHandler(&stubUserService{err: domain.ErrEmailInUse})

	body := `{"username":"erin","email":"erin@example.com","password":"secret1"}`
	c, rec := request(e, http.MethodPost, "/users", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_List_ParsesFilters(t *testing.T) {
	e := newUserEcho()
	svc := &stubUserService{users: []*domain.User{sampleUser()}}
	h := NewUserHandler(svc)

	c, rec := request(e, http.MethodGet, "/users?email=erin&role=ADMIN&is_active=false&search=er", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	f := svc.gotFilter
	if f.Email != "erin" || f.Role != domain.RoleAdmin || f.SearchTerm != "er" {
		t.Fatalf("filter not forwarded: %+v", f)
	}
	if f.IsActive == nil || *f.IsActive {
		t.Fatalf("expected is_active=false, got %+v", f.IsActive)
	}

	var resp []userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "u-1" {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestUserHandler_Get(t *testing.T) {
	e := newUserEcho()
	svc := &stubUserService{user: sampleUser()}
	h := NewUserHandler(svc)

	c, rec := request(e, http.MethodGet, "/users/u-1", "")
	c.SetParamNames("id")
	c.SetParamValues("u-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.gotID != "u-1" {
		t.Fatalf("expected 200 for u-1, got %d (%s)", rec.Code, svc.gotID)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newUserEcho()
	h := NewUserHandler(&stubUserService{err: domain.ErrUserNotFound})

	c, rec := request(e, http.MethodGet, "/users/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUserHandler_Profile(t *testing.T) {
	e := newUserEcho()
	svc := &stubUserService{user: sampleUser()}
	h := NewUserHandler(svc)

	c, rec := request(e, http.MethodGet, "/users/profile", "")
	c.Set(middleware.CtxUserID, "u-1")

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.gotID != "u-1" {
		t.Fatalf("expected own record lookup, got %d (%s)", rec.Code, svc.gotID)
	}
}

func TestUserHandler_Profile_MissingClaims(t *testing.T) {
	e := newUserEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := request(e, http.MethodGet, "/users/profile", "")

	err := h.Profile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Update(t *testing.T) {
	e := newUserEcho()
	svc := &stubUserService{user: sampleUser()}
	h := NewUserHandler(svc)

	c, rec := request(e, http.MethodPatch, "/users/u-1", `{"username":"renamed","profile":{"phone":"555"}}`)
	c.SetParamNames("id")
	c.SetParamValues("u-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotUpdate.Username == nil || *svc.gotUpdate.Username != "renamed" {
		t.Fatalf("username patch not forwarded: %+v", svc.gotUpdate)
	}
	if svc.gotUpdate.Email != nil {
		t.Fatalf("absent field must stay nil: %+v", svc.gotUpdate)
	}
	if svc.gotUpdate.Profile == nil || svc.gotUpdate.Profile.Phone == nil || *svc.gotUpdate.Profile.Phone != "555" {
		t.Fatalf("profile patch not forwarded: %+v", svc.gotUpdate.Profile)
	}
}

func TestUserHandler_Update_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"email conflict", domain.ErrEmailInUse, http.StatusConflict},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newUserEcho()
			h := NewUserHandler(&stubUserService{err: tc.err})

			c, rec := request(e, http.MethodPatch, "/users/u-1", `{"username":"x"}`)
			c.SetParamNames("id")
			c.SetParamValues("u-1")

			if err := h.Update(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestUserHandler_ActivateDeactivate(t *testing.T) {
	e := newUserEcho()

	t.Run("activate already active", func(t *testing.T) {
		h := NewUserHandler(&stubUserService{err: domain.ErrUserAlreadyActive})
		c, rec := request(e, http.MethodPut, "/users/activate/u-1", "")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		if err := h.Activate(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("deactivate", func(t *testing.T) {
		svc := &stubUserService{user: sampleUser()}
		h := NewUserHandler(svc)
		c, rec := request(e, http.MethodPut, "/users/deactivate/u-1", "")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		if err := h.Deactivate(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK || svc.gotID != "u-1" {
			t.Fatalf("expected 200 for u-1, got %d (%s)", rec.Code, svc.gotID)
		}
	})
}

func TestUserHandler_Delete(t *testing.T) {
	e := newUserEcho()

	t.Run("success", func(t *testing.T) {
		h := NewUserHandler(&stubUserService{})
		c, rec := request(e, http.MethodDelete, "/users/u-1", "")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		if err := h.Delete(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewUserHandler(&stubUserService{err: domain.ErrUserNotFound})
		c, rec := request(e, http.MethodDelete, "/users/ghost", "")
		c.SetParamNames("id")
		c.SetParamValues("ghost")

		if err := h.Delete(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
