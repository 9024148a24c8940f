package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arkelabs/user-management-api/internal/api/middleware"
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

type stubAuthService struct {
	loginPair   *ports.TokenPair
	loginUser   *domain.User
	loginErr    error
	refreshPair *ports.TokenPair
	refreshErr  error

	gotEmail    string
	gotPassword string
	gotSubject  string
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	s.gotEmail = email
	s.gotPassword = password
	return s.loginPair, s.loginUser, s.loginErr
}

func (s *stubAuthService) Refresh(_ context.Context, subjectID string) (*ports.TokenPair, error) {
	s.gotSubject = subjectID
	return s.refreshPair, s.refreshErr
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:           "u-1",
		Email:        "erin@example.com",
		Username:     "erin",
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		Profile:      domain.Profile{Role: domain.RoleUser, FirstName: "Erin"},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	svc := &stubAuthService{
		loginPair: &ports.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
		loginUser: sampleUser(),
	}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/login", `{"email":"erin@example.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotEmail != "erin@example.com" || svc.gotPassword != "secret1" {
		t.Fatalf("credentials not forwarded: %s/%s", svc.gotEmail, svc.gotPassword)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AccessToken != "acc" || resp.RefreshToken != "ref" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if resp.User.ID != "u-1" || resp.User.Email != "erin@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked into response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_FailuresAreIndistinguishable(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	// Unknown email, wrong password and backend faults all surface as the
	// same generic 401 body.
	for _, loginErr := range []error{domain.ErrInvalidCredentials, context.DeadlineExceeded} {
		h := NewAuthHandler(&stubAuthService{loginErr: loginErr})

		c, rec := postJSON(e, "/auth/login", `{"email":"erin@example.com","password":"wrongpw"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Error != "invalid credentials" {
			t.Fatalf("expected generic message, got %q", resp.Error)
		}
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrTooManyAttempts})

	c, rec := postJSON(e, "/auth/login", `{"email":"erin@example.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"missing email", `{"password":"secret1"}`},
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"short password", `{"email":"erin@example.com","password":"abc"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := postJSON(e, "/auth/login", tc.body)
			if err := h.Login(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	e := echo.New()

	svc := &stubAuthService{refreshPair: &ports.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/refresh", "")
	c.Set(middleware.CtxUserID, "u-1")

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotSubject != "u-1" {
		t.Fatalf("subject not forwarded, got %q", svc.gotSubject)
	}

	var resp refreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AccessToken != "acc2" || resp.RefreshToken != "ref2" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_Refresh_MissingSubject(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := postJSON(e, "/auth/refresh", "")

	err := h.Refresh(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Refresh_Failure(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{refreshErr: domain.ErrInvalidCredentials})

	c, rec := postJSON(e, "/auth/refresh", "")
	c.Set(middleware.CtxUserID, "gone")

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
