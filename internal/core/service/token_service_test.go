package service

import (
	"testing"
	"time"

	"github.com/arkelabs/user-management-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Email:    "alice@example.com",
		IsActive: true,
		Profile:  domain.Profile{Role: domain.RoleModerator},
	}
}

func newTestTokens(t *testing.T, accessTTL, refreshTTL time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(
		TokenConfig{Secret: "access-secret", TTL: accessTTL},
		TokenConfig{Secret: "refresh-secret", TTL: refreshTTL},
	)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return svc
}

func TestNewTokenService_MissingSecrets(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{}, TokenConfig{Secret: "r"}); err == nil {
		t.Fatalf("expected error for missing access secret")
	}
	if _, err := NewTokenService(TokenConfig{Secret: "a"}, TokenConfig{}); err == nil {
		t.Fatalf("expected error for missing refresh secret")
	}
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	svc := newTestTokens(t, time.Hour, time.Hour)

	token, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	claims, err := svc.ValidateAccess(token)
	if err != nil {
		t.Fatalf("ValidateAccess returned error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleModerator {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestTokenService_RefreshYieldsSubjectOnly(t *testing.T) {
	svc := newTestTokens(t, time.Hour, time.Hour)

	token, err := svc.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("IssueRefreshToken returned error: %v", err)
	}

	sub, err := svc.ValidateRefresh(token)
	if err != nil {
		t.Fatalf("ValidateRefresh returned error: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("unexpected subject: %s", sub)
	}
}

func TestTokenService_KindsAreNotInterchangeable(t *testing.T) {
	svc := newTestTokens(t, time.Hour, time.Hour)

	access, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}
	refresh, err := svc.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("IssueRefreshToken returned error: %v", err)
	}

	if _, err := svc.ValidateAccess(refresh); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken validating refresh token as access, got %v", err)
	}
	if _, err := svc.ValidateRefresh(access); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken validating access token as refresh, got %v", err)
	}
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	svc := newTestTokens(t, time.Nanosecond, time.Nanosecond)

	access, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}
	refresh, err := svc.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("IssueRefreshToken returned error: %v", err)
	}

	time.Sleep(time.Second + 10*time.Millisecond) // exp has 1s resolution

	if _, err := svc.ValidateAccess(access); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired access token, got %v", err)
	}
	if _, err := svc.ValidateRefresh(refresh); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired refresh token, got %v", err)
	}
}

func TestTokenService_GarbledTokenRejected(t *testing.T) {
	svc := newTestTokens(t, time.Hour, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateAccess(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	svc := newTestTokens(t, time.Hour, time.Hour)
	other, err := NewTokenService(
		TokenConfig{Secret: "different-access", TTL: time.Hour},
		TokenConfig{Secret: "different-refresh", TTL: time.Hour},
	)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("IssueAccessToken returned error: %v", err)
	}

	if _, err := other.ValidateAccess(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}
