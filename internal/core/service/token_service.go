package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// TokenConfig carries the signing material for one token kind.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenService signs and verifies HS256 access and refresh tokens. Expiry
// lives inside the token; nothing is tracked server-side.
type TokenService struct {
	access  TokenConfig
	refresh TokenConfig
}

// NewTokenService builds a TokenService. It fails when either secret is
// empty; a missing secret must never fall back to a predictable value.
func NewTokenService(access, refresh TokenConfig) (*TokenService, error) {
	if access.Secret == "" {
		return nil, errors.New("token service: access token secret is not set")
	}
	if refresh.Secret == "" {
		return nil, errors.New("token service: refresh token secret is not set")
	}
	if access.TTL <= 0 {
		access.TTL = 15 * time.Minute
	}
	if refresh.TTL <= 0 {
		refresh.TTL = 7 * 24 * time.Hour
	}
	return &TokenService{access: access, refresh: refresh}, nil
}

// IssueAccessToken mints a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	return s.sign(user, s.access)
}

// IssueRefreshToken mints a refresh token for the user.
func (s *TokenService) IssueRefreshToken(user *domain.User) (string, error) {
	return s.sign(user, s.refresh)
}

// IssuePair mints an access+refresh token pair from the same claim set.
func (s *TokenService) IssuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccess verifies signature and expiry of an access token and
// returns its claim set. The caller is expected to re-resolve the subject
// against the store before trusting role or email for anything.
func (s *TokenService) ValidateAccess(token string) (*ports.Claims, error) {
	claims, err := s.parse(token, s.access.Secret)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &ports.Claims{Subject: sub, Email: email, Role: domain.Role(role)}, nil
}

// ValidateRefresh verifies signature and expiry of a refresh token and
// returns only the subject id.
func (s *TokenService) ValidateRefresh(token string) (string, error) {
	claims, err := s.parse(token, s.refresh.Secret)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}

func (s *TokenService) sign(user *domain.User, cfg TokenConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role()),
		"iat":   now.Unix(),
		"exp":   now.Add(cfg.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.Secret))
}

func (s *TokenService) parse(token, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
