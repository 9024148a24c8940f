package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
)

// AuthService implements the login and refresh flows on top of the user
// store and the token service. It holds no per-session state: token
// validity is signature + expiry, nothing else.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// WithThrottle enables a failed-attempt limiter on the login flow.
func (s *AuthService) WithThrottle(throttle ports.LoginThrottle) *AuthService {
	s.throttle = throttle
	return s
}

// Login verifies the credentials and issues an access+refresh token pair.
// Every failure mode (unknown email, wrong password, inactive account,
// internal fault) surfaces as ErrInvalidCredentials; the real cause is
// logged for diagnostics only.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if s.throttledOut(ctx, email) {
		return nil, nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("login: user lookup failed")
		}
		return nil, nil, s.failLogin(ctx, email)
	}

	if !user.IsActive {
		s.log.Debug().Str("user_id", user.ID).Msg("login: inactive account")
		return nil, nil, s.failLogin(ctx, email)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, nil, s.failLogin(ctx, email)
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("login: token issuance failed")
		return nil, nil, s.failLogin(ctx, email)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login: throttle reset failed")
		}
	}

	return pair, user, nil
}

// Refresh re-resolves the subject's current identity and issues a brand-new
// token pair. Role and email are taken from the store, so a role change
// after the refresh token was minted is picked up here. The password is
// never re-checked.
func (s *AuthService) Refresh(ctx context.Context, subjectID string) (*ports.TokenPair, error) {
	user, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("refresh: user lookup failed")
		}
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("refresh: token issuance failed")
		return nil, domain.ErrInvalidCredentials
	}

	return pair, nil
}

// throttledOut asks the limiter whether this email is over the
// failed-attempt budget. Limiter outages fail open: a broken counter must
// not lock everyone out.
func (s *AuthService) throttledOut(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.TooManyAttempts(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login: throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) failLogin(ctx context.Context, email string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login: throttle record failed")
		}
	}
	return domain.ErrInvalidCredentials
}
