package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bidhub-api/internal/domain"
	jwtinfra "github.com/bidhub-api/internal/infrastructure/jwt"
	"github.com/bidhub-api/internal/pkg/id"
	"github.com/rs/zerolog/log"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Bearer    string
	ExpiresAt time.Time
	Session   *domain.Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error)
	Lookup(ctx context.Context, token string) (*domain.Session, error)
}

type authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Disable(ctx context.Context, sessionID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type tokenProvider interface {
	Sign(accountID, role, sessionID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type ServiceDeps struct {
	Accounts    authenticator
	SessionRepo sessionStore
	UserRepo    userStore
	Tokens      tokenProvider
	TTL         time.Duration
}

type service struct {
	accounts    authenticator
	sessionRepo sessionStore
	userRepo    userStore
	tokens      tokenProvider
	ttl         time.Duration
	now         func() time.Time
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts:    deps.Accounts,
		sessionRepo: deps.SessionRepo,
		userRepo:    deps.UserRepo,
		tokens:      deps.Tokens,
		ttl:         deps.TTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	acc, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.RoleUser
	u, err := s.userRepo.Get(ctx, acc.AccountID)
	switch {
	case err == nil:
		role = u.Role
	case errors.Is(err, domain.ErrNotFound):
		u = nil
	default:
		return nil, err
	}

	now := s.now()
	expires := now.Add(s.ttl)
	sess := &domain.Session{
		SessionID: id.New(),
		AccountID: acc.AccountID,
		Role:      role,
		Enable:    true,
		ExpiresAt: expires.Unix(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.tokens.Sign(acc.AccountID, role, sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	sess.User = u
	return &LoginResult{Bearer: bearer, ExpiresAt: expires, Session: sess}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Disable(ctx, sessionID)
}

func (s *service) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.active(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.Get(ctx, sess.AccountID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	sess.User = u
	return sess, nil
}

// Lookup resolves a bearer token to its live session. An invalid token or a
// disabled or expired session yields (nil, nil); only store failures are
// returned as errors.
func (s *service) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("rejected session token")
		return nil, nil
	}
	sess, err := s.active(ctx, claims.SessionID)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnauthorized):
		return nil, nil
	default:
		return nil, err
	}
}

func (s *service) active(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable || sess.ExpiresAt <= s.now().Unix() {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	return sess, nil
}
