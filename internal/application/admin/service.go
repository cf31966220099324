package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bidhub-api/internal/application/account"
	"github.com/bidhub-api/internal/config"
	"github.com/bidhub-api/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Kind classifies the result of InitAdmin.
type Kind string

const (
	KindExists  Kind = "exists"
	KindCreated Kind = "created"
	KindFailed  Kind = "failed"
)

// Outcome is the tri-state result of an admin bootstrap run.
type Outcome struct {
	Kind  Kind
	Email string
	Err   error
}

// Message is the human-readable summary sent back to callers.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindExists:
		return "Admin account already exists"
	case KindCreated:
		return "Admin account created successfully"
	default:
		if o.Err != nil {
			return o.Err.Error()
		}
		return "admin bootstrap failed"
	}
}

type Service interface {
	InitAdmin(ctx context.Context) Outcome
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) error
}

type accountCreator interface {
	Create(ctx context.Context, in account.CreateInput) (*domain.Account, error)
}

type ServiceDeps struct {
	Users    userStore
	Accounts accountCreator
	Admin    config.Admin
	Logger   *zerolog.Logger
}

type service struct {
	// mu serializes bootstrap runs so concurrent requests see each other's writes.
	mu       sync.Mutex
	users    userStore
	accounts accountCreator
	admin    config.Admin
	logger   zerolog.Logger
}

func NewService(deps ServiceDeps) Service {
	logger := log.With().Str("component", "admin").Logger()
	if deps.Logger != nil {
		logger = *deps.Logger
	}
	return &service{users: deps.Users, accounts: deps.Accounts, admin: deps.Admin, logger: logger}
}

// InitAdmin makes sure the fixed administrator exists. It never returns an
// error directly; failures are reported through Outcome.
func (s *service) InitAdmin(ctx context.Context) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := account.NormalizeEmail(s.admin.Email)
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Info().Str("email", email).Msg("admin account already exists")
		return Outcome{Kind: KindExists, Email: email}
	case !errors.Is(err, domain.ErrNotFound):
		return s.fail(fmt.Errorf("look up admin user: %w", err))
	}

	acc, err := s.accounts.Create(ctx, account.CreateInput{
		Email:          email,
		Password:       s.admin.Password,
		EmailConfirmed: true,
		Metadata: map[string]string{
			"full_name": s.admin.FullName,
			"role":      domain.RoleAdmin,
		},
	})
	if err != nil {
		return s.fail(fmt.Errorf("create admin account: %w", err))
	}
	if acc == nil {
		return s.fail(errors.New("failed to create admin user"))
	}

	err = s.users.Insert(ctx, &domain.User{
		UserID:    acc.AccountID,
		Email:     acc.Email,
		FullName:  s.admin.FullName,
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return s.fail(fmt.Errorf("insert admin user record: %w", err))
	}

	s.logger.Info().Str("email", acc.Email).Str("account_id", acc.AccountID).Msg("admin account created")
	return Outcome{Kind: KindCreated, Email: acc.Email}
}

func (s *service) fail(err error) Outcome {
	s.logger.Error().Err(err).Msg("admin bootstrap failed")
	return Outcome{Kind: KindFailed, Err: err}
}
