package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bidhub-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateInput describes an account created through the admin API.
type CreateInput struct {
	Email          string
	Password       string
	EmailConfirmed bool
	Metadata       map[string]string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
}

type accountStore interface {
	Put(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type service struct {
	accounts accountStore
	cost     int
}

// NewService returns the credential store backed by accounts. A zero cost
// uses bcrypt.DefaultCost.
func NewService(accounts accountStore, cost int) Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{accounts: accounts, cost: cost}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.Account, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password required: %w", domain.ErrBadRequest)
	}

	_, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("account %s: %w", email, domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := &domain.Account{
		AccountID:      uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		EmailConfirmed: in.EmailConfirmed,
		Metadata:       in.Metadata,
		Enable:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.accounts.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	a, err := s.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if !a.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return a, nil
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
