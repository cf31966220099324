package http

import (
	"context"

	"github.com/bidhub-api/internal/domain"
	"github.com/bidhub-api/internal/transport/http/handler"
)

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Put(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) error
}

// SessionRepository is the minimal interface the router requires from a session store.
type SessionRepository interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Disable(ctx context.Context, sessionID string) error
}

// ToastQueue is the process-wide notification queue: the HTTP surface plus
// the convenience wrappers the admin bootstrap uses.
type ToastQueue interface {
	handler.ToastQueue
	handler.Notifier
}
