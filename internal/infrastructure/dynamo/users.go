package dynamo

import (
	"context"

	"github.com/bidhub-api/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
type UserRepo struct {
	client    ItemAPI
	tableName string
}

func NewUserRepo(client ItemAPI, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Insert writes a new user record. Returns ErrConflict if the id is taken.
func (r *UserRepo) Insert(ctx context.Context, u *domain.User) error {
	return putNew(ctx, r.client, r.tableName, "user_id", u, "user")
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	return getOne[domain.User](ctx, r.client, r.tableName, "user_id", userID, "user")
}

// GetByEmail returns the user with the given email via the email GSI, or
// ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return queryOne[domain.User](ctx, r.client, r.tableName, indexEmail, fieldEmail, email, "user")
}
