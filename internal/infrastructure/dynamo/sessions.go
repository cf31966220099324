package dynamo

import (
	"context"
	"time"

	"github.com/bidhub-api/internal/domain"
)

// SessionRepo provides typed DynamoDB operations for the sessions table.
type SessionRepo struct {
	client    ItemAPI
	tableName string
}

func NewSessionRepo(client ItemAPI, tableName string) *SessionRepo {
	return &SessionRepo{client: client, tableName: tableName}
}

func (r *SessionRepo) Put(ctx context.Context, s *domain.Session) error {
	return putNew(ctx, r.client, r.tableName, "session_id", s, "session")
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return getOne[domain.Session](ctx, r.client, r.tableName, "session_id", sessionID, "session")
}

// Disable marks the session as logged out. The row itself expires via TTL.
func (r *SessionRepo) Disable(ctx context.Context, sessionID string) error {
	return update(ctx, r.client, r.tableName, "session_id", sessionID, map[string]interface{}{
		fieldEnable:    false,
		fieldUpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
