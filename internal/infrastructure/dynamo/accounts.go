package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bidhub-api/internal/domain"
)

// emailGuardPrefix keys the item that reserves an email in the accounts
// table. Guard items carry no email attribute, so the email index skips them.
const emailGuardPrefix = "email#"

// AccountRepo provides typed DynamoDB operations for the accounts table.
type AccountRepo struct {
	client    ItemAPI
	tableName string
}

func NewAccountRepo(client ItemAPI, tableName string) *AccountRepo {
	return &AccountRepo{client: client, tableName: tableName}
}

// Put inserts a new account together with its email guard in one
// transaction. Returns ErrConflict if the id or the email is taken.
func (r *AccountRepo) Put(ctx context.Context, a *domain.Account) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	guard := map[string]types.AttributeValue{
		"account_id": &types.AttributeValueMemberS{Value: emailGuardPrefix + a.Email},
		"owner_id":   &types.AttributeValueMemberS{Value: a.AccountID},
	}
	return putAllNew(ctx, r.client, r.tableName, "account_id", "account "+a.Email, item, guard)
}

func (r *AccountRepo) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return getOne[domain.Account](ctx, r.client, r.tableName, "account_id", accountID, "account")
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return queryOne[domain.Account](ctx, r.client, r.tableName, indexEmail, fieldEmail, email, "account")
}
