package domain

import "time"

// Account holds sign-in credentials. Profile data lives in User.
type Account struct {
	AccountID      string            `json:"id" dynamodbav:"account_id"`
	Email          string            `json:"email" dynamodbav:"email"`
	PasswordHash   string            `json:"-" dynamodbav:"password_hash"`
	EmailConfirmed bool              `json:"email_confirmed" dynamodbav:"email_confirmed"`
	Metadata       map[string]string `json:"user_metadata,omitempty" dynamodbav:"metadata"`
	Enable         bool              `json:"enable" dynamodbav:"enable"`
	CreatedAt      time.Time         `json:"created" dynamodbav:"created_at"`
}
