package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"3000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	AWSRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpointURL string `env:"AWS_ENDPOINT_URL"` // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string `env:"AWS_SECRET_ACCESS_KEY"`
	DynamoTables   DynamoTables

	SPABucket   string `env:"SPA_BUCKET"` // empty serves the built-in shell
	SPAShellKey string `env:"SPA_SHELL_KEY" envDefault:"index.html"`

	JWTPrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH" envDefault:"./private_key.pem"`
	JWTPublicKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH" envDefault:"./public_key.pem"`
	JWTExpiry         time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CookieSecure   bool     `env:"COOKIE_SECURE" envDefault:"false"`
	RoutesFile     string   `env:"ROUTES_FILE"` // empty uses the embedded route table
	TrustProxy     bool     `env:"TRUST_PROXY" envDefault:"false"` // honour X-Forwarded-For / X-Real-Ip

	Admin Admin
	Toast Toast
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts string `env:"DYNAMO_TABLE_ACCOUNTS" envDefault:"accounts"`
	Users    string `env:"DYNAMO_TABLE_USERS" envDefault:"users"`
	Sessions string `env:"DYNAMO_TABLE_SESSIONS" envDefault:"sessions"`
}

// Admin is the fixed account created by the init-admin bootstrap.
type Admin struct {
	Email    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"admin123456"`
	FullName string `env:"ADMIN_FULL_NAME" envDefault:"Admin"`
}

// Toast tunes the in-process notification queue.
type Toast struct {
	DefaultDuration time.Duration `env:"TOAST_DEFAULT_DURATION" envDefault:"3s"`
	Linger          time.Duration `env:"TOAST_LINGER" envDefault:"300ms"`
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
