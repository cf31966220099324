package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bidhub-api/internal/application/guard"
	"github.com/bidhub-api/internal/application/toast"
	"github.com/bidhub-api/internal/config"
	"github.com/bidhub-api/internal/infrastructure/awsconf"
	"github.com/bidhub-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/bidhub-api/internal/infrastructure/jwt"
	s3infra "github.com/bidhub-api/internal/infrastructure/s3"
	"github.com/bidhub-api/internal/pkg/logging"
	transporthttp "github.com/bidhub-api/internal/transport/http"
	"github.com/bidhub-api/internal/transport/http/handler"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.Setup(cfg.LogLevel, cfg.IsDevelopment())
	if envErr != nil {
		logger.Debug().Msg("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconf.Load(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("aws config")
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	if err := dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables); err != nil {
		logger.Fatal().Err(err).Msg("dynamodb bootstrap")
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("jwt provider")
	}

	routes, err := guard.LoadTable(cfg.RoutesFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("route table")
	}

	var shell handler.ShellSource
	if cfg.SPABucket != "" {
		store := s3infra.NewShellStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.SPABucket, cfg.SPAShellKey, s3infra.DefaultCacheTTL)
		logger.Info().Str("shell", store.Location()).Msg("serving spa shell from s3")
		shell = store
	}

	toastLogger := logger.With().Str("component", "toast").Logger()
	toasts := toast.NewQueue(toast.Config{
		DefaultDuration: cfg.Toast.DefaultDuration,
		Linger:          cfg.Toast.Linger,
		Logger:          &toastLogger,
	})
	defer toasts.Close()

	deps := &transporthttp.Deps{
		AccountRepo: dynamo.NewAccountRepo(dynamoClient, cfg.DynamoTables.Accounts),
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo: dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		JWTProvider: jwtProvider,
		Toasts:      toasts,
		Routes:      routes,
		Shell:       shell,
		Logger:      logger,
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.AppPort),
		Handler:           transporthttp.NewRouter(ctx, cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: /v1/toasts/stream holds the response open.
	}

	go func() {
		logger.Info().Str("port", cfg.AppPort).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	toasts.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
