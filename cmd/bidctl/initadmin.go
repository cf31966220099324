package main

import (
	"encoding/json"
	"fmt"

	"github.com/bidhub-api/internal/application/account"
	"github.com/bidhub-api/internal/application/admin"
	"github.com/bidhub-api/internal/infrastructure/dynamo"
	"github.com/bidhub-api/internal/transport/http/handler"
	"github.com/spf13/cobra"
)

var initAdminOpts struct {
	bootstrap bool
}

var initAdminCmd = &cobra.Command{
	Use:   "init-admin",
	Short: "Create the administrator account if it does not exist",
	Long: `Create the fixed administrator account (ADMIN_EMAIL / ADMIN_PASSWORD).

Prints the same JSON body as POST /v1/init-admin and exits 1 when the
bootstrap fails.

Examples:
  # Create the admin against LocalStack, provisioning tables first
  AWS_ENDPOINT_URL=http://localhost:4566 bidctl init-admin --bootstrap`,
	RunE: runInitAdmin,
}

func init() {
	rootCmd.AddCommand(initAdminCmd)

	initAdminCmd.Flags().BoolVar(&initAdminOpts.bootstrap, "bootstrap", false,
		"Create missing DynamoDB tables before running")
}

func runInitAdmin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, client, err := backend(ctx)
	if err != nil {
		return err
	}
	if initAdminOpts.bootstrap {
		if err := dynamo.Bootstrap(ctx, client, cfg.DynamoTables); err != nil {
			return err
		}
	}

	svc := admin.NewService(admin.ServiceDeps{
		Users:    dynamo.NewUserRepo(client, cfg.DynamoTables.Users),
		Accounts: account.NewService(dynamo.NewAccountRepo(client, cfg.DynamoTables.Accounts), 0),
		Admin:    cfg.Admin,
		Logger:   &logger,
	})
	out := svc.InitAdmin(ctx)

	_, body := handler.InitAdminResponse(out)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if out.Kind == admin.KindFailed {
		return exitCodeError{code: 1}
	}
	return nil
}
