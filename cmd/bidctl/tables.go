package main

import (
	"fmt"

	"github.com/bidhub-api/internal/infrastructure/dynamo"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Create the DynamoDB tables and indexes if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := backend(cmd.Context())
		if err != nil {
			return err
		}
		if err := dynamo.Bootstrap(cmd.Context(), client, cfg.DynamoTables); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tables ready: %s, %s, %s\n",
			cfg.DynamoTables.Accounts, cfg.DynamoTables.Users, cfg.DynamoTables.Sessions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
