package main

import (
	"errors"
	"fmt"
	"os"

	s3infra "github.com/bidhub-api/internal/infrastructure/s3"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Manage the SPA shell document served for page routes",
}

var shellPublishCmd = &cobra.Command{
	Use:   "publish <index.html>",
	Short: "Upload a new shell document to SPA_BUCKET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.SPABucket == "" {
			return errors.New("SPA_BUCKET is not set")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		awsCfg, _, err := backend(cmd.Context())
		if err != nil {
			return err
		}
		store := s3infra.NewShellStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.SPABucket, cfg.SPAShellKey, 0)
		if err := store.Publish(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", store.Location())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.AddCommand(shellPublishCmd)
}
