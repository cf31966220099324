package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bidhub-api/internal/application/toast"
	"github.com/bidhub-api/internal/transport/http/handler"
	"github.com/spf13/cobra"
)

var apiOpts struct {
	server string
	token  string
}

var toastSendOpts struct {
	title    string
	kind     string
	duration int
}

var toastsCmd = &cobra.Command{
	Use:   "toasts",
	Short: "Inspect and drive the running server's notification queue",
	Long: `Talk to a running API server. The bearer token comes from --token or
BIDCTL_TOKEN; obtain one with "bidctl login".`,
}

var toastsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the toasts currently on screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		var env handler.ToastListEnvelope
		if err := api().do(cmd.Context(), http.MethodGet, "/v1/toasts", nil, &env); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderToasts(env.Data, time.Now()))
		return nil
	},
}

var toastsSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Enqueue a toast",
	Long: `Enqueue a toast on the server queue.

Examples:
  bidctl toasts send "Tender uploaded" --type success
  bidctl toasts send "Index rebuild running" --title Knowledge --duration 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := toast.Options{
			Title:   toastSendOpts.title,
			Message: args[0],
			Type:    toast.Severity(toastSendOpts.kind),
		}
		if cmd.Flags().Changed("duration") {
			body.Duration = &toastSendOpts.duration
		}
		var created handler.ToastCreatedEnvelope
		if err := api().do(cmd.Context(), http.MethodPost, "/v1/toasts", body, &created); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "toast %d queued\n", created.ID)
		return nil
	},
}

var toastsDismissCmd = &cobra.Command{
	Use:   "dismiss <id>",
	Short: "Hide a toast; unknown ids are ignored by the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid toast id %q", args[0])
		}
		return api().do(cmd.Context(), http.MethodDelete, fmt.Sprintf("/v1/toasts/%d", id), nil, nil)
	},
}

var loginOpts struct {
	email    string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and print a bearer token",
	Long: `Sign in against the running server and print the bearer token.

Examples:
  export BIDCTL_TOKEN=$(bidctl login --email admin@example.com --password admin123456)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginOpts.email == "" {
			loginOpts.email = cfg.Admin.Email
		}
		if loginOpts.password == "" {
			loginOpts.password = cfg.Admin.Password
		}
		var env handler.AuthEnvelope
		body := map[string]string{"email": loginOpts.email, "password": loginOpts.password}
		if err := api().do(cmd.Context(), http.MethodPost, "/v1/sessions/login", body, &env); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), env.Bearer)
		return nil
	},
}

func api() *apiClient {
	token := apiOpts.token
	if token == "" {
		token = os.Getenv("BIDCTL_TOKEN")
	}
	return newAPIClient(apiOpts.server, token)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiOpts.server, "server", "http://localhost:3000", "API server base URL")
	rootCmd.PersistentFlags().StringVar(&apiOpts.token, "token", "", "Bearer token (default $BIDCTL_TOKEN)")

	rootCmd.AddCommand(toastsCmd, loginCmd)
	toastsCmd.AddCommand(toastsListCmd, toastsSendCmd, toastsDismissCmd)

	toastsSendCmd.Flags().StringVar(&toastSendOpts.title, "title", "", "Toast title")
	toastsSendCmd.Flags().StringVarP(&toastSendOpts.kind, "type", "t", "info", "Severity: success, error, warning, info")
	toastsSendCmd.Flags().IntVarP(&toastSendOpts.duration, "duration", "d", 0, "Auto-dismiss after this many ms; 0 keeps it until dismissed (default: server default)")

	loginCmd.Flags().StringVar(&loginOpts.email, "email", "", "Account email (default $ADMIN_EMAIL)")
	loginCmd.Flags().StringVar(&loginOpts.password, "password", "", "Account password (default $ADMIN_PASSWORD)")
}
