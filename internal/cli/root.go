package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/taskhub/internal/db"
	"github.com/alexanderramin/taskhub/internal/server"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "taskhub" command. With no subcommand
// it launches the interactive TUI.
func NewRootCmd(app *App, notify *Notifier) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskhub",
		Short: "Task manager with an optimistic offline-tolerant cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("stdin is not a terminal; see taskhub --help for subcommands")
			}
			return RunTUI(app, notify)
		},
	}

	root.AddCommand(
		newServeCmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
	)
	return root
}

// newServeCmd runs the embedded task API server.
func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("no JWT secret configured; set TASKHUB_JWT_SECRET")
			}

			conn, err := db.Open(cfg.DBPath, server.Schema)
			if err != nil {
				return fmt.Errorf("opening server database: %w", err)
			}
			defer conn.Close()

			srv := server.New(server.NewStore(conn), cfg.JWTSecret, cfg.TokenTTL)
			fmt.Fprintf(cmd.OutOrStdout(), "taskhub api listening on %s\n", cfg.Addr)
			return srv.Router().Run(cfg.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			token, err := app.Remote.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := app.Guard.SetCredential(ctx, token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			token, err := app.Remote.Register(ctx, username, email, password)
			if err != nil {
				return err
			}
			if err := app.Guard.SetCredential(ctx, token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created.")
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Guard.ForceLogout(context.Background())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
