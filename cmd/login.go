package cmd

import (
	"fmt"
	"strings"

	authadapter "github.com/bnema/portal-cli/internal/adapters/auth"
	"github.com/bnema/portal-cli/internal/config"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var userName string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a user name and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				entered, err := promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
				password = entered
			}

			record, err := app.service.Login(cmd.Context(), userName, password)
			if err != nil {
				return err
			}

			role := domain.ParseRole(record.Role)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s). Run `portal open` to continue to %s.\n", record.UserName, role, domain.HomeFor(role))
			return err
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "User name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")
	_ = cmd.MarkFlagRequired("user")

	cmd.AddCommand(newLoginGoogleCmd(app))

	return cmd
}

func newLoginGoogleCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "google",
		Short: "Sign in with Google in the browser",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGoogleLogin(cmd, app)
		},
	}
}

func runGoogleLogin(cmd *cobra.Command, app *app) error {
	clientID := strings.TrimSpace(app.cfg.GetString(config.GoogleClientIDKey))
	if clientID == "" {
		return fmt.Errorf("%s is not configured", config.GoogleClientIDKey)
	}

	state := authadapter.NewState()
	server, err := authadapter.StartCallbackServer(app.settings.GoogleListen, state, app.jar)
	if err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}

	authURL, err := authadapter.BuildGoogleRedirectURL(authadapter.GoogleRedirectRequest{
		ClientID:    clientID,
		CallbackURL: app.cfg.GetString(config.GoogleCallbackURLKey),
		State:       state,
	})
	if err != nil {
		_ = server.Close()
		return fmt.Errorf("build google redirect url: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to sign in with Google:\n%s\nWaiting for the redirect back to %s\n", authURL, server.RedirectURI())

	if _, err := server.WaitForSession(cmd.Context(), app.settings.GoogleTimeout); err != nil {
		return fmt.Errorf("wait for sign-in callback: %w", err)
	}

	record, err := app.resolver.ResolveRecord(cmd.Context())
	if err != nil {
		return err
	}
	if record == nil || record.Credential() == nil {
		return fmt.Errorf("sign-in callback: %w", domain.ErrSessionRequired)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in with Google (%s).\n", domain.ParseRole(record.Role))
	return err
}
