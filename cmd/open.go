package cmd

import (
	"fmt"

	"github.com/bnema/portal-cli/internal/adapters/render/console"
	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newOpenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Check the session and open the home view for your role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			guard := application.NewSessionGuard(
				app.resolver,
				console.NewNavigator(cmd.ErrOrStderr()),
				console.NewNotifier(cmd.ErrOrStderr()),
				app.sleeper,
				app.logger,
			)
			guard.SettleDelay = app.settings.SettleDelay
			guard.ExpiryDelay = app.settings.ExpiryDelay

			result, err := guard.Run(cmd.Context())
			if err != nil {
				return err
			}

			switch result.Target {
			case domain.ViewUserList:
				return showUserPage(cmd, app, 1, app.settings.PageSize, "", false)
			case domain.ViewDashboard:
				return showProfile(cmd, app, false)
			default:
				return fmt.Errorf("run `portal login` first: %w", domain.ErrSessionRequired)
			}
		},
	}
}
