package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLogoutCmd(app *app) *cobra.Command {
	var localOnly bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !localOnly {
				_, err := app.service.Logout(cmd.Context())
				switch {
				case errors.Is(err, domain.ErrSessionRequired):
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "No active session.")
					return err
				case err != nil:
					return err
				}
			} else if err := app.service.ClearLocalSession(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}

	cmd.Flags().BoolVar(&localOnly, "local", false, "Only forget the local session, without calling the server")

	return cmd
}
