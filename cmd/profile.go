package cmd

import (
	"context"

	"github.com/bnema/portal-cli/internal/adapters/render/console"
	"github.com/bnema/portal-cli/internal/application"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showProfile(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func showProfile(cmd *cobra.Command, app *app, asJSON bool) error {
	var profile application.Profile
	err := console.Progress{Output: cmd.ErrOrStderr(), Label: "Loading profile..."}.Run(cmd.Context(), func(ctx context.Context) error {
		var err error
		profile, err = app.service.Profile(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, profile)
	}
	rendered, err := app.renderProfile(profile)
	return writeRendered(cmd, rendered, err)
}
