package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "portal",
		Short:         "Portal CLI: sign in and manage portal users from the terminal",
		Long:          "portal signs you in to the portal services, keeps your session between runs, and lets admins browse, edit and delete users.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRegisterCmd(app),
		newVerifyOTPCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newOpenCmd(app),
		newProfileCmd(app),
		newUsersCmd(app),
		newNotificationsCmd(app),
	)

	return rootCmd
}
