package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/portal-cli/internal/adapters/render/console"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newUsersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse and manage users (admin)",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersGetCmd(app),
		newUsersUpdateCmd(app),
		newUsersDeleteCmd(app),
	)

	return cmd
}

func newUsersListCmd(app *app) *cobra.Command {
	var page int
	var limit int
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users one page at a time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = app.settings.PageSize
			}
			return showUserPage(cmd, app, page, limit, search, asJSON)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "Users per page (defaults to users.page_size)")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or email")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func showUserPage(cmd *cobra.Command, app *app, page, limit int, search string, asJSON bool) error {
	var result domain.UserPage
	err := console.Progress{Output: cmd.ErrOrStderr(), Label: "Loading users..."}.Run(cmd.Context(), func(ctx context.Context) error {
		var err error
		result, err = app.service.ListUsers(ctx, page, limit, search)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, result)
	}
	rendered, err := app.renderUserPage(result, search)
	return writeRendered(cmd, rendered, err)
}

func newUsersGetCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.service.GetUser(cmd.Context(), domain.UserID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, user)
			}
			rendered, err := app.renderUser(user)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

var editableUserFlags = map[string]string{
	"first-name": "firstName",
	"last-name":  "lastName",
	"email":      "email",
	"role":       "role",
	"contact":    "contactNumber",
	"gender":     "gender",
}

func newUsersUpdateCmd(app *app) *cobra.Command {
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Change fields of a user; only changed fields are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := app.service.GetUser(cmd.Context(), domain.UserID(args[0]))
			if err != nil {
				return err
			}

			edited := original
			for flagName, field := range editableUserFlags {
				if !cmd.Flags().Changed(flagName) {
					continue
				}
				if err := edited.ApplyField(field, *values[flagName]); err != nil {
					return err
				}
			}

			patch, err := app.service.UpdateUser(cmd.Context(), original, edited)
			if errors.Is(err, domain.ErrNothingToUpdate) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update.")
				return err
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", original.ID, strings.Join(patch.Fields(), ", "))
			return err
		},
	}

	for flagName := range editableUserFlags {
		value := new(string)
		values[flagName] = value
		cmd.Flags().StringVar(value, flagName, "", "New "+strings.ReplaceAll(flagName, "-", " "))
	}

	return cmd
}

func newUsersDeleteCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.UserID(args[0])
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete user %s?", id))
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
					return err
				}
			}

			result, err := app.service.DeleteUser(cmd.Context(), id)
			if err != nil {
				return err
			}

			message := result.Message
			if message == "" {
				message = "Deleted " + string(id)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
