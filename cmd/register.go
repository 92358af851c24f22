package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/graphql"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var input graphql.RegistrationInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and send a verification code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input.PassWord == "" {
				password, err := promptLine(cmd, "Password: ")
				if err != nil {
					return err
				}
				input.PassWord = password
				input.ConfirmPassword = password
			}
			if input.ConfirmPassword == "" {
				input.ConfirmPassword = input.PassWord
			}

			id, err := app.service.Register(cmd.Context(), input)
			if err != nil {
				if errors.Is(err, domain.ErrConflict) {
					return fmt.Errorf("account already exists: %w", err)
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Check your email and run `portal verify-otp --otp <code>`.\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&input.UserName, "user-name", "", "User name used to sign in")
	cmd.Flags().StringVar(&input.PassWord, "password", "", "Password (prompted when empty)")
	cmd.Flags().StringVar(&input.ConfirmPassword, "confirm-password", "", "Password confirmation (defaults to --password)")
	cmd.Flags().StringVar(&input.ContactNumber, "contact", "", "Contact number")
	cmd.Flags().StringVar(&input.Gender, "gender", "", "Gender")
	for _, name := range []string{"first-name", "last-name", "email", "user-name", "contact", "gender"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newVerifyOTPCmd(app *app) *cobra.Command {
	var userID string
	var otp int

	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Confirm a registration with the emailed code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.service.VerifyOTP(cmd.Context(), userID, otp)
			if err != nil {
				return err
			}

			message := result.Message
			if message == "" {
				message = "Account verified"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s. You can now run `portal login`.\n", message)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "id", "", "Registered user ID (defaults to the last registration)")
	cmd.Flags().IntVar(&otp, "otp", 0, "Verification code")
	_ = cmd.MarkFlagRequired("otp")

	return cmd
}
