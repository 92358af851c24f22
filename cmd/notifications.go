package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bnema/portal-cli/internal/adapters/push"
	"github.com/bnema/portal-cli/internal/adapters/render/console"
	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/cobra"
)

type reloaderFunc func(ctx context.Context) error

func (f reloaderFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

func newNotificationsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Receive and inspect push notifications",
	}

	cmd.AddCommand(
		newNotificationsListenCmd(app),
		newNotificationsListCmd(app),
		newNotificationsRegisterCmd(app),
	)

	return cmd
}

func newNotificationsListenCmd(app *app) *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Show notifications as they arrive and refresh the inbox after each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			token, err := sessionToken(ctx, app)
			if err != nil {
				return err
			}

			feedURL, err := push.FeedURL(app.settings.NotificationsURL)
			if err != nil {
				return err
			}

			ctx, cancelFeed := context.WithCancelCause(ctx)
			defer cancelFeed(nil)

			listener := application.NewNotificationListener(
				&push.Feed{URL: feedURL, AuthToken: token, Logger: app.logger, Closed: cancelFeed},
				console.NewNotifier(cmd.ErrOrStderr()),
				reloaderFunc(func(ctx context.Context) error {
					return showInbox(ctx, cmd, app, token, false)
				}),
				app.logger,
			)
			listener.ReloadDelay = app.settings.ReloadDelay

			unsubscribe, err := listener.Subscribe(ctx, nil)
			if err != nil {
				return err
			}
			defer unsubscribe()

			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Listening for notifications. Press Ctrl+C to stop.")
			<-ctx.Done()
			if cause := context.Cause(ctx); errors.Is(cause, push.ErrFeedClosed) {
				return cause
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "for", 0, "Stop listening after this long (0 listens until interrupted)")

	return cmd
}

func newNotificationsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := sessionToken(cmd.Context(), app)
			if err != nil {
				return err
			}
			return showInbox(cmd.Context(), cmd, app, token, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")

	return cmd
}

func newNotificationsRegisterCmd(app *app) *cobra.Command {
	var deviceToken string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a device token for push notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			credential, err := app.resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			if !credential.Valid() {
				return domain.ErrSessionRequired
			}
			userID := credential.UserIDOrEmpty()
			if userID == "" {
				return errors.New("session has no user id; sign in again")
			}

			if err := app.inbox.RegisterDeviceToken(cmd.Context(), deviceToken, userID, credential.Token); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Device token registered.")
			return err
		},
	}

	cmd.Flags().StringVar(&deviceToken, "token", "", "Device token issued by the push provider")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func showInbox(ctx context.Context, cmd *cobra.Command, app *app, token string, asJSON bool) error {
	notifications, err := app.inbox.ListNotifications(ctx, token)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, notifications)
	}
	rendered, err := app.renderInbox(notifications)
	return writeRendered(cmd, rendered, err)
}

func sessionToken(ctx context.Context, app *app) (string, error) {
	credential, err := app.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}
	if !credential.Valid() {
		return "", domain.ErrSessionRequired
	}
	return credential.Token, nil
}
