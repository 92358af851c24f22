package ports

import (
	"context"

	"github.com/bnema/portal-cli/internal/domain"
)

type Navigator interface {
	Navigate(ctx context.Context, view domain.View) error
}

// Notifier shows a transient, dismissible message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Reloader re-runs the current view from scratch.
type Reloader interface {
	Reload(ctx context.Context) error
}
