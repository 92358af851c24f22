package ports

import (
	"context"

	"github.com/bnema/portal-cli/internal/domain"
)

// Gateway posts a query document to the remote endpoint and hands back the
// response untouched. An empty TargetURL selects the default endpoint.
type Gateway interface {
	Send(ctx context.Context, envelope domain.RequestEnvelope) (*domain.RawResponse, error)
}

// PushChannel delivers foreground push messages to handler until the
// returned stop function is called or ctx ends.
type PushChannel interface {
	OnMessage(ctx context.Context, handler func(domain.NotificationEvent)) (stop func(), err error)
}
