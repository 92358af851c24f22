package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
)

// Navigator prints each navigation and remembers the last target view.
type Navigator struct {
	out     io.Writer
	mu      sync.Mutex
	current domain.View
}

var _ ports.Navigator = (*Navigator)(nil)

func NewNavigator(out io.Writer) *Navigator {
	return &Navigator{out: out}
}

func (n *Navigator) Navigate(_ context.Context, view domain.View) error {
	n.mu.Lock()
	n.current = view
	n.mu.Unlock()

	_, err := fmt.Fprintln(n.out, newStyles().header.Render("navigate: "+string(view)))
	return err
}

func (n *Navigator) Current() domain.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Notifier writes toasts and modal notices as styled lines.
type Notifier struct {
	out io.Writer
	mu  sync.Mutex
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.out, Notice(message))
}
