package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
)

const DefaultReloadDelay = 3 * time.Second

type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func systemAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// NotificationListener attaches one handler per Subscribe call to the push
// channel.
type NotificationListener struct {
	channel  ports.PushChannel
	notifier ports.Notifier
	reloader ports.Reloader
	logger   *slog.Logger
	after    afterFunc

	ReloadDelay time.Duration
}

func NewNotificationListener(channel ports.PushChannel, notifier ports.Notifier, reloader ports.Reloader, logger *slog.Logger) *NotificationListener {
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationListener{
		channel:     channel,
		notifier:    notifier,
		reloader:    reloader,
		logger:      logger,
		after:       systemAfterFunc,
		ReloadDelay: DefaultReloadDelay,
	}
}

// Subscribe registers onMessage, or the toast-then-reload handler when
// onMessage is nil. The returned unsubscribe is safe to call repeatedly.
func (l *NotificationListener) Subscribe(ctx context.Context, onMessage func(domain.NotificationEvent)) (func(), error) {
	if l.channel == nil {
		return nil, errors.New("push channel is not configured")
	}

	var reloads *ToastAndReload
	if onMessage == nil {
		reloads = l.newToastAndReload(ctx)
		onMessage = reloads.Handle
	}

	var active atomic.Bool
	active.Store(true)

	stop, err := l.channel.OnMessage(ctx, func(event domain.NotificationEvent) {
		if !active.Load() {
			return
		}
		onMessage(event)
	})
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			active.Store(false)
			if stop != nil {
				stop()
			}
			if reloads != nil {
				reloads.Stop()
			}
		})
	}, nil
}

func (l *NotificationListener) newToastAndReload(ctx context.Context) *ToastAndReload {
	after := l.after
	if after == nil {
		after = systemAfterFunc
	}

	return &ToastAndReload{
		ctx:      ctx,
		notifier: l.notifier,
		reloader: l.reloader,
		logger:   l.logger,
		delay:    l.ReloadDelay,
		after:    after,
		pending:  map[stopper]struct{}{},
	}
}

// ToastAndReload shows each event and reloads the view shortly after, so
// the toast stays visible before the reload discards it.
type ToastAndReload struct {
	ctx      context.Context
	notifier ports.Notifier
	reloader ports.Reloader
	logger   *slog.Logger
	delay    time.Duration
	after    afterFunc

	mu      sync.Mutex
	stopped bool
	pending map[stopper]struct{}
}

func (h *ToastAndReload) Handle(event domain.NotificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}

	if h.notifier != nil {
		h.notifier.Notify(h.ctx, formatToast(event))
	}

	var timer stopper
	timer = h.after(h.delay, func() {
		h.mu.Lock()
		_, live := h.pending[timer]
		delete(h.pending, timer)
		stopped := h.stopped
		h.mu.Unlock()

		if !live || stopped || h.reloader == nil {
			return
		}
		if err := h.reloader.Reload(h.ctx); err != nil {
			h.logger.Warn("reload after notification", "error", err)
		}
	})
	h.pending[timer] = struct{}{}
}

// Stop cancels every reload that has not fired yet.
func (h *ToastAndReload) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true
	for timer := range h.pending {
		timer.Stop()
		delete(h.pending, timer)
	}
}

func formatToast(event domain.NotificationEvent) string {
	switch {
	case event.Title == "":
		return event.Body
	case event.Body == "":
		return event.Title
	default:
		return event.Title + ": " + event.Body
	}
}
