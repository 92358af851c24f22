package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePushChannel struct {
	mu       sync.Mutex
	handlers []func(domain.NotificationEvent)
	stops    int
	err      error
}

func (c *fakePushChannel) OnMessage(ctx context.Context, handler func(domain.NotificationEvent)) (func(), error) {
	if c.err != nil {
		return nil, c.err
	}
	c.mu.Lock()
	c.handlers = append(c.handlers, handler)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		c.stops++
		c.mu.Unlock()
	}, nil
}

// deliver keeps calling registered handlers even after stop, like a feed
// that still has a message in flight.
func (c *fakePushChannel) deliver(event domain.NotificationEvent) {
	c.mu.Lock()
	handlers := append([]func(domain.NotificationEvent){}, c.handlers...)
	c.mu.Unlock()
	for _, handler := range handlers {
		handler(event)
	}
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (f *fakeTimers) after(d time.Duration, fn func()) stopper {
	f.mu.Lock()
	defer f.mu.Unlock()
	timer := &fakeTimer{fn: fn}
	f.timers = append(f.timers, timer)
	f.delays = append(f.delays, d)
	return timer
}

func (f *fakeTimers) fireAll() {
	f.mu.Lock()
	timers := append([]*fakeTimer{}, f.timers...)
	f.mu.Unlock()
	for _, timer := range timers {
		if !timer.stopped {
			timer.fn()
		}
	}
}

func newTestListener(channel *fakePushChannel, notifier *mocks.MockNotifier, reloader *mocks.MockReloader, timers *fakeTimers) *NotificationListener {
	listener := NewNotificationListener(channel, notifier, reloader, nil)
	listener.after = timers.after
	return listener
}

func TestListenerToastsAndReloadsForEachEvent(t *testing.T) {
	channel := &fakePushChannel{}
	notifier := mocks.NewMockNotifier(t)
	reloader := mocks.NewMockReloader(t)
	timers := &fakeTimers{}

	notifier.EXPECT().Notify(mockAnyContext(), "Welcome: hello").Return().Once()
	notifier.EXPECT().Notify(mockAnyContext(), "Update: profile changed").Return().Once()
	reloader.EXPECT().Reload(mockAnyContext()).Return(nil).Twice()

	unsubscribe, err := newTestListener(channel, notifier, reloader, timers).Subscribe(context.Background(), nil)
	require.NoError(t, err)
	defer unsubscribe()

	channel.deliver(domain.NotificationEvent{Title: "Welcome", Body: "hello"})
	channel.deliver(domain.NotificationEvent{Title: "Update", Body: "profile changed"})
	timers.fireAll()

	assert.Equal(t, []time.Duration{DefaultReloadDelay, DefaultReloadDelay}, timers.delays)
}

func TestListenerDoesNothingAfterUnsubscribe(t *testing.T) {
	channel := &fakePushChannel{}
	notifier := mocks.NewMockNotifier(t)
	reloader := mocks.NewMockReloader(t)
	timers := &fakeTimers{}

	unsubscribe, err := newTestListener(channel, notifier, reloader, timers).Subscribe(context.Background(), nil)
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()

	channel.deliver(domain.NotificationEvent{Title: "late", Body: "message"})
	timers.fireAll()

	assert.Equal(t, 1, channel.stops)
	assert.Empty(t, timers.timers)
}

func TestListenerUnsubscribeCancelsPendingReload(t *testing.T) {
	channel := &fakePushChannel{}
	notifier := mocks.NewMockNotifier(t)
	reloader := mocks.NewMockReloader(t)
	timers := &fakeTimers{}

	notifier.EXPECT().Notify(mockAnyContext(), "Ping: now").Return().Once()

	unsubscribe, err := newTestListener(channel, notifier, reloader, timers).Subscribe(context.Background(), nil)
	require.NoError(t, err)

	channel.deliver(domain.NotificationEvent{Title: "Ping", Body: "now"})
	unsubscribe()
	timers.fireAll()

	require.Len(t, timers.timers, 1)
	assert.True(t, timers.timers[0].stopped)
}

func TestListenerCallsCustomHandler(t *testing.T) {
	channel := &fakePushChannel{}
	var got []domain.NotificationEvent

	listener := NewNotificationListener(channel, nil, nil, nil)
	unsubscribe, err := listener.Subscribe(context.Background(), func(event domain.NotificationEvent) {
		got = append(got, event)
	})
	require.NoError(t, err)

	channel.deliver(domain.NotificationEvent{Title: "a"})
	channel.deliver(domain.NotificationEvent{Body: "b"})
	unsubscribe()
	channel.deliver(domain.NotificationEvent{Title: "c"})

	assert.Equal(t, []domain.NotificationEvent{{Title: "a"}, {Body: "b"}}, got)
}

func TestListenerRegistersOneHandlerPerSubscription(t *testing.T) {
	channel := &fakePushChannel{}
	listener := NewNotificationListener(channel, nil, nil, nil)

	first, err := listener.Subscribe(context.Background(), func(domain.NotificationEvent) {})
	require.NoError(t, err)
	second, err := listener.Subscribe(context.Background(), func(domain.NotificationEvent) {})
	require.NoError(t, err)

	assert.Len(t, channel.handlers, 2)
	first()
	second()
	assert.Equal(t, 2, channel.stops)
}

func TestListenerReturnsChannelError(t *testing.T) {
	channel := &fakePushChannel{err: errors.New("feed unavailable")}

	_, err := NewNotificationListener(channel, nil, nil, nil).Subscribe(context.Background(), nil)
	require.ErrorContains(t, err, "feed unavailable")
}

func TestFormatToast(t *testing.T) {
	assert.Equal(t, "T: B", formatToast(domain.NotificationEvent{Title: "T", Body: "B"}))
	assert.Equal(t, "B", formatToast(domain.NotificationEvent{Body: "B"}))
	assert.Equal(t, "T", formatToast(domain.NotificationEvent{Title: "T"}))
}
