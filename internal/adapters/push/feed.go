package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const FeedPath = "/feed"

// ErrFeedClosed is passed to Feed.Closed when the server ends the stream.
var ErrFeedClosed = errors.New("push feed closed")

type message struct {
	Notification *domain.NotificationEvent `json:"notification"`
}

// Feed is a PushChannel backed by a websocket that streams
// {"notification": {"title": ..., "body": ...}} frames.
type Feed struct {
	URL       string
	AuthToken string
	Logger    *slog.Logger

	// Closed, when set, is called once if the connection ends before the
	// subscriber stops it or its context is done.
	Closed func(error)
}

var _ ports.PushChannel = (*Feed)(nil)

// FeedURL turns the notifications base URL into its websocket feed URL.
func FeedURL(baseURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse notifications url: %w", err)
	}

	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("notifications url must use http, https, ws or wss")
	}
	if parsed.Host == "" {
		return "", errors.New("notifications url host is required")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/") + FeedPath
	return parsed.String(), nil
}

func (f *Feed) OnMessage(ctx context.Context, handler func(domain.NotificationEvent)) (func(), error) {
	if handler == nil {
		return nil, errors.New("push handler is required")
	}

	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := &websocket.DialOptions{}
	if f.AuthToken != "" {
		opts.HTTPHeader = map[string][]string{"Authorization": {"Bearer " + f.AuthToken}}
	}

	conn, _, err := websocket.Dial(ctx, f.URL, opts)
	if err != nil {
		return nil, fmt.Errorf("dial push feed: %w", err)
	}

	readCtx, cancel := context.WithCancel(ctx)
	var stopped atomic.Bool

	go func() {
		for {
			var msg message
			if err := wsjson.Read(readCtx, conn, &msg); err != nil {
				if readCtx.Err() != nil || stopped.Load() {
					return
				}
				if websocket.CloseStatus(err) == -1 {
					logger.Warn("push feed read failed", "error", err)
				}
				if f.Closed != nil {
					f.Closed(fmt.Errorf("%w: %w", ErrFeedClosed, err))
				}
				return
			}
			if msg.Notification == nil {
				logger.Debug("push frame without notification ignored")
				continue
			}

			if !stopped.Load() {
				handler(*msg.Notification)
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			stopped.Store(true)
			cancel()
			if closeErr := conn.Close(websocket.StatusNormalClosure, "unsubscribed"); closeErr != nil {
				logger.Debug("close push feed", "error", closeErr)
			}
		})
	}

	return stop, nil
}
