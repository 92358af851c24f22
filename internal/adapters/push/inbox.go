package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	URLKey            = "notifications.url"
	DefaultURL        = "http://127.0.0.1:4002"
	saveTokenPath     = "/save-token"
	listPath          = "/get-notifications"
	defaultTimeout    = 15 * time.Second
	maxInboxBodyBytes = 1 << 20
)

// Inbox talks to the notification service over plain HTTP.
type Inbox struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewInbox(cfg *viper.Viper) *Inbox {
	inbox := &Inbox{BaseURL: DefaultURL}
	if cfg != nil {
		if base := strings.TrimSpace(cfg.GetString(URLKey)); base != "" {
			inbox.BaseURL = base
		}
	}
	return inbox
}

type saveTokenRequest struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// RegisterDeviceToken binds a device token to userID so the service can
// target it with pushes.
func (i *Inbox) RegisterDeviceToken(ctx context.Context, token, userID, authToken string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: device token is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	body, err := json.Marshal(saveTokenRequest{Token: token, UserID: userID})
	if err != nil {
		return fmt.Errorf("encode save-token request: %w", err)
	}

	resp, err := i.do(ctx, http.MethodPost, saveTokenPath, authToken, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return i.statusError(resp, "save device token")
	}
	return nil
}

func (i *Inbox) ListNotifications(ctx context.Context, authToken string) ([]domain.InboxNotification, error) {
	resp, err := i.do(ctx, http.MethodGet, listPath, authToken, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, i.statusError(resp, "list notifications")
	}

	var notifications []domain.InboxNotification
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxInboxBodyBytes)).Decode(&notifications); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return notifications, nil
}

func (i *Inbox) do(ctx context.Context, method, path, authToken string, body []byte) (*http.Response, error) {
	base := strings.TrimRight(strings.TrimSpace(i.BaseURL), "/")
	if base == "" {
		return nil, errors.New("notifications url is required")
	}

	reqCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, base+path, reader)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := i.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		cancel()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.TransportError{Err: err}
	}
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (i *Inbox) statusError(resp *http.Response, action string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &domain.TransportError{
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("%s: %s", action, strings.TrimSpace(string(data))),
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
