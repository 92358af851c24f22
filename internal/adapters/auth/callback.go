package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
)

const CallbackPath = "/auth/callback"

var (
	ErrStateMismatch   = errors.New("sign-in callback state mismatch")
	ErrCallbackTimeout = errors.New("timed out waiting for sign-in callback")
	ErrMissingSession  = errors.New("sign-in callback carried no session")
)

// CallbackServer receives the final redirect of a browser sign-in and
// stores the session it carries in the cookie jar, still URL-encoded.
type CallbackServer struct {
	expectedState string
	jar           ports.CookieJar
	listener      net.Listener
	server        *http.Server
	resultCh      chan callbackResult
	resultOnce    sync.Once
	closeOnce     sync.Once
}

type callbackResult struct {
	value string
	err   error
}

// StartCallbackServer listens on listenAddr. An empty expectedState skips
// the state check, since not every auth service echoes it back.
func StartCallbackServer(listenAddr string, expectedState string, jar ports.CookieJar) (*CallbackServer, error) {
	if jar == nil {
		return nil, errors.New("cookie jar is required")
	}
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen callback server: %w", err)
	}

	cb := &CallbackServer{
		expectedState: expectedState,
		jar:           jar,
		listener:      listener,
		resultCh:      make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, cb.handleCallback)

	cb.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if serveErr := cb.server.Serve(cb.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cb.trySendResult(callbackResult{err: serveErr})
		}
	}()

	return cb, nil
}

func (c *CallbackServer) RedirectURI() string {
	if tcpAddr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf("http://localhost:%d%s", tcpAddr.Port, CallbackPath)
	}
	return "http://localhost" + CallbackPath
}

// WaitForSession blocks until the callback fires, ctx ends or timeout
// passes, and returns the captured cookie value.
func (c *CallbackServer) WaitForSession(ctx context.Context, timeout time.Duration) (string, error) {
	defer func() { _ = c.Close() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-c.resultCh:
		return result.value, result.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", ErrCallbackTimeout
	}
}

func (c *CallbackServer) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		closeErr = c.server.Close()
	})
	return closeErr
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// A server started with a state only accepts redirects that echo it.
	if c.expectedState != "" && query.Get("state") != c.expectedState {
		c.trySendResult(callbackResult{err: ErrStateMismatch})
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	if oauthError := query.Get("error"); oauthError != "" {
		if description := query.Get("error_description"); description != "" {
			oauthError = oauthError + ": " + description
		}
		c.trySendResult(callbackResult{err: errors.New(oauthError)})
		http.Error(w, "sign-in error", http.StatusBadRequest)
		return
	}

	value := ""
	if fromQuery := query.Get(domain.SessionStorageKey); fromQuery != "" {
		value = url.PathEscape(fromQuery)
	} else if cookie, err := r.Cookie(domain.SessionStorageKey); err == nil && cookie.Value != "" {
		value = cookie.Value
	}
	if value == "" {
		c.trySendResult(callbackResult{err: ErrMissingSession})
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	if err := c.jar.SetCookie(r.Context(), domain.SessionStorageKey, value); err != nil {
		c.trySendResult(callbackResult{err: fmt.Errorf("store session cookie: %w", err)})
		http.Error(w, "could not store session", http.StatusInternalServerError)
		return
	}

	c.trySendResult(callbackResult{value: value})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Sign-in complete. You can close this window."))
}

func (c *CallbackServer) trySendResult(result callbackResult) {
	c.resultOnce.Do(func() {
		c.resultCh <- result
	})
}
