package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
)

// signedCookiePrefix marks JSON cookies written by the remote service.
const signedCookiePrefix = "j:"

// CredentialResolver reads the current session from the store, then from
// the cookie jar. It keeps no state between calls.
type CredentialResolver struct {
	store   ports.SessionStore
	cookies ports.CookieSource
	logger  *slog.Logger
}

func NewCredentialResolver(store ports.SessionStore, cookies ports.CookieSource, logger *slog.Logger) *CredentialResolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &CredentialResolver{store: store, cookies: cookies, logger: logger}
}

// Resolve returns nil when no usable session exists. The only errors it
// returns come from ctx.
func (r *CredentialResolver) Resolve(ctx context.Context) (*domain.SessionCredential, error) {
	record, err := r.ResolveRecord(ctx)
	if err != nil || record == nil {
		return nil, err
	}

	return record.Credential(), nil
}

func (r *CredentialResolver) ResolveRecord(ctx context.Context) (*domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	record, err := r.fromStore(ctx)
	if err != nil || record != nil {
		return record, err
	}

	record, raw, err := r.fromCookie(ctx)
	if err != nil || record == nil {
		return nil, err
	}

	if r.store != nil {
		if err := r.store.Put(ctx, domain.SessionStorageKey, raw); err != nil {
			if isContextErr(err) {
				return nil, err
			}
			r.logger.Warn("mirror cookie session into store", "key", domain.SessionStorageKey, "error", err)
		}
	}

	return record, nil
}

func (r *CredentialResolver) fromStore(ctx context.Context) (*domain.SessionRecord, error) {
	if r.store == nil {
		return nil, nil
	}

	raw, err := r.store.Get(ctx, domain.SessionStorageKey)
	if err != nil {
		switch {
		case isContextErr(err):
			return nil, err
		case errors.Is(err, domain.ErrKeyNotFound):
			r.logger.Debug("no stored session", "key", domain.SessionStorageKey)
		default:
			r.logger.Warn("read stored session", "key", domain.SessionStorageKey, "error", err)
		}
		return nil, nil
	}

	record, err := parseSessionRecord(raw)
	if err != nil {
		r.logger.Warn("ignore stored session", "source", "store", "error", err)
		return nil, nil
	}

	return record, nil
}

func (r *CredentialResolver) fromCookie(ctx context.Context) (*domain.SessionRecord, string, error) {
	if r.cookies == nil {
		return nil, "", nil
	}

	encoded, err := r.cookies.Cookie(ctx, domain.SessionStorageKey)
	if err != nil {
		switch {
		case isContextErr(err):
			return nil, "", err
		case errors.Is(err, domain.ErrKeyNotFound):
			r.logger.Debug("no session cookie", "name", domain.SessionStorageKey)
		default:
			r.logger.Warn("read session cookie", "name", domain.SessionStorageKey, "error", err)
		}
		return nil, "", nil
	}

	decoded, err := url.PathUnescape(strings.TrimSpace(encoded))
	if err != nil {
		r.logger.Warn("ignore session cookie", "source", "cookie", "error", err)
		return nil, "", nil
	}
	decoded = strings.TrimPrefix(decoded, signedCookiePrefix)

	record, err := parseSessionRecord(decoded)
	if err != nil {
		r.logger.Warn("ignore session cookie", "source", "cookie", "error", err)
		return nil, "", nil
	}

	return record, decoded, nil
}

var errSessionWithoutToken = errors.New("session object has no token")

func parseSessionRecord(raw string) (*domain.SessionRecord, error) {
	var record domain.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	if record.SessionToken() == "" {
		return nil, errSessionWithoutToken
	}

	return &record, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
