package ports

import "context"

// SessionStore is the persistent key/value area sessions are written to.
// Get returns an error wrapping domain.ErrKeyNotFound for missing keys.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// CookieSource reads raw, still URL-encoded cookie values by name.
type CookieSource interface {
	Cookie(ctx context.Context, name string) (string, error)
}

type CookieJar interface {
	CookieSource
	SetCookie(ctx context.Context, name string, value string) error
	Clear(ctx context.Context) error
}
