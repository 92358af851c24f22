package chain

import (
	"context"
	"errors"
	"fmt"

	passstore "github.com/bnema/portal-cli/internal/adapters/storage/pass"
	tomlstore "github.com/bnema/portal-cli/internal/adapters/storage/toml"
	"github.com/bnema/portal-cli/internal/ports"
	"github.com/spf13/viper"
)

// Store reads and writes the primary backend first and falls back to the
// secondary one when the primary fails or does not hold the key.
type Store struct {
	primary  ports.SessionStore
	fallback ports.SessionStore
}

var _ ports.SessionStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary session store is nil")
	errNilFallbackStore = errors.New("fallback session store is nil")
)

func NewStore(primary ports.SessionStore, fallback ports.SessionStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SessionStore, fallback ports.SessionStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithTOMLFallback(cfg *viper.Viper, clock ports.Clock) (*Store, error) {
	fallback, err := tomlstore.NewStore(cfg, clock)
	if err != nil {
		return nil, err
	}

	return NewStoreChecked(passstore.NewStore(), fallback)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes key from both backends so a stale copy cannot resurface
// through the fallback after logout.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err != nil && fallbackErr != nil {
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}

	return nil
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
