package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type memStore struct {
	mu     sync.Mutex
	values map[string]string
	puts   int
}

func newMemStore(values map[string]string) *memStore {
	if values == nil {
		values = map[string]string{}
	}
	return &memStore{values: values}
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrKeyNotFound)
	}
	return value, nil
}

func (s *memStore) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.puts++
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *recordingSleeper) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

type resolverFunc func(ctx context.Context) (*domain.SessionCredential, error)

func (f resolverFunc) Resolve(ctx context.Context) (*domain.SessionCredential, error) {
	return f(ctx)
}

func staticCredential(credential *domain.SessionCredential) resolverFunc {
	return func(context.Context) (*domain.SessionCredential, error) {
		return credential, nil
	}
}

func okResponse(body string) *domain.RawResponse {
	return &domain.RawResponse{StatusCode: 200, Body: []byte(body)}
}
