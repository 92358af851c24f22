package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
	"github.com/bnema/portal-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardExpiresWithoutSessionAndRedirectsToLoginOnly(t *testing.T) {
	navigator := mocks.NewMockNavigator(t)
	notifier := mocks.NewMockNotifier(t)
	sleeper := &recordingSleeper{}

	notifier.EXPECT().Notify(mockAnyContext(), ExpiredSessionNotice).Return().Once()
	navigator.EXPECT().Navigate(mockAnyContext(), domain.ViewLogin).Return(nil).Once()

	guard := NewSessionGuard(staticCredential(nil), navigator, notifier, sleeper, nil)
	result, err := guard.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, GuardExpired, result.State)
	assert.Equal(t, domain.ViewLogin, result.Target)
	assert.Equal(t, []time.Duration{DefaultSettleDelay, DefaultExpiryDelay}, sleeper.recorded())
}

func TestGuardTreatsMalformedStoredSessionAsExpired(t *testing.T) {
	navigator := mocks.NewMockNavigator(t)
	notifier := mocks.NewMockNotifier(t)

	notifier.EXPECT().Notify(mockAnyContext(), ExpiredSessionNotice).Return().Once()
	navigator.EXPECT().Navigate(mockAnyContext(), domain.ViewLogin).Return(nil).Once()

	resolver := NewCredentialResolver(newMemStore(map[string]string{domain.SessionStorageKey: "{not json"}), nil, nil)
	result, err := NewSessionGuard(resolver, navigator, notifier, &recordingSleeper{}, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, GuardExpired, result.State)
}

func TestGuardRedirectsByRole(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		role   domain.Role
		target domain.View
	}{
		{name: "admin", stored: `{"id":"tok","role":"ADMIN"}`, role: domain.RoleAdmin, target: domain.ViewUserList},
		{name: "user", stored: `{"id":"tok","role":"USER"}`, role: domain.RoleUser, target: domain.ViewDashboard},
		{name: "absent role", stored: `{"id":"tok"}`, role: domain.RoleUser, target: domain.ViewDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			navigator := mocks.NewMockNavigator(t)
			notifier := mocks.NewMockNotifier(t)
			sleeper := &recordingSleeper{}
			navigator.EXPECT().Navigate(mockAnyContext(), tt.target).Return(nil).Once()

			resolver := NewCredentialResolver(newMemStore(map[string]string{domain.SessionStorageKey: tt.stored}), nil, nil)
			result, err := NewSessionGuard(resolver, navigator, notifier, sleeper, nil).Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, GuardAuthorized, result.State)
			assert.Equal(t, tt.role, result.Role)
			assert.Equal(t, tt.target, result.Target)
			assert.Equal(t, "tok", result.Credential.Token)
			assert.Equal(t, []time.Duration{DefaultSettleDelay}, sleeper.recorded())
		})
	}
}

func TestGuardResolvesAfterSettleDelay(t *testing.T) {
	navigator := mocks.NewMockNavigator(t)
	settled := false

	resolver := resolverFunc(func(context.Context) (*domain.SessionCredential, error) {
		assert.True(t, settled, "session resolved before the settle delay elapsed")
		return &domain.SessionCredential{Token: "tok", Role: domain.RoleUser}, nil
	})
	sleeper := ports.SleeperFunc(func(ctx context.Context, d time.Duration) error {
		settled = true
		return nil
	})
	navigator.EXPECT().Navigate(mockAnyContext(), domain.ViewDashboard).Return(nil).Once()

	_, err := NewSessionGuard(resolver, navigator, nil, sleeper, nil).Run(context.Background())
	require.NoError(t, err)
}

func TestGuardCanceledDuringExpiryWaitDoesNotNavigate(t *testing.T) {
	navigator := mocks.NewMockNavigator(t)
	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().Notify(mockAnyContext(), ExpiredSessionNotice).Return().Once()

	ctx, cancel := context.WithCancel(context.Background())
	waits := 0
	sleeper := ports.SleeperFunc(func(ctx context.Context, d time.Duration) error {
		waits++
		if waits == 2 {
			cancel()
		}
		return ctx.Err()
	})

	result, err := NewSessionGuard(staticCredential(nil), navigator, notifier, sleeper, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, GuardExpired, result.State)
}

func TestGuardCanceledDuringSettleStaysChecking(t *testing.T) {
	navigator := mocks.NewMockNavigator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewSessionGuard(staticCredential(nil), navigator, nil, ports.SystemClock{}, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, GuardChecking, result.State)
}

func TestGuardUsesConfiguredDelays(t *testing.T) {
	navigator := mocks.NewMockNavigator(t)
	navigator.EXPECT().Navigate(mockAnyContext(), domain.ViewLogin).Return(nil).Once()
	sleeper := &recordingSleeper{}

	guard := NewSessionGuard(staticCredential(&domain.SessionCredential{}), navigator, nil, sleeper, nil)
	guard.SettleDelay = 10 * time.Millisecond
	guard.ExpiryDelay = time.Second

	result, err := guard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, GuardExpired, result.State)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, time.Second}, sleeper.recorded())
}
