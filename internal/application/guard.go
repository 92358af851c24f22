package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
)

type GuardState string

const (
	GuardChecking   GuardState = "CHECKING"
	GuardAuthorized GuardState = "AUTHORIZED"
	GuardExpired    GuardState = "EXPIRED"
)

const (
	ExpiredSessionNotice = "Your session has expired. Redirecting to login..."
	DefaultSettleDelay   = 100 * time.Millisecond
	DefaultExpiryDelay   = 3 * time.Second
)

type SessionResolver interface {
	Resolve(ctx context.Context) (*domain.SessionCredential, error)
}

type GuardResult struct {
	State      GuardState
	Role       domain.Role
	Target     domain.View
	Credential *domain.SessionCredential
}

// SessionGuard decides where a freshly opened view should go. A run always
// ends in AUTHORIZED or EXPIRED and navigates exactly once.
type SessionGuard struct {
	resolver  SessionResolver
	navigator ports.Navigator
	notifier  ports.Notifier
	sleeper   ports.Sleeper
	logger    *slog.Logger

	SettleDelay time.Duration
	ExpiryDelay time.Duration
}

func NewSessionGuard(resolver SessionResolver, navigator ports.Navigator, notifier ports.Notifier, sleeper ports.Sleeper, logger *slog.Logger) *SessionGuard {
	if sleeper == nil {
		sleeper = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionGuard{
		resolver:    resolver,
		navigator:   navigator,
		notifier:    notifier,
		sleeper:     sleeper,
		logger:      logger,
		SettleDelay: DefaultSettleDelay,
		ExpiryDelay: DefaultExpiryDelay,
	}
}

func (g *SessionGuard) Run(ctx context.Context) (GuardResult, error) {
	result := GuardResult{State: GuardChecking}

	// Give a redirect-back login a moment to land its session.
	if err := g.sleeper.Sleep(ctx, g.SettleDelay); err != nil {
		return result, err
	}

	credential, err := g.resolver.Resolve(ctx)
	if err != nil {
		return result, err
	}

	if !credential.Valid() {
		return g.expire(ctx)
	}

	result = GuardResult{
		State:      GuardAuthorized,
		Role:       credential.Role,
		Target:     domain.HomeFor(credential.Role),
		Credential: credential,
	}
	g.logger.Debug("session authorized", "role", result.Role, "target", result.Target)

	if err := g.navigator.Navigate(ctx, result.Target); err != nil {
		return result, fmt.Errorf("navigate to %s: %w", result.Target, err)
	}

	return result, nil
}

func (g *SessionGuard) expire(ctx context.Context) (GuardResult, error) {
	result := GuardResult{State: GuardExpired, Target: domain.ViewLogin}
	g.logger.Debug("session expired")

	if g.notifier != nil {
		g.notifier.Notify(ctx, ExpiredSessionNotice)
	}

	if err := g.sleeper.Sleep(ctx, g.ExpiryDelay); err != nil {
		return result, err
	}

	if err := g.navigator.Navigate(ctx, domain.ViewLogin); err != nil {
		return result, fmt.Errorf("navigate to %s: %w", domain.ViewLogin, err)
	}

	return result, nil
}
