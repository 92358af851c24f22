package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bnema/portal-cli/internal/adapters/cookie"
	"github.com/bnema/portal-cli/internal/adapters/gateway"
	"github.com/bnema/portal-cli/internal/adapters/push"
	"github.com/bnema/portal-cli/internal/adapters/render/console"
	chainstore "github.com/bnema/portal-cli/internal/adapters/storage/chain"
	passstore "github.com/bnema/portal-cli/internal/adapters/storage/pass"
	tomlstore "github.com/bnema/portal-cli/internal/adapters/storage/toml"
	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/config"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg      *viper.Viper
	settings config.Settings
	logger   *slog.Logger
	store    ports.SessionStore
	jar      ports.CookieJar
	resolver *application.CredentialResolver
	service  *application.Service
	inbox    *push.Inbox
	sleeper  ports.Sleeper

	renderProfile  func(application.Profile) (string, error)
	renderUser     func(domain.User) (string, error)
	renderUserPage func(domain.UserPage, string) (string, error)
	renderInbox    func([]domain.InboxNotification) (string, error)
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(homeDir)
	if err != nil {
		return nil, err
	}

	settings, err := config.Read(cfg)
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(os.Stderr, settings.LogLevel)

	store, err := newSessionStore(cfg, settings.StorageBackend)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	jar, err := cookie.NewJar(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire cookie jar: %w", err)
	}

	resolver := application.NewCredentialResolver(store, jar, logger)
	sleeper := ports.SystemClock{}

	return &app{
		cfg:      cfg,
		settings: settings,
		logger:   logger,
		store:    store,
		jar:      jar,
		resolver: resolver,
		service: application.NewService(gateway.NewClient(cfg), store, jar, resolver, application.ServiceConfig{
			UserServiceURL: settings.UserServiceURL,
			Sleeper:        sleeper,
			Logger:         logger,
		}),
		inbox:          push.NewInbox(cfg),
		sleeper:        sleeper,
		renderProfile:  console.RenderProfile,
		renderUser:     console.RenderUser,
		renderUserPage: console.RenderUserPage,
		renderInbox:    console.RenderInbox,
	}, nil
}

func newSessionStore(cfg *viper.Viper, backend string) (ports.SessionStore, error) {
	switch backend {
	case config.BackendTOML:
		return tomlstore.NewStore(cfg, ports.SystemClock{})
	case config.BackendPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithTOMLFallback(cfg, ports.SystemClock{})
	}
}
