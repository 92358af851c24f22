// Package config loads the portal configuration from ~/.portal/config.toml,
// an optional .env file and PORTAL_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "PORTAL"
	DirName    = ".portal"
	FileName   = "config.toml"
	DotEnvFile = ".env"

	LogLevelKey          = "log.level"
	APIURLKey            = "api.url"
	UserServiceURLKey    = "api.user_url"
	StorageBackendKey    = "storage.backend"
	NotificationsURLKey  = "notifications.url"
	ReloadDelayKey       = "notifications.reload_delay"
	GoogleClientIDKey    = "google.client_id"
	GoogleCallbackURLKey = "google.callback_url"
	GoogleListenKey      = "google.listen"
	GoogleTimeoutKey     = "google.timeout"
	SettleDelayKey       = "guard.settle_delay"
	ExpiryDelayKey       = "guard.expiry_delay"
	PageSizeKey          = "users.page_size"
)

const (
	BackendChain = "chain"
	BackendTOML  = "toml"
	BackendPass  = "pass"
)

var validate = validator.New()

// Settings is the validated view of the keys the CLI reads directly.
// Adapters read their own keys from the same *viper.Viper.
type Settings struct {
	LogLevel         string        `validate:"oneof=debug info warn error"`
	APIURL           string        `validate:"required,url"`
	UserServiceURL   string        `validate:"omitempty,url"`
	StorageBackend   string        `validate:"oneof=chain toml pass"`
	NotificationsURL string        `validate:"required,url"`
	ReloadDelay      time.Duration `validate:"gte=0"`
	GoogleListen     string        `validate:"required,hostname_port"`
	GoogleTimeout    time.Duration `validate:"gt=0"`
	SettleDelay      time.Duration `validate:"gte=0"`
	ExpiryDelay      time.Duration `validate:"gte=0"`
	PageSize         int           `validate:"gte=1,lte=100"`
}

// Load builds the configuration rooted at homeDir. A missing config file
// or .env file is not an error.
func Load(homeDir string) (*viper.Viper, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := viper.New()
	setDefaults(cfg)

	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if homeDir != "" {
		cfg.SetConfigFile(filepath.Join(homeDir, DirName, FileName))
		cfg.SetConfigType("toml")
		if err := cfg.ReadInConfig(); err != nil && !isMissingConfig(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults(cfg *viper.Viper) {
	cfg.SetDefault(LogLevelKey, "warn")
	cfg.SetDefault(APIURLKey, "http://127.0.0.1:4001/api")
	cfg.SetDefault(UserServiceURLKey, "")
	cfg.SetDefault(StorageBackendKey, BackendChain)
	cfg.SetDefault(NotificationsURLKey, "http://127.0.0.1:4002")
	cfg.SetDefault(ReloadDelayKey, 3*time.Second)
	cfg.SetDefault(GoogleClientIDKey, "")
	cfg.SetDefault(GoogleCallbackURLKey, "http://127.0.0.1:4001/auth/google/callback")
	cfg.SetDefault(GoogleListenKey, "127.0.0.1:5173")
	cfg.SetDefault(GoogleTimeoutKey, 5*time.Minute)
	cfg.SetDefault(SettleDelayKey, 100*time.Millisecond)
	cfg.SetDefault(ExpiryDelayKey, 3*time.Second)
	cfg.SetDefault(PageSizeKey, 10)
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func Read(cfg *viper.Viper) (Settings, error) {
	settings := Settings{
		LogLevel:         strings.ToLower(strings.TrimSpace(cfg.GetString(LogLevelKey))),
		APIURL:           strings.TrimSpace(cfg.GetString(APIURLKey)),
		UserServiceURL:   strings.TrimSpace(cfg.GetString(UserServiceURLKey)),
		StorageBackend:   strings.ToLower(strings.TrimSpace(cfg.GetString(StorageBackendKey))),
		NotificationsURL: strings.TrimSpace(cfg.GetString(NotificationsURLKey)),
		ReloadDelay:      cfg.GetDuration(ReloadDelayKey),
		GoogleListen:     strings.TrimSpace(cfg.GetString(GoogleListenKey)),
		GoogleTimeout:    cfg.GetDuration(GoogleTimeoutKey),
		SettleDelay:      cfg.GetDuration(SettleDelayKey),
		ExpiryDelay:      cfg.GetDuration(ExpiryDelayKey),
		PageSize:         cfg.GetInt(PageSizeKey),
	}

	if err := validate.Struct(settings); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// NewLogger returns a text slog logger on w at the configured level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
