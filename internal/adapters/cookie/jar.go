package cookie

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	PathKey     = "cookies.path"
	jarDirMode  = 0o700
	jarFileMode = 0o600
)

// Jar persists cookies as a single Cookie header line ("a=1; b=2"). Values
// are kept exactly as written, still URL-encoded.
type Jar struct {
	path string
	mu   sync.RWMutex
}

var _ ports.CookieJar = (*Jar)(nil)

func NewJar(cfg *viper.Viper) (*Jar, error) {
	if cfg == nil {
		return nil, errors.New("cookie jar config is nil")
	}

	path, err := resolvePath(cfg.GetString(PathKey))
	if err != nil {
		return nil, err
	}

	return &Jar{path: path}, nil
}

func NewJarAt(path string) *Jar {
	return &Jar{path: filepath.Clean(path)}
}

func (j *Jar) Path() string {
	return j.path
}

func (j *Jar) Cookie(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	cookies, err := j.read()
	if err != nil {
		return "", err
	}

	value, ok := cookies[name]
	if !ok {
		return "", fmt.Errorf("cookie %q: %w", name, domain.ErrKeyNotFound)
	}

	return value, nil
}

func (j *Jar) SetCookie(ctx context.Context, name string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "=; ") {
		return fmt.Errorf("invalid cookie name %q", name)
	}
	if strings.Contains(value, ";") {
		return fmt.Errorf("cookie %q value must be URL-encoded", name)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.read()
	if err != nil {
		return err
	}
	cookies[name] = value

	return j.write(cookies)
}

func (j *Jar) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	err := os.Remove(j.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear cookie jar: %w", err)
	}

	return nil
}

func (j *Jar) read() (map[string]string, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read cookie jar: %w", err)
	}

	return ParseHeader(string(data)), nil
}

func (j *Jar) write(cookies map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(j.path), jarDirMode); err != nil {
		return fmt.Errorf("create cookie jar directory: %w", err)
	}

	if err := os.WriteFile(j.path, []byte(FormatHeader(cookies)+"\n"), jarFileMode); err != nil {
		return fmt.Errorf("write cookie jar: %w", err)
	}

	return nil
}

// ParseHeader splits a Cookie header into name/value pairs. Later
// duplicates win, matching how the jar rewrites entries.
func ParseHeader(header string) map[string]string {
	cookies := map[string]string{}
	for _, part := range strings.Split(strings.TrimSpace(header), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		cookies[strings.TrimSpace(name)] = value
	}

	return cookies
}

func FormatHeader(cookies map[string]string) string {
	names := make([]string, 0, len(cookies))
	for name := range cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+cookies[name])
	}

	return strings.Join(parts, "; ")
}

func resolvePath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, ".portal", "cookies"), nil
	}

	if strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~/"))
	}

	return filepath.Clean(trimmed), nil
}
