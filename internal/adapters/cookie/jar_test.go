package cookie

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJarSetAndReadCookie(t *testing.T) {
	t.Parallel()

	jar := NewJarAt(filepath.Join(t.TempDir(), "cookies"))

	require.NoError(t, jar.SetCookie(context.Background(), "userData", "j%3A%7B%22id%22%3A%22tok-1%22%7D"))
	require.NoError(t, jar.SetCookie(context.Background(), "theme", "dark"))

	value, err := jar.Cookie(context.Background(), "userData")
	require.NoError(t, err)
	assert.Equal(t, "j%3A%7B%22id%22%3A%22tok-1%22%7D", value)

	data, err := os.ReadFile(jar.Path())
	require.NoError(t, err)
	assert.Equal(t, "theme=dark; userData=j%3A%7B%22id%22%3A%22tok-1%22%7D\n", string(data))
}

func TestJarMissingCookieReturnsKeyNotFound(t *testing.T) {
	t.Parallel()

	jar := NewJarAt(filepath.Join(t.TempDir(), "cookies"))

	_, err := jar.Cookie(context.Background(), "userData")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestJarClearRemovesFile(t *testing.T) {
	t.Parallel()

	jar := NewJarAt(filepath.Join(t.TempDir(), "cookies"))
	require.NoError(t, jar.SetCookie(context.Background(), "userData", "x"))

	require.NoError(t, jar.Clear(context.Background()))
	require.NoError(t, jar.Clear(context.Background()))

	_, err := jar.Cookie(context.Background(), "userData")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestJarRejectsUnencodedValues(t *testing.T) {
	t.Parallel()

	jar := NewJarAt(filepath.Join(t.TempDir(), "cookies"))

	require.Error(t, jar.SetCookie(context.Background(), "userData", "a;b"))
	require.Error(t, jar.SetCookie(context.Background(), "bad name", "v"))
}

func TestJarWritesOwnerOnlyFile(t *testing.T) {
	t.Parallel()

	jar := NewJarAt(filepath.Join(t.TempDir(), "nested", "cookies"))
	require.NoError(t, jar.SetCookie(context.Background(), "userData", "x"))

	info, err := os.Stat(jar.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(jarFileMode), info.Mode().Perm())
}

func TestNewJarUsesConfiguredPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jar")
	cfg := viper.New()
	cfg.Set(PathKey, path)

	jar, err := NewJar(cfg)
	require.NoError(t, err)
	assert.Equal(t, path, jar.Path())
}

func TestParseHeaderSkipsMalformedPairs(t *testing.T) {
	t.Parallel()

	got := ParseHeader(" a=1;; junk ; =x; b=two=parts; a=3 ")
	assert.Equal(t, map[string]string{"a": "3", "b": "two=parts"}, got)
}
