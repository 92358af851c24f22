package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runPortal(t, binaryPath, home, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.NotEmpty(t, stdout)

	_, stderr, err = runPortal(t, binaryPath, home, "open")
	require.Error(t, err)
	assert.Contains(t, stderr, "Your session has expired")
	assert.Contains(t, stderr, "navigate: /login")

	stdout, stderr, err = runPortal(t, binaryPath, home, "logout", "--local")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Signed out.")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "portal-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/portal")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build portal binary: %s", string(output))
	return binaryPath
}

func runPortal(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"PORTAL_STORAGE_BACKEND=toml",
		"PORTAL_GUARD_SETTLE_DELAY=0s",
		"PORTAL_GUARD_EXPIRY_DELAY=0s",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
