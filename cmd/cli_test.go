package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/portal-cli/internal/adapters/push"
	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/graphql"
	"github.com/bnema/portal-cli/internal/version"
	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestInvalidConfigurationIsReported(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))
	t.Setenv("PORTAL_STORAGE_BACKEND", "redis")

	_, _, err := executeCLI(t, home, "profile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoginThenOpenShowsAdminUserList(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)

	stdout, _, err := executeCLI(t, home, "login", "--user", "admin", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as admin (ADMIN)")
	assert.Contains(t, portal.lastQuery(graphql.FieldLogin), `userName: "admin"`)

	stdout, stderr, err := executeCLI(t, home, "open")
	require.NoError(t, err)
	assert.Contains(t, stderr, "navigate: /user-list")
	assert.Contains(t, stdout, "Users")
	assert.Contains(t, stdout, "Alan Turing")
	assert.Equal(t, "tok-123", portal.lastAuthorization(graphql.FieldUsers))
}

func TestLoginPromptsForPassword(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)

	_, stderr, err := executeCLIWithInput(t, home, "hunter22\n", "login", "--user", "admin")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Password: ")
	assert.Contains(t, portal.lastQuery(graphql.FieldLogin), `passWord: "hunter22"`)
}

func TestOpenWithoutSessionRedirectsToLogin(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))

	_, stderr, err := executeCLI(t, home, "open")
	require.ErrorIs(t, err, domain.ErrSessionRequired)
	assert.Contains(t, stderr, application.ExpiredSessionNotice)
	assert.Contains(t, stderr, "navigate: /login")
}

func TestProfileRendersSignedInUser(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)
	portal.delay(graphql.FieldUserByID, 200*time.Millisecond)

	stdout, stderr, err := executeCLI(t, home, "profile")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Loading profile...")
	assert.Contains(t, stdout, "Ada Lovelace")
	assert.Contains(t, stdout, "ada@example.com")
	assert.Contains(t, portal.lastQuery(graphql.FieldUserByID), `id: "u-1"`)
	assert.Contains(t, portal.lastQuery(graphql.FieldSessionByID), `id: "tok-123"`)
}

func TestProfileJSONOutput(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "profile", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"email": "ada@example.com"`)
}

func TestUsersListPassesPagingAndSearch(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "users", "list", "--page", "2", "--limit", "5", "--search", "tur")
	require.NoError(t, err)
	assert.Contains(t, stdout, `search "tur"`)

	query := portal.lastQuery(graphql.FieldUsers)
	assert.Contains(t, query, "page: 2")
	assert.Contains(t, query, "limit: 5")
	assert.Contains(t, query, `search: "tur"`)
}

func TestUsersUpdateSendsOnlyChangedFields(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "users", "update", "u-1", "--email", "ada@lovelace.dev", "--first-name", "Ada")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Updated u-1: email")

	query := portal.lastQuery(graphql.FieldUpdateUser)
	assert.Contains(t, query, `email: "ada@lovelace.dev"`)
	assert.NotContains(t, query, "firstName")
}

func TestUsersUpdateWithoutChangesSkipsCall(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "users", "update", "u-1", "--last-name", "Lovelace")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing to update.")
	assert.Empty(t, portal.lastQuery(graphql.FieldUpdateUser))
}

func TestUsersDeleteAsksForConfirmation(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)

	stdout, stderr, err := executeCLIWithInput(t, home, "n\n", "users", "delete", "u-2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Delete user u-2? [y/N]")
	assert.Contains(t, stdout, "Canceled.")
	assert.Empty(t, portal.lastQuery(graphql.FieldDeleteUser))

	stdout, _, err = executeCLI(t, home, "users", "delete", "u-2", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "User deleted")
	assert.Contains(t, portal.lastQuery(graphql.FieldDeleteUser), `id: "u-2"`)
}

func TestRegisterThenVerifyOTPUsesPendingID(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)

	stdout, _, err := executeCLI(t, home,
		"register",
		"--first-name", "Grace",
		"--last-name", "Hopper",
		"--email", "grace@example.com",
		"--user-name", "grace",
		"--password", "cobol1",
		"--contact", "555-0100",
		"--gender", "female",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Registered u-9")

	stdout, _, err = executeCLI(t, home, "verify-otp", "--otp", "123456")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Verified")

	query := portal.lastQuery(graphql.FieldOTPVerify)
	assert.Contains(t, query, `id: "u-9"`)
	assert.Contains(t, query, "otp: 123456")
}

func TestRegisterRequiresFlags(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))

	_, _, err := executeCLI(t, home, "register", "--first-name", "Grace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestLogoutClearsSession(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out.")
	assert.Equal(t, "tok-123", portal.lastAuthorization(graphql.FieldLogout))

	_, _, err = executeCLI(t, home, "profile")
	require.ErrorIs(t, err, domain.ErrSessionRequired)

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No active session.")
}

func TestNotificationsListUsesBearerToken(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	setupPortalEnv(t, portal)
	signIn(t, home)

	stdout, _, err := executeCLI(t, home, "notifications", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Welcome")
	assert.Equal(t, "Bearer tok-123", portal.inboxAuthorization())
}

func TestNotificationsListenStopsWhenFeedCloses(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))
	signIn(t, home)

	_, stderr, err := executeCLI(t, home, "notifications", "listen", "--for", "5s")
	require.ErrorIs(t, err, push.ErrFeedClosed)
	assert.Contains(t, stderr, "Listening for notifications.")
}

func TestNotificationsRequireSession(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))

	_, _, err := executeCLI(t, home, "notifications", "list")
	require.ErrorIs(t, err, domain.ErrSessionRequired)
}

func TestLoginGoogleRequiresClientID(t *testing.T) {
	home := t.TempDir()
	setupPortalEnv(t, newFakePortal(t))

	_, _, err := executeCLI(t, home, "login", "google")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google.client_id is not configured")
}

type fakePortal struct {
	server *httptest.Server

	mu       sync.Mutex
	queries  map[string]string
	auth     map[string]string
	inboxHdr string
	delays   map[string]time.Duration
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()

	portal := &fakePortal{queries: map[string]string{}, auth: map[string]string{}, delays: map[string]time.Duration{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/api", portal.handleQuery)
	mux.HandleFunc("/get-notifications", func(w http.ResponseWriter, r *http.Request) {
		portal.mu.Lock()
		portal.inboxHdr = r.Header.Get("Authorization")
		portal.mu.Unlock()
		_, _ = fmt.Fprint(w, `[{"id":"n1","notification":{"title":"Welcome","body":"Hello there"}}]`)
	})

	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.Close(websocket.StatusGoingAway, "shutting down")
	})

	portal.server = httptest.NewServer(mux)
	t.Cleanup(portal.server.Close)
	return portal
}

var fakePayloads = map[string]string{
	graphql.FieldLogin:        `{"status":200,"message":"ok","token":"tok-123","userId":"u-1","role":"ADMIN"}`,
	graphql.FieldSessionByID:  `{"status":200,"userId":"u-1","role":"ADMIN"}`,
	graphql.FieldUserByID:     `{"status":200,"user":{"id":"u-1","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","role":"ADMIN"}}`,
	graphql.FieldUsers:        `{"status":200,"total":2,"users":[{"id":"u-1","firstName":"Ada","lastName":"Lovelace","role":"ADMIN"},{"id":"u-2","firstName":"Alan","lastName":"Turing","role":"USER"}]}`,
	graphql.FieldLogout:       `{"status":200,"message":"Logged out"}`,
	graphql.FieldRegistration: `{"status":201,"message":"created","id":"u-9"}`,
	graphql.FieldOTPVerify:    `{"status":200,"message":"Verified"}`,
	graphql.FieldUpdateUser:   `{"status":201,"message":"updated"}`,
	graphql.FieldDeleteUser:   `{"status":200,"message":"User deleted"}`,
}

func (p *fakePortal) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for field, payload := range fakePayloads {
		if !strings.Contains(body.Query, field+"(") {
			continue
		}

		p.mu.Lock()
		p.queries[field] = body.Query
		p.auth[field] = r.Header.Get("authorization")
		delay := p.delays[field]
		p.mu.Unlock()

		time.Sleep(delay)

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"data":{%q:%s}}`, field, payload)
		return
	}

	_, _ = fmt.Fprint(w, `{"errors":[{"message":"unknown operation"}]}`)
}

func (p *fakePortal) delay(field string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delays[field] = d
}

func (p *fakePortal) lastQuery(field string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queries[field]
}

func (p *fakePortal) lastAuthorization(field string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.auth[field]
}

func (p *fakePortal) inboxAuthorization() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inboxHdr
}

func setupPortalEnv(t *testing.T, portal *fakePortal) {
	t.Helper()
	t.Setenv("PORTAL_STORAGE_BACKEND", "toml")
	t.Setenv("PORTAL_API_URL", portal.server.URL+"/api")
	t.Setenv("PORTAL_NOTIFICATIONS_URL", portal.server.URL)
	t.Setenv("PORTAL_GUARD_SETTLE_DELAY", "0s")
	t.Setenv("PORTAL_GUARD_EXPIRY_DELAY", "0s")
	t.Setenv("PORTAL_GOOGLE_CLIENT_ID", "")
}

func signIn(t *testing.T, home string) {
	t.Helper()
	_, _, err := executeCLI(t, home, "login", "--user", "admin", "--password", "secret1")
	require.NoError(t, err)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
