package console

import (
	"testing"

	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProfile(t *testing.T) {
	output, err := RenderProfile(application.Profile{
		Session: domain.SessionRecord{ID: "0123456789abcdef", Role: "ADMIN"},
		User: domain.User{
			ID:        "u-1",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Role:      domain.RoleAdmin,
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Profile")
	assert.Contains(t, output, "session: 01234567... (ADMIN)")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "ada@example.com")
	assert.Contains(t, output, "contact")
	assert.Contains(t, output, "n/a")
	assert.NotContains(t, output, "0123456789abcdef")
}

func TestRenderUserPage(t *testing.T) {
	output, err := RenderUserPage(domain.UserPage{
		Users: []domain.User{
			{ID: "u-1", FirstName: "Ada", Email: "ada@example.com", Role: domain.RoleAdmin},
			{ID: "u-2", FirstName: "Alan", LastName: "Turing", Role: domain.RoleUser},
		},
		Page:  2,
		Limit: 2,
		Total: 5,
	}, " ad ")

	require.NoError(t, err)
	assert.Contains(t, output, `page 2 of 3, 5 users, search "ad"`)
	assert.Contains(t, output, "EMAIL")
	assert.Contains(t, output, "Alan Turing")
	assert.Contains(t, output, "u-2")
	assert.Contains(t, output, "ADMIN")
	assert.Contains(t, output, "USER")
}

func TestRenderEmptyUserPage(t *testing.T) {
	output, err := RenderUserPage(domain.UserPage{Page: 1, Limit: 10}, "")

	require.NoError(t, err)
	assert.Contains(t, output, "page 1 of 1, 0 users")
	assert.Contains(t, output, "No users found.")
	assert.NotContains(t, output, "search")
}

func TestRenderUserFallsBackToID(t *testing.T) {
	output, err := RenderUser(domain.User{ID: "u-9"})

	require.NoError(t, err)
	assert.Contains(t, output, "u-9")
	assert.Contains(t, output, "USER")
}

func TestRenderInbox(t *testing.T) {
	output, err := RenderInbox([]domain.InboxNotification{
		{ID: "n1", Notification: domain.NotificationEvent{Title: "Welcome", Body: "Thanks for joining"}},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "notifications: 1")
	assert.Contains(t, output, "Welcome")
	assert.Contains(t, output, "Thanks for joining")

	empty, err := RenderInbox(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "No notifications.")
}

func TestSessionLabel(t *testing.T) {
	assert.Equal(t, "n/a (USER)", sessionLabel(domain.SessionRecord{}))
	assert.Equal(t, "short (USER)", sessionLabel(domain.SessionRecord{Token: "short", Role: "guest"}))
}

func TestNoticeKeepsMessage(t *testing.T) {
	assert.Contains(t, Notice("Session expired"), "Session expired")
	assert.Contains(t, Warning("boom"), "boom")
}
