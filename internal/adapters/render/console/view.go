package console

import (
	"fmt"
	"strings"

	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderProfile(profile application.Profile, s styles) string {
	lines := []string{
		s.title.Render("Profile"),
		s.header.Render(fmt.Sprintf("session: %s", sessionLabel(profile.Session))),
		s.section.Render(renderUser(profile.User, s)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUser(user domain.User, s styles) string {
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.name.Render(user.DisplayName()), " ", roleBadge(user.Role, s)),
	}

	for _, field := range []struct {
		label string
		value string
	}{
		{"id", string(user.ID)},
		{"email", user.Email},
		{"contact", user.ContactNumber},
		{"gender", user.Gender},
	} {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(field.label), s.detail.Render(orNA(field.value))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUserPage(page domain.UserPage, search string, s styles) string {
	header := fmt.Sprintf("page %d of %d, %d users", page.Page, max(page.PageCount(), 1), page.Total)
	if trimmed := strings.TrimSpace(search); trimmed != "" {
		header += fmt.Sprintf(", search %q", trimmed)
	}

	lines := []string{
		s.title.Render("Users"),
		s.header.Render(header),
	}

	if len(page.Users) == 0 {
		lines = append(lines, s.empty.Render("No users found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	ids := []string{s.header.Render("ID")}
	names := []string{s.header.Render("NAME")}
	emails := []string{s.header.Render("EMAIL")}
	roles := []string{s.header.Render("ROLE")}
	for _, user := range page.Users {
		ids = append(ids, s.detail.Render(string(user.ID)))
		names = append(names, s.name.Render(user.DisplayName()))
		emails = append(emails, s.detail.Render(orNA(user.Email)))
		roles = append(roles, roleBadge(user.Role, s))
	}

	table := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.column.Render(lipgloss.JoinVertical(lipgloss.Left, ids...)),
		s.column.Render(lipgloss.JoinVertical(lipgloss.Left, names...)),
		s.column.Render(lipgloss.JoinVertical(lipgloss.Left, emails...)),
		lipgloss.JoinVertical(lipgloss.Left, roles...),
	)

	lines = append(lines, s.section.Render(table))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderInbox(notifications []domain.InboxNotification, s styles) string {
	lines := []string{
		s.title.Render("Notifications"),
		s.header.Render(fmt.Sprintf("notifications: %d", len(notifications))),
	}

	if len(notifications) == 0 {
		lines = append(lines, s.empty.Render("No notifications."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, item := range notifications {
		entry := lipgloss.JoinVertical(
			lipgloss.Left,
			s.name.Render(orNA(item.Notification.Title)),
			s.detail.Render(item.Notification.Body),
		)
		lines = append(lines, s.section.Render(entry))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Notice styles a one-line toast or modal message.
func Notice(message string) string {
	return newStyles().notice.Render(message)
}

func Warning(message string) string {
	return newStyles().warning.Render(message)
}

func roleBadge(role domain.Role, s styles) string {
	if role.IsAdmin() {
		return s.admin.Render(string(domain.RoleAdmin))
	}
	return s.user.Render(string(domain.RoleUser))
}

func sessionLabel(record domain.SessionRecord) string {
	token := record.SessionToken()
	if len(token) > 8 {
		token = token[:8] + "..."
	}
	if token == "" {
		token = "n/a"
	}
	return fmt.Sprintf("%s (%s)", token, domain.ParseRole(record.Role))
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "n/a"
	}
	return value
}
