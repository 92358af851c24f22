package console

import (
	"errors"
	"io"

	"github.com/bnema/portal-cli/internal/application"
	"github.com/bnema/portal-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func run(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{view: view, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

func RenderProfile(profile application.Profile) (string, error) {
	return run(func(s styles) string { return renderProfile(profile, s) })
}

func RenderUser(user domain.User) (string, error) {
	return run(func(s styles) string { return renderUser(user, s) })
}

func RenderUserPage(page domain.UserPage, search string) (string, error) {
	return run(func(s styles) string { return renderUserPage(page, search, s) })
}

func RenderInbox(notifications []domain.InboxNotification) (string, error) {
	return run(func(s styles) string { return renderInbox(notifications, s) })
}
