package console

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type workDoneMsg struct {
	err error
}

// progressModel animates a spinner next to a label until its work
// reports back. It never draws after the work is done.
type progressModel struct {
	spinner spinner.Model
	styles  styles
	label   string
	work    tea.Cmd
	err     error
	done    bool
}

func newProgressModel(label string, work tea.Cmd) progressModel {
	s := newStyles()
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.notice)),
		styles:  s,
		label:   label,
		work:    work,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.styles.header.Render(m.label)
}

// Progress reports a blocking fetch on Output. Retries and their
// back-off run inside the work function, so the spinner keeps turning
// for the whole call.
type Progress struct {
	Output io.Writer
	Label  string
}

func (p Progress) Run(ctx context.Context, work func(context.Context) error) error {
	program := tea.NewProgram(
		newProgressModel(p.Label, func() tea.Msg {
			return workDoneMsg{err: work(ctx)}
		}),
		tea.WithInput(nil),
		tea.WithOutput(p.Output),
		tea.WithContext(ctx),
	)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(progressModel)
	if !ok {
		return ErrUnexpectedRenderModel
	}
	return result.err
}
