package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/weddingflow-assistant/internal/domain"
)

// Slow model calls show how long they have been running after this.
const elapsedAfter = 3 * time.Second

var thinkingLabels = map[domain.Language]string{
	domain.LanguageEnglish:  "Thinking...",
	domain.LanguageHindi:    "सोच रहा हूँ...",
	domain.LanguageSpanish:  "Pensando...",
	domain.LanguageFrench:   "Réflexion...",
	domain.LanguageGerman:   "Denke nach...",
	domain.LanguageJapanese: "考え中...",
	domain.LanguageChinese:  "思考中...",
}

func thinkingLabel(lang domain.Language) string {
	if label, ok := thinkingLabels[lang]; ok {
		return label
	}
	return thinkingLabels[domain.LanguageEnglish]
}

type turnDoneMsg struct {
	err error
}

type thinkingModel struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time
	work    tea.Cmd
	err     error
	done    bool
}

func newThinkingModel(label string, now func() time.Time, work tea.Cmd) thinkingModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("212"))),
	)

	return thinkingModel{spinner: s, label: label, started: now(), now: now, work: work}
}

func (m thinkingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m thinkingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case turnDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m thinkingModel) View() string {
	if m.done {
		return ""
	}
	view := m.spinner.View() + " " + m.label
	if elapsed := m.now().Sub(m.started); elapsed >= elapsedAfter {
		view += fmt.Sprintf(" %ds", int(elapsed.Seconds()))
	}
	return view
}

// runThinkingSpinner draws the spinner on output while one assistant turn
// runs. Cancelling ctx stops both and returns ctx's error.
func runThinkingSpinner(ctx context.Context, output io.Writer, lang domain.Language, work func(context.Context) error) error {
	turnCmd := func() tea.Msg {
		return turnDoneMsg{err: work(ctx)}
	}

	program := tea.NewProgram(
		newThinkingModel(thinkingLabel(lang), time.Now, turnCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run thinking spinner: %w", err)
	}

	model, ok := final.(thinkingModel)
	if !ok {
		return fmt.Errorf("unexpected spinner model %T", final)
	}
	return model.err
}
