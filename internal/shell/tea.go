package shell

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Tea is the enhanced shell backend: a Bubble Tea line editor with cursor
// movement and persistent history navigation on top of the shared yaegi
// session. It needs a real terminal.
type Tea struct {
	opts Options
}

func NewTea(opts Options) Shell {
	return &Tea{opts: opts.normalize()}
}

func (t *Tea) Name() string { return "tea" }

func (t *Tea) Available() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: stdin is not a terminal", ErrShellNotAvailable)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("%w: stdout is not a terminal", ErrShellNotAvailable)
	}
	return nil
}

func (t *Tea) Start(ctx context.Context) error {
	if err := t.Available(); err != nil {
		return err
	}

	session, err := NewSession(t.opts.Stdin, t.opts.Stdout, t.opts.Stderr, t.opts.Logger)
	if err != nil {
		return err
	}
	if err := session.Inject(t.opts.Context); err != nil {
		return err
	}

	fmt.Fprint(t.opts.Stdout, t.opts.Banner)

	var historyValues []string
	if t.opts.History != nil {
		historyValues, err = t.opts.History.RecentInputs(500)
		if err != nil {
			t.opts.Logger.Warn("failed to load history", zap.Error(err))
		}
	}

	model := newTeaModel(session, t.opts, historyValues)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

var (
	teaPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	teaResultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	teaErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type teaModel struct {
	input   textinput.Model
	session *Session
	opts    Options

	// History navigation. Index 0 is the current (unsubmitted) input,
	// 1..len(historyValues) walk backwards through previous inputs.
	historyValues []string
	historyIndex  int
	savedInput    string

	quitting bool
}

func newTeaModel(session *Session, opts Options, historyValues []string) teaModel {
	input := textinput.New()
	input.Prompt = teaPromptStyle.Render(opts.prompt())
	input.Focus()

	return teaModel{
		input:         input,
		session:       session,
		opts:          opts,
		historyValues: historyValues,
	}
}

func (m teaModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		return m.navigateHistory(1), nil

	case tea.KeyDown:
		return m.navigateHistory(-1), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m teaModel) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	if value == "" {
		return m, nil
	}

	var cmds []tea.Cmd
	cmds = append(cmds, tea.Println(m.input.Prompt+value))

	if m.opts.History != nil {
		if _, err := m.opts.History.Record(value); err != nil {
			m.opts.Logger.Warn("failed to record history entry", zap.Error(err))
		}
	}
	m.historyValues = append([]string{value}, m.historyValues...)
	m.historyIndex = 0
	m.savedInput = ""
	m.input.SetValue("")

	result, hasValue, err := m.session.Eval(value)
	switch {
	case err != nil:
		cmds = append(cmds, tea.Println(teaErrorStyle.Render(err.Error())))
	case hasValue:
		cmds = append(cmds, tea.Println(teaResultStyle.Render(FormatResult(m.opts.Output, result))))
	}

	return m, tea.Sequence(cmds...)
}

// navigateHistory moves through previous inputs. delta is +1 for older
// entries (up arrow), -1 for newer (down arrow).
func (m teaModel) navigateHistory(delta int) teaModel {
	next := m.historyIndex + delta
	if next < 0 || next > len(m.historyValues) {
		return m
	}

	if m.historyIndex == 0 && next > 0 {
		m.savedInput = m.input.Value()
	}

	m.historyIndex = next
	if next == 0 {
		m.input.SetValue(m.savedInput)
	} else {
		m.input.SetValue(m.historyValues[next-1])
	}
	m.input.CursorEnd()
	return m
}

func (m teaModel) View() string {
	if m.quitting {
		return ""
	}
	return m.input.View()
}
