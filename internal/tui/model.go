package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const quitCommand = "quit"

// streamMsg carries one event of the running turn; done is set once the turn is over.
type streamMsg struct {
	event agent.Event
	err   error
	done  bool
}

// Model is a chat with one agent. A turn streams into the transcript while the input is locked.
type Model struct {
	ctx    context.Context
	agent  *agent.Agent
	styles *Styles

	input    textinput.Model
	viewport viewport.Model

	transcript []string
	pending    strings.Builder
	busy       bool
	events     chan streamMsg
	cancelTurn context.CancelFunc

	width  int
	height int
}

func New(ctx context.Context, a *agent.Agent) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the SDK, quit to exit"
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 76

	m := &Model{
		ctx:      ctx,
		agent:    a,
		styles:   DefaultStyles(),
		input:    ti,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
	m.transcript = append(m.transcript, m.styles.Muted.Render(config.TerminalIntroductionText))
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-5, 3)
		m.input.Width = max(msg.Width-6, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case streamMsg:
		return m.handleStream(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.busy {
			m.cancelTurn()
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyEsc:
		if !m.busy {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyEnter:
		if m.busy {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		if strings.EqualFold(text, quitCommand) {
			return m, tea.Quit
		}
		m.input.Reset()
		return m, m.startTurn(text)
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startTurn runs the agent in its own goroutine; events come back one by one through waitForEvent.
func (m *Model) startTurn(text string) tea.Cmd {
	m.busy = true
	m.transcript = append(m.transcript, m.styles.User.Render("You: ")+text)
	m.pending.Reset()
	m.refresh()

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelTurn = cancel
	events := make(chan streamMsg)
	m.events = events

	go func() {
		defer close(events)
		defer cancel()
		for event, err := range m.agent.Stream(ctx, agent.Input{Text: text}) {
			if err != nil {
				events <- streamMsg{err: err, done: true}
				return
			}
			events <- streamMsg{event: event, done: event.Type == agent.EventDone}
			if event.Type == agent.EventDone {
				return
			}
		}
		events <- streamMsg{err: ctx.Err(), done: true}
	}()
	return waitForEvent(events)
}

func waitForEvent(events <-chan streamMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return streamMsg{done: true}
		}
		return msg
	}
}

func (m *Model) handleStream(msg streamMsg) (tea.Model, tea.Cmd) {
	if !m.busy {
		return m, nil
	}
	switch {
	case msg.err != nil:
		m.flushPending()
		m.transcript = append(m.transcript, m.styles.Error.Render(errorText(msg.err)))
	case msg.event.Type == agent.EventTextDelta:
		m.pending.WriteString(msg.event.Text)
	case msg.event.Type == agent.EventToolStarted:
		m.flushPending()
		m.transcript = append(m.transcript, m.styles.Hint.Render(fmt.Sprintf("› %s: %s", msg.event.Hint, msg.event.Action.Query)))
	case msg.event.Type == agent.EventDone:
		m.pending.Reset()
		m.pending.WriteString(msg.event.Result.Output)
		m.flushPending()
	}

	if msg.done {
		m.busy = false
		m.events = nil
		m.refresh()
		return m, nil
	}
	m.refresh()
	return m, waitForEvent(m.events)
}

func (m *Model) flushPending() {
	if m.pending.Len() == 0 {
		return
	}
	m.transcript = append(m.transcript, m.styles.Assistant.Render("Assistant: ")+m.pending.String())
	m.pending.Reset()
}

func errorText(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Turn cancelled."
	case errors.Is(err, agent.ErrUpstream):
		return "An error occurred while obtaining the agent response."
	default:
		return "Error: " + err.Error()
	}
}

func (m *Model) refresh() {
	lines := m.transcript
	if m.pending.Len() > 0 {
		lines = append(lines[:len(lines):len(lines)], m.styles.Assistant.Render("Assistant: ")+m.pending.String())
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(lines, "\n\n")))
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	status := m.styles.Muted.Render(fmt.Sprintf("model %s · enter to send · esc to quit", m.agent.Config().Model))
	if m.busy {
		status = m.styles.Muted.Render("thinking… ctrl+c cancels the turn")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.styles.Input.Render(m.input.View()),
		status,
	)
}

// Transcript is the rendered conversation so far.
func (m *Model) Transcript() []string {
	return m.transcript
}

// Run blocks until the user quits. Logs must not go to stdout while it runs.
func Run(ctx context.Context, a *agent.Agent) error {
	_, err := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
