package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vocalq/dialctl/internal/engine"
	"github.com/vocalq/dialctl/internal/logging"
)

const (
	// DefaultPollInterval is how often the dashboard refreshes engine status.
	DefaultPollInterval = 3 * time.Second

	// SubmitErrorMessage is shown when a start request fails for any reason.
	// The typed-in numbers are kept so the operator can retry.
	SubmitErrorMessage = "Error starting calls"
)

// Message types for async operations
type pollTickMsg struct{}

type statusFetchedMsg struct {
	seq    uint64
	status *engine.Status
	err    error
}

type submitFinishedMsg struct {
	started time.Time
	count   int
	result  *engine.StartResult
	err     error
}

// dashboardKeyMap defines key bindings for the dashboard screen
type dashboardKeyMap struct {
	Submit key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear, k.Quit},
	}
}

// DashboardModel is the interactive console screen. It shows live engine
// status and accepts comma-separated phone numbers for a new batch.
type DashboardModel struct {
	// Engine connection
	Client *engine.Client

	// Latest status snapshot. Nil until the first successful poll. A failed
	// poll keeps the previous snapshot on screen and is logged only; the
	// operator never sees poll errors.
	Status *engine.Status

	// Submission state
	Input      textinput.Model
	Submitting bool
	Message    string // Result line from the last submission attempt
	MessageErr bool   // True when Message reports a failure

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    dashboardKeyMap

	// Poll bookkeeping. pollSeq identifies the most recently issued fetch;
	// responses carrying an older seq are discarded. polling is cleared on
	// quit so a response landing after teardown cannot touch the model.
	pollSeq      uint64
	polling      bool
	pollInterval time.Duration
}

// NewDashboardModel creates the console model for the given engine client.
// A non-positive interval falls back to DefaultPollInterval.
func NewDashboardModel(client *engine.Client, pollInterval time.Duration) DashboardModel {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	input := textinput.New()
	input.Placeholder = "+15550100, +15550101, ..."
	input.CharLimit = 512
	input.Width = 50
	input.PromptStyle = FocusedInputStyle
	input.Cursor.Style = FocusedInputStyle
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := dashboardKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start calls"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear input"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	return DashboardModel{
		Client:       client,
		Input:        input,
		Spinner:      s,
		Help:         help.New(),
		Keys:         keys,
		pollSeq:      1,
		polling:      true,
		pollInterval: pollInterval,
	}
}

// Init fetches status immediately, starts the poll timer and the cursor blink.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchStatusCmd(m.pollSeq),
		m.schedulePollCmd(),
		m.Spinner.Tick,
		textinput.Blink,
	)
}

// fetchStatusCmd issues one status request. The seq is captured at issue
// time so the response can be matched against the latest poll.
func (m DashboardModel) fetchStatusCmd(seq uint64) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		status, err := client.GetStatus()
		return statusFetchedMsg{seq: seq, status: status, err: err}
	}
}

// schedulePollCmd arms the next poll tick. Rescheduled on every tick
// delivery, not on fetch completion, so the cadence tracks wall time.
func (m DashboardModel) schedulePollCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// submitCmd sends the batch to the engine.
func (m DashboardModel) submitCmd(numbers []string) tea.Cmd {
	client := m.Client
	started := time.Now()
	return func() tea.Msg {
		result, err := client.StartCalls(numbers)
		return submitFinishedMsg{started: started, count: len(numbers), result: result, err: err}
	}
}

// Update handles messages for the dashboard
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.polling = false
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Submit):
			return m.handleSubmit()

		case key.Matches(msg, m.Keys.Clear):
			m.Input.SetValue("")
			return m, nil
		}

		// All other keys go to the number input
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		return m, cmd

	case pollTickMsg:
		if !m.polling {
			return m, nil
		}
		m.pollSeq++
		return m, tea.Batch(
			m.fetchStatusCmd(m.pollSeq),
			m.schedulePollCmd(),
		)

	case statusFetchedMsg:
		// Drop responses from superseded polls and anything arriving after
		// the screen was torn down.
		if !m.polling || msg.seq != m.pollSeq {
			logging.LogStaleResponse(msg.seq, m.pollSeq)
			return m, nil
		}
		if msg.err != nil {
			logging.LogPollFailure(msg.seq, msg.err)
			return m, nil
		}
		m.Status = msg.status
		return m, nil

	case submitFinishedMsg:
		m.Submitting = false
		logging.LogSubmission(msg.count, time.Since(msg.started), msg.err)
		if msg.err != nil {
			m.Message = SubmitErrorMessage
			m.MessageErr = true
			return m, nil
		}
		m.Message = msg.result.Message
		m.MessageErr = false
		m.Input.SetValue("")
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// handleSubmit starts a batch from the current input, unless a submission
// is already in flight or the input normalizes to nothing.
func (m DashboardModel) handleSubmit() (tea.Model, tea.Cmd) {
	if m.Submitting {
		return m, nil
	}

	numbers := engine.ParseNumbers(m.Input.Value())
	if len(numbers) == 0 {
		return m, nil
	}

	m.Submitting = true
	m.Message = ""
	m.MessageErr = false
	return m, m.submitCmd(numbers)
}

// View renders the dashboard
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Outbound Call Engine"))
	b.WriteString("\n")
	b.WriteString(m.renderStatusPanel())
	b.WriteString("\n\n")
	b.WriteString(m.renderSubmitSection())

	helpText := m.Help.View(m.Keys)

	if m.Width > 0 && m.Height > 0 {
		return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(helpText))
	return b.String()
}

// renderStatusPanel shows the latest engine snapshot. Poll failures are
// logged, never rendered: the last snapshot stays up until a newer one
// arrives, and before the first one the panel just shows the spinner.
func (m DashboardModel) renderStatusPanel() string {
	if m.Status == nil {
		return StatusBoxStyle.Render(m.Spinner.View() + " Connecting to engine...")
	}

	lines := []string{
		RenderRunIndicator(m.Status.IsRunning),
		LabelStyle.Render("Queue:       ") + ValueStyle.Render(fmt.Sprintf("%d numbers remaining", m.Status.QueueSize)),
		LabelStyle.Render("Active call: ") + ValueStyle.Render(m.Status.CallSIDOrPlaceholder()),
	}

	return StatusBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderSubmitSection shows the number input and the last submission result.
func (m DashboardModel) renderSubmitSection() string {
	var b strings.Builder

	b.WriteString(LabelStyle.Render("Phone numbers (comma-separated):"))
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n")

	if m.Submitting {
		b.WriteString(m.Spinner.View() + " Starting calls...")
	} else if m.Message != "" {
		if m.MessageErr {
			b.WriteString(ErrorStyle.Render("✗ " + m.Message))
		} else {
			b.WriteString(SuccessStyle.Render("✓ " + m.Message))
		}
	}

	return b.String()
}

// Run starts the interactive console and blocks until the operator quits.
func Run(client *engine.Client, pollInterval time.Duration) error {
	model := NewDashboardModel(client, pollInterval)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err := program.Run()
	return err
}
