package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andrevm/gemchat/internal/api"
	"github.com/andrevm/gemchat/internal/config"
	"github.com/andrevm/gemchat/internal/render"
	"github.com/andrevm/gemchat/internal/transcript"
)

// fallbackReply replaces the streamed response when the request fails.
// Raw error detail is never shown in the transcript.
const fallbackReply = "Sorry, something went wrong while generating a response. Please try again."

// StreamClient is the part of the API client the chat TUI needs.
type StreamClient interface {
	StreamMessage(message string, onDelta api.StreamHandler) (string, error)
}

// Messages produced by the stream goroutine
type (
	streamDeltaMsg struct {
		index int
		text  string
	}
	streamDoneMsg struct{}
	streamErrMsg  struct {
		index int
	}
)

// Model represents the chat TUI state
type Model struct {
	client       StreamClient
	store        *transcript.Store
	endpoint     string
	renderOpts   render.Options
	exportFormat transcript.ExportFormat

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Submission state: idle (false) or sending (true). While sending,
	// new submissions are rejected at the submit guard.
	sending bool

	// Active stream plumbing. stream delivers messages from the
	// goroutine reading the response; abort detaches an abandoned
	// stream after a transcript reset.
	stream chan tea.Msg
	abort  chan struct{}

	ready bool

	// notice is a one-line status shown under the status bar;
	// noticeErr switches it to the error style.
	notice    string
	noticeErr bool

	width  int
	height int
}

// NewModel creates a new chat TUI model.
func NewModel(client StreamClient, endpoint string, renderOpts render.Options, exportFormat transcript.ExportFormat) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:       client,
		store:        transcript.NewStore(),
		endpoint:     endpoint,
		renderOpts:   renderOpts,
		exportFormat: exportFormat,
		textarea:     ta,
		spinner:      s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 5
		statusHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+n":
			m = m.resetChat()

		case "ctrl+y":
			if text := m.store.LastModelText(); text != "" {
				if err := clipboard.WriteAll(text); err != nil {
					m.notice, m.noticeErr = "Copy failed", true
				} else {
					m.notice, m.noticeErr = "Copied last reply", false
				}
			}

		case "ctrl+s":
			m.notice, m.noticeErr = m.saveTranscript()

		case "enter":
			if cmd, submitted := m.submit(); submitted {
				if m.sending {
					return m, tea.Batch(cmd, m.spinner.Tick)
				}
				return m, cmd
			}
		}

	case streamDeltaMsg:
		m.store.SetModelTurnText(msg.index, msg.text)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, m.waitForStream()

	case streamDoneMsg:
		m.sending = false
		m.stream = nil
		m.abort = nil
		m.updateViewport()
		m.viewport.GotoBottom()

	case streamErrMsg:
		m.sending = false
		m.stream = nil
		m.abort = nil
		m.store.SetModelTurnText(msg.index, fallbackReply)
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.sending {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass key events to the textarea, and only while idle.
	if !m.sending {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit starts a new submission unless a guard rejects it: while
// sending, or for empty/whitespace-only input, it is a silent no-op.
func (m *Model) submit() (tea.Cmd, bool) {
	if m.sending {
		return nil, false
	}

	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return nil, false
	}
	if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
		return tea.Quit, true
	}

	index := m.store.AppendUserTurn(input)
	m.textarea.Reset()
	m.sending = true
	m.notice = ""
	m.noticeErr = false
	m.updateViewport()
	m.viewport.GotoBottom()

	return m.startStream(input, index), true
}

// resetChat clears the transcript and returns the state machine to
// idle. A still-running stream is detached; its late deltas are
// dropped here and defused again by the store's stale-index check.
func (m Model) resetChat() Model {
	if m.abort != nil {
		close(m.abort)
	}
	m.stream = nil
	m.abort = nil
	m.sending = false
	m.store.Reset()
	m.textarea.Reset()
	m.notice = "New chat"
	m.noticeErr = false
	m.updateViewport()
	return m
}

// saveTranscript writes the transcript into the config directory using
// the configured export format and returns the notice to show.
func (m Model) saveTranscript() (notice string, isErr bool) {
	if m.store.Len() == 0 {
		return "", false
	}

	dir, err := config.EnsureTranscriptsDir()
	if err != nil {
		return "Save failed", true
	}

	content, ext, err := transcript.Export(m.store.Turns(), m.exportFormat)
	if err != nil {
		return "Save failed", true
	}

	path := filepath.Join(dir, time.Now().Format("chat-20060102-150405")+"."+ext)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "Save failed", true
	}

	return "Saved " + path, false
}

// startStream launches the goroutine that consumes the response body
// and forwards its progress as messages.
func (m *Model) startStream(prompt string, index int) tea.Cmd {
	ch := make(chan tea.Msg, 64)
	abort := make(chan struct{})
	m.stream = ch
	m.abort = abort
	client := m.client

	go func() {
		defer close(ch)

		send := func(msg tea.Msg) {
			select {
			case ch <- msg:
			case <-abort:
			}
		}

		_, err := client.StreamMessage(prompt, func(cumulative string) {
			send(streamDeltaMsg{index: index, text: cumulative})
		})
		if err != nil {
			send(streamErrMsg{index: index})
			return
		}
		send(streamDoneMsg{})
	}()

	return m.waitForStream()
}

// waitForStream returns a command that delivers the next stream message.
func (m Model) waitForStream() tea.Cmd {
	ch := m.stream
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if msg, ok := <-ch; ok {
			return msg
		}
		return nil
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Center,
			titleStyle.Render("✦ gemchat"),
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.endpoint),
		),
	)
	sections = append(sections, header)

	var messagesContent string
	if m.store.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.sending {
		inputContent = m.spinner.View() + loadingStyle.Render(" Waiting for response...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.notice != "" {
		style := noticeStyle
		if m.noticeErr {
			style = errorStyle
		}
		sections = append(sections, style.Render("  "+m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the empty-transcript screen
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Welcome to gemchat"),
		"",
		welcomeStyle.Width(width).Render("Start a conversation by typing a message below"),
		"",
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the bottom shortcut bar
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+N", "New chat"},
		{"Ctrl+Y", "Copy reply"},
		{"Ctrl+S", "Save"},
		{"↑↓", "Scroll"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled turns
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	turns := m.store.Turns()

	for i, turn := range turns {
		if i > 0 {
			content.WriteString("\n")
		}

		switch turn.Role {
		case transcript.RoleUser:
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(turn.Text)
			content.WriteString(label + "\n" + bubble)

		case transcript.RoleModel:
			label := modelLabelStyle.Render("✦ Model")
			text := turn.Text
			if text == "" && m.sending && i == len(turns)-1 {
				text = "…"
			}

			rendered, err := render.Markdown(text, m.renderOpts.WithWidth(bubbleWidth-4))
			if err != nil {
				rendered = text
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := modelBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the chat TUI.
func Run(client StreamClient, endpoint string, renderOpts render.Options, exportFormat transcript.ExportFormat) error {
	p := tea.NewProgram(
		NewModel(client, endpoint, renderOpts, exportFormat),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
