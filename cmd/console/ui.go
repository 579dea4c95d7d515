package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/mobkc/internal/config"
	"github.com/jwebster45206/mobkc/pkg/host"
	"github.com/jwebster45206/mobkc/pkg/overlay"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "Type a command, e.g. kill 7 Goblin"

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config  *config.Config
	session *session
	opts    overlay.Options

	logViewport viewport.Model
	input       textinput.Model
	lines       []string
	ready       bool
	width       int
	height      int
	ticks       int
}

// gameTickMsg drives host.Tick at the game's cadence
type gameTickMsg struct{}

// repaintMsg redraws the overlay so the +1 can fade
type repaintMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	logPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewConsoleUI(cfg *config.Config, s *session) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = PlaceHolderText
	ti.Focus()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 200
	ti.Width = 50

	vp := viewport.New(50, 10)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:      cfg,
		session:     s,
		opts:        overlay.OptionsFrom(s.ctx, s.settings),
		input:       ti,
		logViewport: vp,
		lines:       []string{"Type help for commands."},
	}
}

func gameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return gameTickMsg{} })
}

func repaint(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return repaintMsg{} })
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		gameTick(m.config.TickInterval),
		repaint(m.config.RefreshInterval),
	)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.logViewport.Width = max(20, m.width-4)
		m.logViewport.Height = max(3, m.height-9)
		m.input.Width = max(20, m.width-8)
		m.ready = true
		m.writeLog()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			if input == "quit" || input == "/quit" {
				return m, tea.Quit
			}

			m.lines = append(m.lines, promptStyle.Render(":: ")+input)
			out, err := m.session.exec(input)
			if err != nil {
				m.lines = append(m.lines, errorStyle.Render("Error: "+err.Error()))
			}
			m.lines = append(m.lines, out...)
			m.writeLog()
			return m, nil
		}

	case gameTickMsg:
		m.ticks++
		m.session.tracker.Dispatch(m.session.ctx, host.Tick{}, nil)
		// Display settings refresh once per tick, not per frame
		m.opts = overlay.OptionsFrom(m.session.ctx, m.session.settings)
		return m, gameTick(m.config.TickInterval)

	case repaintMsg:
		return m, repaint(m.config.RefreshInterval)
	}

	m.input, tiCmd = m.input.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *ConsoleUI) writeLog() {
	width := max(10, m.logViewport.Width-2)
	var content strings.Builder
	for _, line := range m.lines {
		content.WriteString(wordwrap.String(line, width))
		content.WriteString("\n")
	}
	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m ConsoleUI) renderOverlay() string {
	d, ok := overlay.Render(m.session.tracker.Snapshot(), time.Now(), m.opts)
	if !ok {
		return statusStyle.Render("Not tracking. Right-click an NPC with: menu <name>")
	}
	return d.View(overlay.DefaultWidth)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	status := statusStyle.Render(fmt.Sprintf("tick %d · engaged %d · group %s",
		m.ticks, m.session.tracker.EngagedCount(), m.session.settings.Group()))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("MOB KC"),
		m.renderOverlay(),
		status,
		logPanelStyle.Width(max(20, m.width-2)).Render(m.logViewport.View()),
		m.input.View(),
	)
}
