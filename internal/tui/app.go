// Package tui implements the full-screen now-playing dashboard.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/app"
	"github.com/tessro/vortex/internal/config"
	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/tui/components"
	"github.com/tessro/vortex/internal/tui/styles"
	"github.com/tessro/vortex/internal/ui"
)

// Session is the running synchronizer behind the dashboard.
type Session interface {
	Start(ctx context.Context) error
	Refresh(ctx context.Context) core.Result
}

// Screen is the binding the dashboard draws from.
type Screen interface {
	Panel() ui.Panel
	Click(id ui.ControlID) bool
	DismissError()
}

// Model is the main TUI model
type Model struct {
	session Session
	screen  Screen
	ctx     context.Context
	rate    time.Duration

	width  int
	height int

	panel   ui.Panel
	updated time.Time
	started bool
	fatal   error

	nowPlaying *components.NowPlaying
	keys       keyMap
	help       help.Model
	showHelp   bool
	quitting   bool
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, session Session, screen Screen, rate time.Duration) Model {
	return Model{
		session:    session,
		screen:     screen,
		ctx:        ctx,
		rate:       rate,
		panel:      screen.Panel(),
		nowPlaying: components.NewNowPlaying(),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Messages
type panelMsg struct{}
type startedMsg struct{ err error }
type clockMsg time.Time
type actionDoneMsg struct{}

// PanelChanged tells the program the screen has changed. Notifications can
// arrive out of order, so the model reads the screen's current panel instead
// of carrying one in the message.
func PanelChanged() tea.Msg {
	return panelMsg{}
}

// Commands

// start runs off the event loop: the first poll renders through the screen,
// which sends panel updates back into the program.
func (m Model) start() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.session.Start(m.ctx)}
	}
}

func (m Model) click(id ui.ControlID) tea.Cmd {
	return func() tea.Msg {
		m.screen.Click(id)
		return actionDoneMsg{}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		m.session.Refresh(m.ctx)
		return actionDoneMsg{}
	}
}

func (m Model) dismiss() tea.Cmd {
	return func() tea.Msg {
		m.screen.DismissError()
		return actionDoneMsg{}
	}
}

func clock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), clock())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case panelMsg:
		m.panel = m.screen.Panel()
		m.updated = time.Now()
		return m, nil

	case startedMsg:
		m.started = true
		if msg.err != nil {
			m.fatal = msg.err
		}
		return m, nil

	case clockMsg:
		return m, clock()
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.PlayPause):
		return m, m.click(ui.ControlPlayPause)
	case key.Matches(msg, m.keys.Next):
		return m, m.click(ui.ControlNext)
	case key.Matches(msg, m.keys.Prev):
		return m, m.click(ui.ControlPrev)
	case key.Matches(msg, m.keys.Random):
		return m, m.click(ui.ControlRandom)
	case key.Matches(msg, m.keys.Repeat):
		return m, m.click(ui.ControlRepeat)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Dismiss):
		if m.panel.HasError() {
			return m, m.dismiss()
		}
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.fatal != nil {
		return styles.Banner.Render("Error: " + m.fatal.Error())
	}

	if m.showHelp {
		return m.renderHelp()
	}

	width := m.width
	if width > 72 {
		width = 72
	}

	sections := []string{}
	if banner := components.Banner(m.panel.Error, width); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections,
		m.nowPlaying.Render(m.panel, width, 9),
		m.renderStatusBar(width),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatusBar(width int) string {
	var updated string
	switch {
	case !m.started:
		updated = "connecting..."
	case m.updated.IsZero():
		updated = "no changes yet"
	default:
		updated = "updated " + humanize.Time(m.updated)
	}
	if m.rate <= 0 {
		updated += " · auto-refresh off"
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(styles.Dim.Render(updated) + "\n" + m.help.View(m.keys))
}

func (m Model) renderHelp() string {
	title := "Vortex - Keyboard Shortcuts"
	body := styles.Highlight.Render(title) + "\n" +
		styles.Repeat("═", lipgloss.Width(title)) + "\n\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		styles.Dim.Render("Press ? or Esc to close")

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(body))
}

// Run starts the dashboard and blocks until the user quits.
func Run(cfg *config.Config, logger *zap.Logger) error {
	styles.Use(cfg.TUI.Theme)

	screen := ui.NewScreen()
	session, err := app.New(cfg, screen, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, session, screen, cfg.RefreshInterval()), tea.WithAltScreen())
	screen.OnChange(func(ui.Panel) {
		p.Send(PanelChanged())
	})

	_, runErr := p.Run()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := session.Stop(stopCtx); err != nil {
		logger.Warn("failed to stop session", zap.Error(err))
	}

	if runErr != nil {
		return fmt.Errorf("dashboard failed: %w", runErr)
	}
	return nil
}
