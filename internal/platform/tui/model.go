package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

const finishedMsg = "replay finished"

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a Pong session.
type Model struct {
	game     *pong.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	intents  Intents
	logger   *log.Logger
	script   []uint8
	pos      int
	finished bool // script exhausted, the last frame stays on screen
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given session.
// The bottom terminal row is reserved for the help footer.
func NewModel(s registry.Session) Model {
	cfg := s.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   s.Game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		logger: s.Log(),
		script: s.Script,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, ok := m.keys.ActionFor(msg)
	if !ok {
		return m, nil
	}

	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Recorded input drives playback
	if m.script != nil {
		return m, nil
	}

	m.intents.Press(action)
	return m, nil
}

// handleResize processes window resize events.
// The field is drawn scaled, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	var in core.InputFrame
	if m.script != nil {
		if m.pos >= len(m.script) {
			m.finished = true
			m.logger.Info("replay finished", "frames", m.pos, "score", m.game.State().Score)
			return m, nil
		}
		in = core.FrameFromMask(m.script[m.pos])
		m.pos++
	} else {
		in = m.intents.Frame()
	}

	result := m.game.Step(in)
	switch {
	case result.Restarted:
		m.logger.Info("restart")
	case result.Ended:
		m.logger.Info("game over", "score", result.State.Score, "tick", m.game.Snapshot().Tick)
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.finished {
		footer = finishedMsg + " • " + m.help.ShortHelpView([]key.Binding{m.keys.Quit})
	}

	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// Finished reports whether a scripted session played all its frames.
func (m Model) Finished() bool {
	return m.finished
}

// Frontend runs sessions in the local terminal.
type Frontend struct{}

// Name implements registry.Frontend.
func (Frontend) Name() string { return "tui" }

// Description implements registry.Frontend.
func (Frontend) Description() string { return "terminal (Bubble Tea)" }

// Run starts the Bubble Tea program and blocks until it exits.
func (Frontend) Run(ctx context.Context, s registry.Session) error {
	logger := s.Log()
	logger.Info("frontend started", "frontend", "tui", "width", s.Runtime.ScreenW, "height", s.Runtime.ScreenH)

	p := tea.NewProgram(
		NewModel(s),
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = ctx.Err()
	}

	logger.Info("frontend stopped", "frontend", "tui", "score", s.Game.State().Score)
	return err
}

func init() {
	registry.Register("tui", func() registry.Frontend { return Frontend{} })
}
