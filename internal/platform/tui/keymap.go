package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// HoldTicks is how many frames a direction stays pressed after a key event.
// Terminals only report key presses, so auto-repeat has to bridge the gap
// between events for a held key to move the paddle continuously.
const HoldTicks = 8

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys(" ", "r"),
			key.WithHelp("space", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ActionFor translates a key message to a game action.
// Returns false if the key is not bound.
func (k KeyMap) ActionFor(msg tea.KeyMsg) (core.Action, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, true
	case key.Matches(msg, k.Right):
		return core.ActionRight, true
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, true
	}
	return core.ActionNone, false
}

// Intents turns discrete key events into per-frame input.
// Directions are latched for HoldTicks frames, restart for exactly one.
type Intents struct {
	left    int
	right   int
	restart bool
}

// Press records a key event.
func (i *Intents) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		i.left = HoldTicks
		i.right = 0
	case core.ActionRight:
		i.right = HoldTicks
		i.left = 0
	case core.ActionRestart:
		i.restart = true
	}
}

// Frame returns the input for the next frame and ages the latches.
func (i *Intents) Frame() core.InputFrame {
	f := core.NewInputFrame()
	if i.left > 0 {
		f.Set(core.ActionLeft)
		i.left--
	}
	if i.right > 0 {
		f.Set(core.ActionRight)
		i.right--
	}
	if i.restart {
		f.Set(core.ActionRestart)
		i.restart = false
	}
	return f
}
