//go:build !nowindow

// Package window presents Pong in a desktop window using Ebiten.
// Ebiten needs cgo on most platforms; build with -tags nowindow for a
// pure-Go binary that only offers the terminal and SSH frontends.
package window

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

const (
	glyphWidth  = 7 // basicfont.Face7x13 advance
	glyphAscent = 11
	scoreX      = 10
	scoreY      = 10
)

// Shell is an ebiten.Game that drives a pong.Game.
type Shell struct {
	ctx    context.Context
	game   *pong.Game
	logger *log.Logger
	script []uint8
	pos    int
	snap   pong.Snapshot
}

// NewShell creates a window shell for the session.
func NewShell(ctx context.Context, s registry.Session) *Shell {
	return &Shell{
		ctx:    ctx,
		game:   s.Game,
		logger: s.Log(),
		script: s.Script,
		snap:   s.Game.Snapshot(),
	}
}

// Update runs one frame. Ebiten calls it TPS times per second.
func (s *Shell) Update() error {
	if s.ctx.Err() != nil {
		return ebiten.Termination
	}

	keys := keyState{
		left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		restart: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		quit:    inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
	if keys.quit {
		return ebiten.Termination
	}

	var in core.InputFrame
	if s.script != nil {
		if s.pos >= len(s.script) {
			return nil
		}
		in = core.FrameFromMask(s.script[s.pos])
		s.pos++
	} else {
		in = keys.frame()
	}

	result := s.game.Step(in)
	switch {
	case result.Restarted:
		s.logger.Info("restart")
	case result.Ended:
		s.logger.Info("game over", "score", result.State.Score, "tick", s.game.Snapshot().Tick)
	}

	s.snap = s.game.Snapshot()
	return nil
}

// Draw renders the latest snapshot.
func (s *Shell) Draw(screen *ebiten.Image) {
	snap := s.snap
	screen.Fill(color.Black)

	vector.DrawFilledRect(screen,
		float32(snap.PaddleX), float32(snap.PaddleY),
		float32(snap.PaddleWidth), float32(snap.PaddleHeight),
		color.White, false)

	vector.DrawFilledCircle(screen,
		float32(int(snap.BallX)), float32(int(snap.BallY)),
		float32(snap.BallSize)/2,
		color.White, true)

	text.Draw(screen, fmt.Sprintf(pong.ScoreFormat, snap.Score), basicfont.Face7x13, scoreX, scoreY+glyphAscent, color.White)

	if snap.GameOver {
		x, y := centredText(pong.GameOverBanner, int(snap.Width), int(snap.Height))
		text.Draw(screen, pong.GameOverBanner, basicfont.Face7x13, x, y, color.White)
	}
}

// Layout keeps the logical screen at field size.
func (s *Shell) Layout(_, _ int) (int, int) {
	return int(s.snap.Width), int(s.snap.Height)
}

// keyState is the raw keyboard state sampled for one frame.
// Directions are level-triggered; restart and quit are edge-triggered.
type keyState struct {
	left, right   bool
	restart, quit bool
}

func (k keyState) frame() core.InputFrame {
	in := core.NewInputFrame()
	if k.left {
		in.Set(core.ActionLeft)
	}
	if k.right {
		in.Set(core.ActionRight)
	}
	if k.restart {
		in.Set(core.ActionRestart)
	}
	return in
}

// centredText returns the baseline origin that centres s in a w x h area.
func centredText(s string, w, h int) (x, y int) {
	return (w - len(s)*glyphWidth) / 2, h/2 + glyphAscent/2
}

// HasDisplay reports whether a window can be opened.
// On X11/Wayland systems this requires DISPLAY or WAYLAND_DISPLAY.
func HasDisplay() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

// Frontend runs sessions in a desktop window.
type Frontend struct{}

// Name implements registry.Frontend.
func (Frontend) Name() string { return "window" }

// Description implements registry.Frontend.
func (Frontend) Description() string { return "desktop window (Ebiten)" }

// Run opens the window and blocks until it is closed.
func (Frontend) Run(ctx context.Context, s registry.Session) error {
	logger := s.Log()
	snap := s.Game.Snapshot()

	ebiten.SetWindowTitle(s.Game.Title())
	ebiten.SetWindowResizable(false)
	ebiten.SetWindowSize(int(snap.Width), int(snap.Height))
	if s.Runtime.TickRate > 0 {
		ebiten.SetTPS(s.Runtime.TickRate)
	}

	logger.Info("frontend started", "frontend", "window", "tps", ebiten.TPS())
	err := ebiten.RunGame(NewShell(ctx, s))
	logger.Info("frontend stopped", "frontend", "window", "score", s.Game.State().Score)

	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func init() {
	registry.Register("window", func() registry.Frontend { return Frontend{} })
}
