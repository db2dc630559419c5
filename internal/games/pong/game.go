// Package pong implements single-player Pong: the player moves a paddle along
// the bottom edge, every deflection scores a point and speeds the ball up, and
// the game ends when the ball drops past the paddle.
package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
)

// Text shown to the player.
const (
	GameOverBanner = "Game Over! Press SPACE to restart"
	ScoreFormat    = "Score: %d"
)

// Recorder receives every input frame fed to a Game.
type Recorder interface {
	Record(in core.InputFrame)
}

// Game drives a State one frame at a time on behalf of a shell.
type Game struct {
	params    Params
	state     State
	tickCount int // Ticks simulated since the current State was created
	recorder  Recorder
}

// New creates a game with the given parameters, ready to play.
func New(p Params) *Game {
	g := &Game{params: p}
	g.Reset()
	return g
}

// ID returns the identifier used in logs and storage.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pong"
}

// Params returns the game's fixed parameters.
func (g *Game) Params() Params {
	return g.params
}

// SetRecorder attaches a recorder; nil detaches it.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// Reset discards the current state unconditionally and starts a fresh game.
func (g *Game) Reset() {
	g.state = NewState(g.params)
	g.tickCount = 0
}

// Step processes one frame: a restart intent (honoured only after game over),
// then paddle intents, then the physics tick if the game is still running.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.recorder != nil {
		g.recorder.Record(in)
	}

	var result core.StepResult

	if in.Has(core.ActionRestart) && g.state.GameOver {
		g.state = g.state.Restart(g.params)
		g.tickCount = 0
		result.Restarted = true
	}

	if !g.state.GameOver || !g.params.FreezePaddleOnGameOver {
		if in.Has(core.ActionLeft) {
			g.state.MovePaddle(Left, g.params)
		}
		if in.Has(core.ActionRight) {
			g.state.MovePaddle(Right, g.params)
		}
	}

	if !g.state.GameOver {
		g.tickCount++
		result.Hit = g.state.Tick(g.params)
		result.Ended = g.state.GameOver
	}

	result.State = g.State()
	return result
}

// State returns the status summary used by shells.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.GameOver,
	}
}

// Render projects the field onto a terminal screen buffer.
// Row 0 holds the score, the remaining rows map linearly to the field.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w <= 0 || h < 2 {
		return
	}
	v := newViewport(g.params, w, h-1, 1)

	// Paddle
	x0 := v.col(g.state.PaddleX)
	x1 := v.col(g.state.PaddleX + g.params.PaddleWidth)
	py := min(v.row(g.params.PaddleY()), h-1)
	dst.DrawHLine(x0, py, max(1, x1-x0), PaddleChar, core.ColorBrightWhite)

	// Ball, skipped when it has left the field
	if g.state.BallY <= g.params.Height {
		dst.SetColored(v.col(g.state.BallX), v.row(g.state.BallY), BallChar, core.ColorYellow)
	}

	dst.DrawTextColored(1, 0, fmt.Sprintf(ScoreFormat, g.state.Score), core.ColorCyan)

	if g.state.GameOver {
		g.drawCenteredMessage(dst, GameOverBanner, fmt.Sprintf(ScoreFormat, g.state.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := min(max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorRed)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// viewport maps field units to screen cells.
type viewport struct {
	sx, sy float64
	top    int
}

func newViewport(p Params, cols, rows, top int) viewport {
	return viewport{
		sx:  float64(cols) / p.Width,
		sy:  float64(rows) / p.Height,
		top: top,
	}
}

func (v viewport) col(x float64) int {
	return int(x * v.sx)
}

func (v viewport) row(y float64) int {
	return v.top + int(y*v.sy)
}
