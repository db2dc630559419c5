// Package platform defines the contract between the Pong simulation and the
// shells that present it, plus a synchronous frame loop for shells that do
// not own their own event loop.
package platform

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// Shell is a presentation layer driven one frame at a time.
type Shell interface {
	// PollIntents returns this frame's intents. quit ends the loop.
	PollIntents() (in core.InputFrame, quit bool)
	// Render draws a frame. The snapshot is a copy and may be retained.
	Render(snap pong.Snapshot)
	// WaitForNextFrame blocks until the next frame boundary.
	WaitForNextFrame()
}

// Run drives game with shell until the shell asks to quit or ctx is done.
// Each frame is processed start to finish before the next one begins.
func Run(ctx context.Context, game *pong.Game, shell Shell) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		in, quit := shell.PollIntents()
		if quit {
			return nil
		}

		game.Step(in)
		shell.Render(game.Snapshot())
		shell.WaitForNextFrame()
	}
}

// FrameInterval returns the duration of one frame at tickRate frames per second.
func FrameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// Pacer throttles a loop to a fixed frame rate.
// Frames that run late are not made up; the game simply slows down.
type Pacer struct {
	ticker *time.Ticker
}

// NewPacer creates a pacer for tickRate frames per second.
func NewPacer(tickRate int) *Pacer {
	return &Pacer{ticker: time.NewTicker(FrameInterval(tickRate))}
}

// Wait blocks until the next frame boundary.
func (p *Pacer) Wait() {
	<-p.ticker.C
}

// Stop releases the pacer's timer.
func (p *Pacer) Stop() {
	p.ticker.Stop()
}
