package pong

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// endGame drives the ball below the field.
func endGame(t *testing.T, g *Game) {
	t.Helper()
	g.state.BallX = 100
	g.state.BallY = g.params.Height + 1
	result := g.Step(frame())
	if !result.Ended || !result.State.GameOver {
		t.Fatalf("Expected the game to end, got %+v", result)
	}
}

type sliceRecorder struct {
	frames []core.InputFrame
}

func (r *sliceRecorder) Record(in core.InputFrame) {
	r.frames = append(r.frames, in.Clone())
}

func TestGameStepOrder(t *testing.T) {
	g := New(DefaultParams())

	result := g.Step(frame(core.ActionLeft))

	snap := g.Snapshot()
	if snap.PaddleX != 340 {
		t.Errorf("Paddle should move left before the tick, x = %g", snap.PaddleX)
	}
	if snap.BallX != 405 || snap.BallY != 305 {
		t.Errorf("Ball should advance one tick, got (%g, %g)", snap.BallX, snap.BallY)
	}
	if snap.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", snap.Tick)
	}
	if result.Hit || result.Ended || result.Restarted {
		t.Errorf("No events expected on the first frame, got %+v", result)
	}
}

func TestGameBothDirectionsCancel(t *testing.T) {
	g := New(DefaultParams())

	g.Step(frame(core.ActionLeft, core.ActionRight))

	if g.Snapshot().PaddleX != 350 {
		t.Errorf("Left and right in one frame should cancel out, x = %g", g.Snapshot().PaddleX)
	}
}

func TestGameRestartIgnoredWhilePlaying(t *testing.T) {
	g := New(DefaultParams())
	g.Step(frame())
	before := g.state

	result := g.Step(frame(core.ActionRestart))

	if result.Restarted {
		t.Error("Restart while playing should be ignored")
	}
	// Only the regular tick should have happened
	if g.state.BallX != before.BallX+before.BallVX {
		t.Errorf("Ball should keep moving, x = %g", g.state.BallX)
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := New(DefaultParams())
	g.state.Score = 4
	endGame(t, g)

	result := g.Step(frame(core.ActionRestart))

	if !result.Restarted {
		t.Fatal("Restart after game over should start a fresh game")
	}
	if result.State.GameOver || result.State.Score != 0 {
		t.Errorf("Fresh game expected, got %+v", result.State)
	}

	// The fresh game is ticked in the same frame
	want := NewState(g.params)
	want.Tick(g.params)
	if g.state != want {
		t.Errorf("State after restart frame = %+v, expected %+v", g.state, want)
	}
	if g.Snapshot().Tick != 1 {
		t.Errorf("Tick counter should restart, got %d", g.Snapshot().Tick)
	}
}

func TestGameOverStopsPhysics(t *testing.T) {
	g := New(DefaultParams())
	endGame(t, g)
	frozen := g.state

	for range 5 {
		result := g.Step(frame())
		if result.Hit || result.Ended {
			t.Errorf("No events expected after game over, got %+v", result)
		}
	}

	if g.state != frozen {
		t.Errorf("State changed after game over:\n before %+v\n after  %+v", frozen, g.state)
	}
}

func TestGamePaddleMovesAfterGameOver(t *testing.T) {
	g := New(DefaultParams())
	endGame(t, g)

	g.Step(frame(core.ActionRight))

	if g.state.PaddleX != 360 {
		t.Errorf("Paddle should still move after game over by default, x = %g", g.state.PaddleX)
	}
}

func TestGameFreezePaddleOnGameOver(t *testing.T) {
	p := DefaultParams()
	p.FreezePaddleOnGameOver = true
	g := New(p)
	endGame(t, g)

	g.Step(frame(core.ActionRight))

	if g.state.PaddleX != 350 {
		t.Errorf("Paddle should be frozen after game over, x = %g", g.state.PaddleX)
	}
}

func TestGameScoreMonotonic(t *testing.T) {
	g := New(DefaultParams())
	prev := 0
	hits := 0

	for i := 0; i < 5000 && !g.State().GameOver; i++ {
		// Steer under the ball
		in := core.NewInputFrame()
		centre := g.state.PaddleX + g.params.PaddleWidth/2
		if g.state.BallX < centre-5 {
			in.Set(core.ActionLeft)
		} else if g.state.BallX > centre+5 {
			in.Set(core.ActionRight)
		}

		result := g.Step(in)
		score := result.State.Score

		if score < prev {
			t.Fatalf("Frame %d: score decreased from %d to %d", i, prev, score)
		}
		if result.Hit {
			hits++
			if score != prev+1 {
				t.Fatalf("Frame %d: a hit should add exactly 1 point (%d -> %d)", i, prev, score)
			}
			if g.state.BallVY >= 0 {
				t.Fatalf("Frame %d: ball should move up after a hit, vy = %g", i, g.state.BallVY)
			}
		} else if score != prev {
			t.Fatalf("Frame %d: score changed without a hit", i)
		}
		prev = score
	}

	if hits == 0 {
		t.Error("A tracking paddle should deflect the ball at least once")
	}
	if prev != hits {
		t.Errorf("Score %d should equal hit count %d", prev, hits)
	}
}

func TestGameRecorder(t *testing.T) {
	g := New(DefaultParams())
	rec := &sliceRecorder{}
	g.SetRecorder(rec)

	g.Step(frame(core.ActionLeft))
	g.Step(frame())
	g.Step(frame(core.ActionRight, core.ActionRestart))

	if len(rec.frames) != 3 {
		t.Fatalf("Recorder should see every frame, got %d", len(rec.frames))
	}
	if !rec.frames[0].Has(core.ActionLeft) || !rec.frames[2].Has(core.ActionRestart) {
		t.Error("Recorder should receive the frames as given")
	}

	g.SetRecorder(nil)
	g.Step(frame())
	if len(rec.frames) != 3 {
		t.Error("Detached recorder should not receive frames")
	}
}

func TestGameReset(t *testing.T) {
	g := New(DefaultParams())
	for range 30 {
		g.Step(frame(core.ActionRight))
	}

	g.Reset()

	if g.state != NewState(g.params) {
		t.Errorf("Reset should restore a fresh state, got %+v", g.state)
	}
	if g.Snapshot().Tick != 0 {
		t.Errorf("Reset should clear the tick counter, got %d", g.Snapshot().Tick)
	}
}

func TestGameRender(t *testing.T) {
	g := New(DefaultParams())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.HasPrefix(screen.Row(0), " Score: 0") {
		t.Errorf("Row 0 should show the score, got %q", screen.Row(0))
	}

	// Ball at (400, 300) maps to column 40, row 1 + 300*23/600 = 12
	if screen.Get(40, 12) != BallChar {
		t.Errorf("Ball should be drawn at (40, 12), got %q", screen.Get(40, 12))
	}

	// Paddle at x 350..450, top 580 maps to columns 35..44 on the last row
	for x := 35; x < 45; x++ {
		if screen.Get(x, 23) != PaddleChar {
			t.Errorf("Paddle should cover column %d on row 23, got %q", x, screen.Get(x, 23))
		}
	}
	if screen.Get(34, 23) == PaddleChar || screen.Get(45, 23) == PaddleChar {
		t.Error("Paddle should not extend beyond its projected width")
	}

	if strings.Contains(screen.String(), GameOverBanner) {
		t.Error("Banner should not be shown while playing")
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := New(DefaultParams())
	endGame(t, g)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.String(), GameOverBanner) {
		t.Errorf("Game over banner missing:\n%s", screen.String())
	}
	if strings.ContainsRune(screen.String(), BallChar) {
		t.Error("Ball below the field should not be drawn")
	}
}

func TestGameRenderTinyScreen(t *testing.T) {
	g := New(DefaultParams())

	// Must not panic on degenerate sizes
	g.Render(core.NewScreen(0, 0))
	g.Render(core.NewScreen(10, 1))
	g.Render(core.NewScreen(3, 3))
}
