package replay

import (
	"context"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform"
	"github.com/vovakirdan/tui-pong/internal/platform/headless"
)

// Recorder collects the intent mask of every frame.
// It implements pong.Recorder.
type Recorder struct {
	mu    sync.Mutex
	masks []uint8
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one frame.
func (r *Recorder) Record(in core.InputFrame) {
	r.mu.Lock()
	r.masks = append(r.masks, in.Mask())
	r.mu.Unlock()
}

// Masks returns a copy of the recorded frames.
func (r *Recorder) Masks() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint8(nil), r.masks...)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.masks)
}

var _ pong.Recorder = (*Recorder)(nil)

// Outcome is the final state reached by playing a replay.
type Outcome struct {
	Frames   int
	Tick     int
	Score    int
	GameOver bool
}

// OutcomeOf summarises a game after its last frame.
func OutcomeOf(frames int, snap pong.Snapshot) Outcome {
	return Outcome{
		Frames:   frames,
		Tick:     snap.Tick,
		Score:    snap.Score,
		GameOver: snap.GameOver,
	}
}

// Simulate plays masks against a fresh game as fast as possible.
func Simulate(ctx context.Context, p pong.Params, masks []uint8) (Outcome, error) {
	game := pong.New(p)
	shell := headless.New(masks)
	defer shell.Close()

	if err := platform.Run(ctx, game, shell); err != nil {
		return Outcome{}, fmt.Errorf("replay: simulation interrupted: %w", err)
	}
	return OutcomeOf(shell.Frames(), game.Snapshot()), nil
}

// MismatchError reports a replay whose simulation diverged from the recording.
type MismatchError struct {
	Want Outcome
	Got  Outcome
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("replay: outcome mismatch: recorded %+v, simulated %+v", e.Want, e.Got)
}

// Verify re-simulates masks and checks the result against want.
func Verify(ctx context.Context, p pong.Params, masks []uint8, want Outcome) (Outcome, error) {
	got, err := Simulate(ctx, p, masks)
	if err != nil {
		return got, err
	}
	if got != want {
		return got, &MismatchError{Want: want, Got: got}
	}
	return got, nil
}
