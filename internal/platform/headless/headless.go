// Package headless provides a shell that plays back recorded intents
// without any display. It backs replay verification and tests.
package headless

import (
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform"
)

// Shell feeds a fixed sequence of intent masks, one per frame, and quits
// when the sequence is exhausted.
type Shell struct {
	masks    []uint8
	pos      int
	last     pong.Snapshot
	rendered int
	pacer    *platform.Pacer
	onRender func(pong.Snapshot)
}

// Option configures a Shell.
type Option func(*Shell)

// WithPacing throttles playback to tickRate frames per second.
func WithPacing(tickRate int) Option {
	return func(s *Shell) {
		s.pacer = platform.NewPacer(tickRate)
	}
}

// WithRenderHook calls fn with every rendered frame.
func WithRenderHook(fn func(pong.Snapshot)) Option {
	return func(s *Shell) {
		s.onRender = fn
	}
}

// New creates a shell that plays masks in order.
func New(masks []uint8, opts ...Option) *Shell {
	s := &Shell{masks: masks}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PollIntents implements platform.Shell.
func (s *Shell) PollIntents() (core.InputFrame, bool) {
	if s.pos >= len(s.masks) {
		return core.InputFrame{}, true
	}
	in := core.FrameFromMask(s.masks[s.pos])
	s.pos++
	return in, false
}

// Render implements platform.Shell.
func (s *Shell) Render(snap pong.Snapshot) {
	s.last = snap
	s.rendered++
	if s.onRender != nil {
		s.onRender(snap)
	}
}

// WaitForNextFrame implements platform.Shell.
func (s *Shell) WaitForNextFrame() {
	if s.pacer != nil {
		s.pacer.Wait()
	}
}

// Close releases the pacer, if any.
func (s *Shell) Close() {
	if s.pacer != nil {
		s.pacer.Stop()
	}
}

// Last returns the most recently rendered frame.
func (s *Shell) Last() pong.Snapshot {
	return s.last
}

// Frames returns how many frames were rendered.
func (s *Shell) Frames() int {
	return s.rendered
}

var _ platform.Shell = (*Shell)(nil)
