package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Direction is a paddle movement intent.
type Direction int

const (
	Left Direction = iota
	Right
)

// State is the complete mutable simulation.
// Exactly one State is live per game; a restart replaces it wholesale.
type State struct {
	BallX  float64 // Ball centre
	BallY  float64
	BallVX float64 // Never zero
	BallVY float64 // Never zero

	PaddleX float64 // Left edge, within [0, Width-PaddleWidth]

	Score    int
	GameOver bool
}

// NewState returns a fresh game: ball centred and moving down-right,
// paddle centred, score zero.
func NewState(p Params) State {
	return State{
		BallX:   p.Width / 2,
		BallY:   p.Height / 2,
		BallVX:  p.BallVX,
		BallVY:  p.BallVY,
		PaddleX: p.Width/2 - p.PaddleWidth/2,
	}
}

// MovePaddle shifts the paddle one step, clamped to the field.
func (s *State) MovePaddle(dir Direction, p Params) {
	switch dir {
	case Left:
		s.PaddleX -= p.PaddleStep
	case Right:
		s.PaddleX += p.PaddleStep
	}
	s.PaddleX = core.ClampF(s.PaddleX, 0, p.MaxPaddleX())
}

// PaddleBox returns the paddle's bounding box.
func (s State) PaddleBox(p Params) core.Box {
	return core.NewBox(s.PaddleX, p.PaddleY(), p.PaddleWidth, p.PaddleHeight)
}

// BallBox returns the ball's bounding box.
func (s State) BallBox(p Params) core.Box {
	return core.CenteredBox(s.BallX, s.BallY, p.BallSize, p.BallSize)
}

// Tick advances the simulation by one frame and reports whether the paddle
// deflected the ball. It does nothing once the game is over.
//
// Walls reflect velocity without pushing the ball back inside, so the ball
// can sit past an edge for one frame. Large speeds can tunnel through the
// paddle since there is no sub-stepping.
func (s *State) Tick(p Params) bool {
	if s.GameOver {
		return false
	}

	s.BallX += s.BallVX
	s.BallY += s.BallVY

	if s.BallX <= 0 || s.BallX >= p.Width {
		s.BallVX = -s.BallVX
	}
	if s.BallY <= 0 {
		s.BallVY = -s.BallVY
	}

	hit := s.BallBox(p).Intersects(s.PaddleBox(p))
	if hit {
		// Always leave upward, even if the ball was already rising through the paddle.
		s.BallVY = -math.Abs(s.BallVY)
		s.Score++
		s.BallVX *= p.SpeedUp
		s.BallVY *= p.SpeedUp
		s.capSpeed(p.MaxSpeed)
	}

	if s.BallY > p.Height {
		s.GameOver = true
	}

	return hit
}

// capSpeed limits each velocity component to maxSpeed, keeping its sign.
func (s *State) capSpeed(maxSpeed float64) {
	if maxSpeed <= 0 {
		return
	}
	if math.Abs(s.BallVX) > maxSpeed {
		s.BallVX = math.Copysign(maxSpeed, s.BallVX)
	}
	if math.Abs(s.BallVY) > maxSpeed {
		s.BallVY = math.Copysign(maxSpeed, s.BallVY)
	}
}

// Restart returns a fresh state if the game is over, otherwise s unchanged.
func (s State) Restart(p Params) State {
	if !s.GameOver {
		return s
	}
	return NewState(p)
}

// Speed returns the magnitude of the ball velocity.
func (s State) Speed() float64 {
	return math.Hypot(s.BallVX, s.BallVY)
}
