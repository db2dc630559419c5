package pong

import "github.com/vovakirdan/tui-pong/internal/config"

// Params holds the fixed geometry and physics constants of one game.
// All lengths are field units.
type Params struct {
	Width  float64
	Height float64

	PaddleWidth  float64
	PaddleHeight float64
	PaddleOffset float64 // Gap between paddle bottom and field bottom
	PaddleStep   float64

	BallSize float64
	BallVX   float64 // Serve velocity
	BallVY   float64

	SpeedUp  float64 // Velocity multiplier per paddle hit
	MaxSpeed float64 // Per-axis cap, 0 = uncapped

	FreezePaddleOnGameOver bool
}

// ParamsFromConfig converts validated configuration into simulation parameters.
func ParamsFromConfig(cfg config.PongConfig) Params {
	return Params{
		Width:                  cfg.Field.Width,
		Height:                 cfg.Field.Height,
		PaddleWidth:            cfg.Paddle.Width,
		PaddleHeight:           cfg.Paddle.Height,
		PaddleOffset:           cfg.Paddle.Offset,
		PaddleStep:             cfg.Paddle.Step,
		BallSize:               cfg.Ball.Size,
		BallVX:                 cfg.Ball.VelocityX,
		BallVY:                 cfg.Ball.VelocityY,
		SpeedUp:                cfg.Physics.SpeedUp,
		MaxSpeed:               cfg.Physics.MaxSpeed,
		FreezePaddleOnGameOver: cfg.Gameplay.FreezePaddleOnGameOver,
	}
}

// DefaultParams returns the classic 800x600 parameters.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultPongConfig())
}

// PaddleY returns the y-coordinate of the paddle's top edge.
func (p Params) PaddleY() float64 {
	return p.Height - p.PaddleHeight - p.PaddleOffset
}

// MaxPaddleX returns the right-most legal paddle position.
func (p Params) MaxPaddleX() float64 {
	return p.Width - p.PaddleWidth
}
