// Package config provides YAML-based tuning for the Pong simulation and
// its presentation shells.
package config

import (
	"errors"
	"fmt"
	"math"
)

// PongConfig contains all tunable parameters for Pong.
type PongConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Ball     BallConfig     `yaml:"ball"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// FieldConfig defines the playing field in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // Distance between paddle bottom and field bottom
	Step   float64 `yaml:"step"`   // Movement per frame
}

// BallConfig defines the ball size and serve velocity.
type BallConfig struct {
	Size      float64 `yaml:"size"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}

// PhysicsConfig defines collision response.
type PhysicsConfig struct {
	SpeedUp  float64 `yaml:"speed_up"`  // Multiplier applied on each paddle hit
	MaxSpeed float64 `yaml:"max_speed"` // Per-axis cap, 0 = uncapped
}

// GameplayConfig defines frame pacing and state machine options.
type GameplayConfig struct {
	TickRate               int  `yaml:"tick_rate"`
	FreezePaddleOnGameOver bool `yaml:"freeze_paddle_on_game_over"`
}

// Validate checks that the configuration cannot break simulation invariants.
func (c PongConfig) Validate() error {
	var errs []error

	for _, f := range c.floatFields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %g", f.name, f.value))
		}
	}

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, fmt.Errorf("paddle size must be positive, got %gx%g", c.Paddle.Width, c.Paddle.Height))
	}
	if c.Paddle.Width > c.Field.Width {
		errs = append(errs, fmt.Errorf("paddle width %g exceeds field width %g", c.Paddle.Width, c.Field.Width))
	}
	if c.Paddle.Offset < 0 || c.Paddle.Offset+c.Paddle.Height > c.Field.Height {
		errs = append(errs, fmt.Errorf("paddle offset %g does not fit the field", c.Paddle.Offset))
	}
	if c.Paddle.Step <= 0 {
		errs = append(errs, fmt.Errorf("paddle step must be positive, got %g", c.Paddle.Step))
	}
	if c.Ball.Size <= 0 {
		errs = append(errs, fmt.Errorf("ball size must be positive, got %g", c.Ball.Size))
	}
	if c.Ball.VelocityX == 0 || c.Ball.VelocityY == 0 {
		errs = append(errs, errors.New("ball velocity components must be non-zero"))
	}
	if c.Physics.SpeedUp < 1 {
		errs = append(errs, fmt.Errorf("speed_up must be >= 1, got %g", c.Physics.SpeedUp))
	}
	if c.Physics.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("max_speed must be >= 0, got %g", c.Physics.MaxSpeed))
	}
	if c.Gameplay.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Gameplay.TickRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

type namedFloat struct {
	name  string
	value float64
}

// floatFields lists every float setting by its YAML path.
func (c PongConfig) floatFields() []namedFloat {
	return []namedFloat{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.offset", c.Paddle.Offset},
		{"paddle.step", c.Paddle.Step},
		{"ball.size", c.Ball.Size},
		{"ball.velocity_x", c.Ball.VelocityX},
		{"ball.velocity_y", c.Ball.VelocityY},
		{"physics.speed_up", c.Physics.SpeedUp},
		{"physics.max_speed", c.Physics.MaxSpeed},
	}
}
