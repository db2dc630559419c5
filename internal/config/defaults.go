package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the built-in Pong configuration.
// These match the constants of the classic single-player game.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:  100,
			Height: 10,
			Offset: 10,
			Step:   10,
		},
		Ball: BallConfig{
			Size:      10,
			VelocityX: 5,
			VelocityY: 5,
		},
		Physics: PhysicsConfig{
			SpeedUp:  1.1,
			MaxSpeed: 0,
		},
		Gameplay: GameplayConfig{
			TickRate:               60,
			FreezePaddleOnGameOver: false,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPongYAML
}
