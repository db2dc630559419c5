package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	if cfg != DefaultPongConfig() {
		t.Errorf("Embedded YAML differs from DefaultPongConfig():\n got  %+v\n want %+v", cfg, DefaultPongConfig())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  max_speed: 20\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Physics.MaxSpeed != 20 {
		t.Errorf("MaxSpeed = %g, expected 20", cfg.Physics.MaxSpeed)
	}
	if cfg.Physics.SpeedUp != 1.1 {
		t.Errorf("SpeedUp should keep default 1.1, got %g", cfg.Physics.SpeedUp)
	}
	if cfg.Field.Width != 800 || cfg.Field.Height != 600 {
		t.Errorf("Field should keep default 800x600, got %gx%g", cfg.Field.Width, cfg.Field.Height)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero velocity", "ball:\n  velocity_x: 0\n", "non-zero"},
		{"paddle wider than field", "paddle:\n  width: 900\n", "exceeds field width"},
		{"slow down on hit", "physics:\n  speed_up: 0.5\n", "speed_up"},
		{"negative cap", "physics:\n  max_speed: -1\n", "max_speed"},
		{"no frames", "gameplay:\n  tick_rate: 0\n", "tick_rate"},
		{"broken yaml", "field: [", "cannot parse"},
		{"nan velocity", "ball:\n  velocity_x: .nan\n", "ball.velocity_x must be finite"},
		{"infinite speed up", "physics:\n  speed_up: .inf\n", "physics.speed_up must be finite"},
		{"infinite field", "field:\n  width: .inf\n", "field.width must be finite"},
		{"negative infinite cap", "physics:\n  max_speed: -.inf\n", "physics.max_speed must be finite"},
		{"nan offset", "paddle:\n  offset: .nan\n", "paddle.offset must be finite"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.yaml")
	if err := os.WriteFile(path, []byte("field:\n  width: 400\n  height: 300\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Field.Width != 400 || cfg.Field.Height != 300 {
		t.Errorf("Field = %gx%g, expected 400x300", cfg.Field.Width, cfg.Field.Height)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultPongConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "speed_up: 1.1") {
		t.Errorf("Marshalled YAML should use snake_case keys, got:\n%s", data)
	}

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if cfg != DefaultPongConfig() {
		t.Error("Marshal/Parse should preserve the configuration")
	}
}
