package headless

import (
	"context"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform"
)

func TestShellPlaysMasks(t *testing.T) {
	masks := []uint8{core.MaskRight, core.MaskRight, core.MaskRight, 0}
	var hooked int
	shell := New(masks, WithRenderHook(func(pong.Snapshot) { hooked++ }))
	defer shell.Close()

	if err := platform.Run(context.Background(), pong.New(pong.DefaultParams()), shell); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if shell.Frames() != len(masks) || hooked != len(masks) {
		t.Errorf("Expected %d frames, rendered %d, hooked %d", len(masks), shell.Frames(), hooked)
	}
	if shell.Last().PaddleX != 380 {
		t.Errorf("Paddle should end at 380, got %g", shell.Last().PaddleX)
	}
}

func TestShellEmptyQuitsImmediately(t *testing.T) {
	shell := New(nil)

	if err := platform.Run(context.Background(), pong.New(pong.DefaultParams()), shell); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if shell.Frames() != 0 {
		t.Errorf("Empty script should render nothing, got %d frames", shell.Frames())
	}
}

func TestShellWithPacing(t *testing.T) {
	shell := New([]uint8{0, 0}, WithPacing(500))
	defer shell.Close()

	if err := platform.Run(context.Background(), pong.New(pong.DefaultParams()), shell); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if shell.Last().Tick != 2 {
		t.Errorf("Expected 2 ticks, got %d", shell.Last().Tick)
	}
}
