//go:build nowindow

package window

import (
	"testing"

	"github.com/vovakirdan/tui-pong/internal/registry"
)

func TestNoWindowBuild(t *testing.T) {
	if HasDisplay() {
		t.Error("HasDisplay() = true, expected false without the window frontend")
	}
	if registry.Exists("window") {
		t.Error("window frontend should not be registered in a nowindow build")
	}
}
