//go:build nowindow

// Package window is empty in nowindow builds: no Ebiten, no cgo, and no
// "window" frontend in the registry.
package window

// HasDisplay always reports false so callers fall back to the terminal.
func HasDisplay() bool { return false }
