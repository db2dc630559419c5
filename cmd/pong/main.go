// pong is single-player Pong for the terminal, a desktop window, or SSH.
//
// Usage:
//
//	pong play                - Play in the terminal
//	pong play --shell window - Play in a desktop window
//	pong play --record       - Play and save a replay
//	pong shells              - List available frontends
//	pong serve               - Start SSH server for remote play
//	pong replays             - Browse recorded replays
//	pong replay <id>         - Verify or watch a replay
//	pong config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Custom config YAML
//	--db <path>        - Replay database (default: ~/.pong/replays.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--fps <rate>       - Override the configured tick rate
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"

	// Import frontends to register them
	_ "github.com/vovakirdan/tui-pong/internal/platform/tui"
	_ "github.com/vovakirdan/tui-pong/internal/platform/window"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagFPS      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - keep the ball in play",
	Long: `Single-player Pong. Move the paddle along the bottom edge to deflect
the ball; every hit scores a point and speeds the ball up. The game ends
when the ball drops past the paddle.

Available commands:
  play     - Play locally (terminal or window)
  shells   - List available frontends
  serve    - Start SSH server for remote play
  replays  - Browse recorded replays
  replay   - Verify or watch a recorded replay
  config   - Print the effective configuration

Examples:
  pong play
  pong play --shell window --record
  pong serve --ssh :2222
  pong replay 1f0c2a9b --watch`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shellsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger creates a logger writing to ~/.pong/pong.log.
// The terminal frontend owns the screen, so it cannot log to stderr.
// Returns a discarding logger if the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".pong")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "pong.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig loads the effective configuration and applies --fps.
func loadConfig(logger *log.Logger) (config.PongConfig, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	logger.Info("configuration loaded", "source", source, "tick_rate", cfg.Gameplay.TickRate)
	return cfg, nil
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig(tickRate int) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = tickRate
	return rt
}
