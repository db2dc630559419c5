package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/window"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagShell  string
	flagRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Pong",
	Long: `Start a game in the terminal or in a desktop window.

Controls (terminal):
  Left/A/H     - Move paddle left
  Right/D/L    - Move paddle right
  Space/R      - Restart (after game over)
  Q/Esc/Ctrl+C - Quit

Controls (window):
  Left/Right   - Move paddle (hold)
  Space        - Restart (after game over)
  Q/Esc        - Quit

Without a display, or in a nowindow build, the window frontend falls back
to the terminal.

Examples:
  pong play
  pong play --shell window
  pong play --record
  pong play --config ./fast.yaml --fps 120`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagShell, "shell", "tui", "Frontend: "+strings.Join(frontendNames(), ", "))
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save a replay of the session")
}

func frontendNames() []string {
	var names []string
	for _, f := range registry.List() {
		names = append(names, f.Name)
	}
	return names
}

func runPlay(_ *cobra.Command, _ []string) {
	shell := flagShell
	if shell == "window" && !window.HasDisplay() {
		newLogger(os.Stderr).Warn("window unavailable, falling back to the terminal",
			"compiled", registry.Exists("window"))
		shell = "tui"
	}

	frontend, err := registry.Create(shell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pong shells' to see available frontends.")
		os.Exit(1)
	}

	// The terminal frontend owns stderr while it runs
	logger := newLogger(os.Stderr)
	closeLog := func() {}
	if shell == "tui" {
		logger, closeLog = fileLogger()
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game := pong.New(pong.ParamsFromConfig(cfg))

	// Open replay storage before playing, so a failure is reported up front
	var store *storage.Store
	var rec *replay.Recorder
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database, not recording: %v\n", err)
			logger.Warn("recording disabled", "error", err)
		} else {
			rec = replay.NewRecorder()
			game.SetRecorder(rec)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := frontend.Run(ctx, registry.Session{
		Game:    game,
		Runtime: runtimeConfig(cfg.Gameplay.TickRate),
		Logger:  logger,
	})
	stop()

	if store != nil {
		if rec.Len() > 0 {
			saveReplay(store, rec, game, cfg, logger)
		}
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// saveReplay stores the recorded session. Failures are reported but not fatal.
func saveReplay(store *storage.Store, rec *replay.Recorder, game *pong.Game, cfg config.PongConfig, logger *log.Logger) {
	cfgYAML, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: replay not saved: %v\n", err)
		return
	}

	outcome := replay.OutcomeOf(rec.Len(), game.Snapshot())
	id, err := store.SaveReplay(storage.ReplayRecord{
		GameID:     game.ID(),
		Frames:     outcome.Frames,
		FinalTick:  outcome.Tick,
		FinalScore: outcome.Score,
		GameOver:   outcome.GameOver,
		Config:     string(cfgYAML),
		Inputs:     replay.Encode(rec.Masks()),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: replay not saved: %v\n", err)
		logger.Warn("replay not saved", "error", err)
		return
	}

	logger.Info("replay saved", "id", id, "frames", outcome.Frames, "score", outcome.Score)
	fmt.Printf("Replay saved: %s (score %d, %d frames)\n", id, outcome.Score, outcome.Frames)
}
