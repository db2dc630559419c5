package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a recorded replay",
	Long: `Re-simulate a recorded replay and check that it reaches the recorded
final score and tick. With --watch, play it back in the terminal at the
recorded tick rate instead.

A unique prefix of the replay ID is enough.

Examples:
  pong replay 1f0c2a9b
  pong replay 1f0c2a9b --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the replay back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagWatch {
		err = watchReplay(store, args[0])
	} else {
		err = verifyReplay(store, args[0])
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadReplay fetches a replay with the configuration and inputs it was recorded with.
func loadReplay(store *storage.Store, id string) (*storage.ReplayRecord, config.PongConfig, []uint8, error) {
	rec, err := store.Replay(id)
	if err != nil {
		return nil, config.PongConfig{}, nil, err
	}
	cfg, err := config.Parse([]byte(rec.Config))
	if err != nil {
		return nil, config.PongConfig{}, nil, fmt.Errorf("replay %s: %w", tui.ShortID(rec.ID), err)
	}
	masks, err := replay.Decode(rec.Inputs)
	if err != nil {
		return nil, config.PongConfig{}, nil, fmt.Errorf("replay %s: %w", tui.ShortID(rec.ID), err)
	}
	if masks == nil {
		// A nil script would mean live input
		masks = []uint8{}
	}
	return rec, cfg, masks, nil
}

func verifyReplay(store *storage.Store, id string) error {
	logger := newLogger(os.Stderr)

	rec, cfg, masks, err := loadReplay(store, id)
	if err != nil {
		return err
	}

	want := replay.Outcome{
		Frames:   rec.Frames,
		Tick:     rec.FinalTick,
		Score:    rec.FinalScore,
		GameOver: rec.GameOver,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	got, err := replay.Verify(ctx, pong.ParamsFromConfig(cfg), masks, want)
	var mismatch *replay.MismatchError
	if errors.As(err, &mismatch) {
		logger.Error("replay diverged", "id", rec.ID, "recorded_score", want.Score, "simulated_score", got.Score)
	}
	if err != nil {
		return err
	}

	logger.Debug("replay verified", "id", rec.ID)
	fmt.Printf("Replay %s OK: score %d after %d ticks (%d frames)\n", rec.ID, got.Score, got.Tick, got.Frames)
	return nil
}

func watchReplay(store *storage.Store, id string) error {
	rec, cfg, masks, err := loadReplay(store, id)
	if err != nil {
		return err
	}

	frontend, err := registry.Create("tui")
	if err != nil {
		return err
	}

	logger, closeLog := fileLogger()
	defer closeLog()
	logger.Info("watching replay", "id", rec.ID, "frames", len(masks))

	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return frontend.Run(ctx, registry.Session{
		Game:    pong.New(pong.ParamsFromConfig(cfg)),
		Runtime: runtimeConfig(cfg.Gameplay.TickRate),
		Logger:  logger,
		Script:  masks,
	})
}
