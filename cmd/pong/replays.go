package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `List recorded replays, newest first.

In a terminal this opens an interactive browser: Enter watches the
selected replay, X deletes it. Use --plain (or pipe the output) for a
simple listing.

Examples:
  pong replays
  pong replays --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 50, "Maximum number of replays to show")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printReplays(store); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rt := runtimeConfig(0)
	selected, err := tui.RunReplayBrowser(store, flagLimit, rt.ScreenW, rt.ScreenH)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if selected == "" {
		return
	}

	if err := watchReplay(store, selected); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printReplays(store *storage.Store) error {
	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		return err
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play --record' to save one!")
		return nil
	}

	fmt.Printf("  %-8s  %-6s  %-8s  %-9s  %s\n", "ID", "Score", "Ticks", "Result", "Date")
	fmt.Printf("  %-8s  %-6s  %-8s  %-9s  %s\n", "--", "-----", "-----", "------", "----")

	for _, r := range replays {
		row := tui.ReplayRow(r)
		fmt.Printf("  %-8s  %-6s  %-8s  %-9s  %s\n", row[0], row[1], row[2], row[3], r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if total, err := store.CountReplays(); err == nil && total > len(replays) {
		fmt.Printf("Showing %d of %d replays.\n", len(replays), total)
	}
	fmt.Println("Run 'pong replay <id>' to verify a replay or add --watch to view it.")
	return nil
}
