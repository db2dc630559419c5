package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/registry"
)

var shellsCmd = &cobra.Command{
	Use:   "shells",
	Short: "List available frontends",
	Long:  `Shows the frontends that 'pong play --shell' accepts.`,
	Args:  cobra.NoArgs,
	Run:   runShells,
}

func runShells(_ *cobra.Command, _ []string) {
	frontends := registry.List()

	if len(frontends) == 0 {
		fmt.Println("No frontends available.")
		return
	}

	fmt.Println("Available frontends:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, f := range frontends {
		if len(f.Name) > maxNameLen {
			maxNameLen = len(f.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, f := range frontends {
		fmt.Printf("  %-*s  %s\n", maxNameLen, f.Name, f.Description)
	}

	fmt.Println()
	fmt.Println("Run 'pong play --shell <name>' to use one.")
}
