package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every board variant that can be passed to play, replay and scores.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Fprintln(out, "No variants available.")
		return
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-6s  %-14s\n", maxIDLen, "ID", "Target", "Title")
	fmt.Fprintf(out, "  %-*s  %-6s  %-14s\n", maxIDLen, "--", "------", "-----")

	for _, v := range variants {
		fmt.Fprintf(out, "  %-*s  %-6d  %s\n", maxIDLen, v.ID, v.Target, v.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'merge2048 play <id>' to play a variant.")
}
