package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/registry"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 results for a variant, or a summary of every
variant played when no variant is given.

Examples:
  merge2048 scores
  merge2048 scores 4x4
  merge2048 scores 5x5 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results for the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	if flagClear && len(args) == 0 {
		return errors.New("--clear needs a variant")
	}

	// Open score storage
	store, err := storage.Open(app.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return printSummary(out, store)
	}

	variantID := args[0]
	if flagClear {
		if err := store.ClearScores(variantID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared results for %s.\n", variantID)
		return nil
	}
	return printTopScores(out, store, variantID)
}

func printTopScores(out io.Writer, store *storage.Store, variantID string) error {
	title := variantID
	if v, err := registry.Get(variantID); err == nil {
		title = v.Title
	}

	scores, err := store.TopScores(variantID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n", title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'merge2048 play %s' to set the first high score!\n", variantID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "Rank", "Score", "Tile", "Moves", "Won", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "----", "-----", "----", "-----", "---", "----")

	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-6d  %-3s  %s\n",
			i+1, e.Score, e.MaxTile, e.Moves, won, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetVariantStats(variantID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Games: %d  Wins: %d  Average: %.0f\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	return nil
}

func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllVariantStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-10s  %-6s  %-5s  %-8s  %-6s  %s\n", "Variant", "Games", "Wins", "Best", "Tile", "Last played")
	fmt.Fprintf(out, "  %-10s  %-6s  %-5s  %-8s  %-6s  %s\n", "-------", "-----", "----", "----", "----", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Fprintf(out, "  %-10s  %-6d  %-5d  %-8d  %-6d  %s\n",
			id, s.GamesCount, s.Wins, s.HighScore, s.BestTile, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
