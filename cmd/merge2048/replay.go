package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

var (
	flagMoves   string
	flagBoard   string
	flagVerbose bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [variant]",
	Short: "Replay a move script deterministically",
	Long: `Run a script of moves (L, R, U, D) against a seeded game and print
the final state. The same seed and script always produce the same game.

A starting board can be given with --board as rows separated by '/'
and cells by ',', with 0, '.' or '_' for empty cells. The board size
overrides the variant size.

Replays are not saved to the scores database.

Examples:
  merge2048 replay --seed 42 --moves LLURDD
  merge2048 replay 5x5 --seed 7 --moves "L R L R" -v
  merge2048 replay --board "2,2,0,0/0,0,0,0/0,0,4,0/0,0,0,4" --moves LU`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagMoves, "moves", "", "Move script, e.g. LLURDD")
	replayCmd.Flags().StringVar(&flagBoard, "board", "", "Starting board, e.g. 2,2,0,0/0,0,0,0/...")
	replayCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print the board after every move")
}

func runReplay(cmd *cobra.Command, args []string) error {
	_, cfg, err := resolveGame(app.game, args)
	if err != nil {
		return err
	}

	moves, err := t2048.ParseMoves(flagMoves)
	if err != nil {
		return err
	}

	var board *t2048.Grid
	if flagBoard != "" {
		board, err = t2048.ParseGrid(flagBoard)
		if err != nil {
			return err
		}
	}

	rng, seed := newSource(app.seed)
	app.logger.Debug("replaying", "seed", seed, "moves", len(moves))

	return replay(cmd.OutOrStdout(), cfg, rng, seed, board, moves, flagVerbose)
}

// replay plays moves on a fresh (or given) board and prints the outcome.
func replay(out io.Writer, cfg t2048.Config, rng core.Source, seed int64, board *t2048.Grid, moves []t2048.Direction, verbose bool) error {
	var (
		game *t2048.Session
		err  error
	)
	if board != nil {
		game, err = t2048.NewSessionFromGrid(cfg, rng, board)
	} else {
		game, err = t2048.NewSession(cfg, rng)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed: %d\n", seed)

	applied := 0
	for i, dir := range moves {
		if game.Over() {
			fmt.Fprintf(out, "Game over after %d moves; %d moves ignored.\n", i, len(moves)-i)
			break
		}
		res, err := game.ApplyMove(dir)
		if err != nil {
			return err
		}
		applied++

		if verbose {
			fmt.Fprintf(out, "\n#%d %s\n", i+1, describeMove(res))
			fmt.Fprintln(out, game.Grid())
		}
		if res.WonJustNow {
			fmt.Fprintf(out, "Target %d reached on move %d.\n", game.Target(), i+1)
		}
	}

	snap := game.Snapshot()
	fmt.Fprintln(out)
	fmt.Fprintln(out, game.Grid())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score: %d  Moves: %d (%d applied)  Best tile: %d  Status: %s\n",
		snap.Score, snap.Moves, applied, snap.MaxTile, snap.State)
	return nil
}
