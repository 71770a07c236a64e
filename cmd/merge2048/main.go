// merge2048 plays the 2048 sliding-tile puzzle in the terminal.
//
// Usage:
//
//	merge2048 list                        - List board variants
//	merge2048 play [variant]              - Play, one command line at a time
//	merge2048 replay [variant] --moves .. - Replay a move script deterministically
//	merge2048 scores [variant]            - Show high scores
//
// Global flags:
//
//	--seed <value>       - RNG seed for reproducible games
//	--db <path>          - Database path (default: ~/.merge2048/scores.db)
//	--config <path>      - Game config YAML
//	--preset <name>      - Spawn preset: classic, gentle, tough
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/config"
	"github.com/vovakirdan/merge2048/internal/storage"

	// Import variants to register them
	_ "github.com/vovakirdan/merge2048/internal/games/t2048"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

// settings is the configuration resolved from flags, environment and the
// config file, shared by all subcommands.
type settings struct {
	game   config.GameConfig
	seed   int64
	dbPath string
	logger *log.Logger
}

var app settings

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge2048",
	Short: "merge2048 - the 2048 sliding-tile puzzle",
	Long: `merge2048 plays 2048 on square boards of any size.

Slide the tiles left, right, up or down. Equal neighbours merge into their
sum. Reach the target tile to win, keep going until no move is left.

Available commands:
  list     - Show all board variants
  play     - Play a game, reading moves from stdin
  replay   - Run a move script with a fixed seed
  scores   - View high scores

Examples:
  merge2048 list
  merge2048 play
  merge2048 play 5x5 --preset tough
  merge2048 replay --seed 42 --moves LLURDD
  merge2048 scores 4x4`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default "+storage.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Spawn preset: classic, gentle, tough")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings resolves configuration. Flags win over MERGE2048_*
// variables, which win over the config file.
func loadSettings(cmd *cobra.Command, _ []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	game, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := env.Apply(&game); err != nil {
		return err
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&game, config.SpawnPreset(flagPreset)); err != nil {
			return err
		}
	}
	if err := game.Validate(); err != nil {
		return err
	}

	level := env.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger, err := newLogger(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	seed := env.Seed
	if cmd.Flags().Changed("seed") {
		seed = flagSeed
	}

	dbPath := storage.DefaultPath
	switch {
	case flagDBPath != "":
		dbPath = flagDBPath
	case env.DBPath != "":
		dbPath = env.DBPath
	}

	app = settings{
		game:   game,
		seed:   seed,
		dbPath: dbPath,
		logger: logger,
	}
	return nil
}

func newLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "merge2048",
		Level:           lvl,
	}), nil
}
