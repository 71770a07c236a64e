package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge2048/internal/core"
	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/sessions"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start a game and read commands from stdin, one line at a time.
Several commands on one line are applied in order.

Controls:
  left/a/h  right/d/l  up/w/k  down/s/j
  n         - New game
  ?         - Help
  q         - Quit

The result is saved when the game ends or when you quit.

Examples:
  merge2048 play
  merge2048 play 5x5
  merge2048 play --preset gentle --seed 7
  echo "h h j l" | merge2048 play`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	variantID, cfg, err := resolveGame(app.game, args)
	if err != nil {
		return err
	}

	// Open score storage
	var (
		saver  sessions.ResultSaver
		scores scoreBook
		best   int
	)
	store, err := storage.Open(app.dbPath)
	if err != nil {
		app.logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		saver = store
		scores = store
		if best, err = store.HighScore(variantID); err != nil {
			app.logger.Warn("could not load high score", "variant", variantID, "error", err)
		}
	}

	rng, seed := newSource(app.seed)
	app.logger.Debug("starting game", "variant", variantID, "seed", seed)

	manager := sessions.NewManager(saver, app.logger)
	defer manager.CloseAll()

	p := &player{
		out:     cmd.OutOrStdout(),
		manager: manager,
		opts:    sessions.Options{Variant: variantID, Config: cfg, Source: rng},
		scores:  scores,
		best:    best,
		prompt:  term.IsTerminal(int(os.Stdin.Fd())),
	}
	return p.run(cmd.InOrStdin())
}

// scoreBook looks up saved results. Implemented by storage.Store.
type scoreBook interface {
	ScoreByGameID(gameID string) (*storage.ScoreEntry, error)
}

// player drives one interactive game at a time through a Manager.
type player struct {
	out     io.Writer
	manager *sessions.Manager
	sub     *sessions.Subscription
	opts    sessions.Options
	id      sessions.ID
	scores  scoreBook // nil without a database
	best    int       // best saved score for the variant
	beat    bool      // the current game passed best
	prompt  bool
}

func (p *player) run(in io.Reader) error {
	p.sub = p.manager.Subscribe(16)
	defer p.manager.Unsubscribe(p.sub)

	if err := p.newGame(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if p.prompt {
			fmt.Fprint(p.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		quit, err := p.handleLine(scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return p.endGame()
}

// handleLine applies every command on a line. It reports whether the
// player asked to quit.
func (p *player) handleLine(line string) (bool, error) {
	for _, action := range core.ParseActions(line) {
		switch action {
		case core.ActionQuit:
			return true, nil
		case core.ActionHelp:
			printHelp(p.out)
		case core.ActionRestart:
			if err := p.endGame(); err != nil {
				return false, err
			}
			if err := p.newGame(); err != nil {
				return false, err
			}
		case core.ActionNone:
			fmt.Fprintln(p.out, "Unknown command, type ? for help.")
			return false, nil
		default:
			dir, _ := directionFor(action)
			if err := p.move(dir); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}

func (p *player) newGame() error {
	id, snap, err := p.manager.Create(p.opts)
	if err != nil {
		return err
	}
	p.id = id
	p.beat = false
	p.drainEvents()

	fmt.Fprintf(p.out, "New %dx%d game. Reach %d to win.\n", snap.Size, snap.Size, snap.Target)
	return p.printBoard(snap)
}

func (p *player) endGame() error {
	if p.id == "" {
		return nil
	}
	id := p.id
	res, err := p.manager.Close(id)
	p.id = ""
	p.drainEvents()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Final score: %d (best tile %d, %d moves)\n", res.Score, res.MaxTile, res.Moves)
	if res.Score > p.best {
		p.best = res.Score
	}

	if p.scores == nil || res.Moves == 0 {
		return nil
	}
	entry, err := p.scores.ScoreByGameID(string(id))
	if err != nil {
		return err
	}
	if entry != nil {
		fmt.Fprintf(p.out, "Saved to scores (%s).\n", entry.Variant)
	}
	return nil
}

func (p *player) move(dir t2048.Direction) error {
	res, snap, err := p.manager.Move(p.id, dir)
	if errors.Is(err, t2048.ErrGameOver) {
		fmt.Fprintln(p.out, "The game is over. Type n for a new game or q to quit.")
		return nil
	}
	if err != nil {
		return err
	}

	if !res.Changed {
		fmt.Fprintf(p.out, "Nothing moves %s.\n", dir)
		return nil
	}

	fmt.Fprintln(p.out, describeMove(res))
	if err := p.printBoard(snap); err != nil {
		return err
	}
	p.announce()
	if !p.beat && p.best > 0 && snap.Score > p.best {
		p.beat = true
		fmt.Fprintf(p.out, "*** New high score! (previous best %d) ***\n", p.best)
	}
	return nil
}

// announce prints banners for win and game over events.
func (p *player) announce() {
	for _, evt := range p.drainEvents() {
		switch evt.Kind {
		case sessions.EventWon:
			fmt.Fprintf(p.out, "*** You reached %d! Keep going or type q to stop. ***\n", evt.Snapshot.Target)
		case sessions.EventOver:
			fmt.Fprintf(p.out, "*** No moves left. Final score %d. ***\n", evt.Snapshot.Score)
		}
	}
}

// drainEvents collects pending events without blocking.
func (p *player) drainEvents() []sessions.Event {
	var events []sessions.Event
	for {
		select {
		case evt := <-p.sub.Events():
			if evt.Session == p.id {
				events = append(events, evt)
			}
		default:
			return events
		}
	}
}

func (p *player) printBoard(snap t2048.Snapshot) error {
	grid, err := t2048.FromValues(snap.Board)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, grid)
	fmt.Fprintln(p.out)
	best := max(p.best, snap.Score)
	fmt.Fprintf(p.out, "Score: %d  Best: %d  Moves: %d  Status: %s\n", snap.Score, best, snap.Moves, snap.State)
	return nil
}

func describeMove(res t2048.MoveResult) string {
	s := fmt.Sprintf("Slid %s", res.Direction)
	for _, m := range res.Merges {
		s += fmt.Sprintf(", merged %d at %s", m.Value, m.Cell)
	}
	if res.Spawned != nil {
		s += fmt.Sprintf(", new %d at %s", res.Spawned.Tile.Value, res.Spawned.Cell)
	}
	return fmt.Sprintf("%s (%+d).", s, res.ScoreDelta)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  left, a, h    slide left")
	fmt.Fprintln(w, "  right, d, l   slide right")
	fmt.Fprintln(w, "  up, w, k      slide up")
	fmt.Fprintln(w, "  down, s, j    slide down")
	fmt.Fprintln(w, "  n             start a new game")
	fmt.Fprintln(w, "  q             quit")
}
