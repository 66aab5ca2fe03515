package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/storage"
)

var (
	flagWaves    int
	flagDelta    float64
	flagMaxTicks int
	flagPlace    []string
	flagFrom     string
	flagSave     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play waves headless",
	Long: `Place pieces, release waves one by one and print the counters after each.

Pieces are given as id@col,row with the top-left cell of the piece.

Examples:
  tdsim run --waves 3
  tdsim run --place gun@3,3 --place tar@6,8 --seed 42
  tdsim run --from opening --save opening`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagWaves, "waves", 5, "Number of waves to play")
	runCmd.Flags().Float64Var(&flagDelta, "dt", 0.05, "Simulation step, seconds")
	runCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 100000, "Step limit per wave")
	runCmd.Flags().StringArrayVar(&flagPlace, "place", nil, "Piece to place before the first wave, id@col,row")
	runCmd.Flags().StringVar(&flagFrom, "from", "", "Start from a saved snapshot")
	runCmd.Flags().StringVar(&flagSave, "save", "", "Save a snapshot under this name when done")
}

// placement: фигура из командной строки
type placement struct {
	id       string
	col, row int
}

// parsePlacement разбирает строку вида gun@3,4
func parsePlacement(s string) (placement, error) {
	id, pos, ok := strings.Cut(s, "@")
	if !ok || id == "" {
		return placement{}, fmt.Errorf("invalid placement %q: want id@col,row", s)
	}
	c, r, ok := strings.Cut(pos, ",")
	if !ok {
		return placement{}, fmt.Errorf("invalid placement %q: want id@col,row", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return placement{}, fmt.Errorf("invalid column in %q: %w", s, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return placement{}, fmt.Errorf("invalid row in %q: %w", s, err)
	}
	return placement{id: id, col: col, row: row}, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	g, err := newGame(logger)
	if err != nil {
		return err
	}

	if flagFrom != "" {
		if err := restoreFrom(g, flagFrom); err != nil {
			return err
		}
	}

	for _, s := range flagPlace {
		p, err := parsePlacement(s)
		if err != nil {
			return err
		}
		if result, _ := g.TryPlace(p.col, p.row, p.id); !result.Accepted {
			return fmt.Errorf("cannot place %s at %d,%d: %v", p.id, p.col, p.row, result.Reason)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-4s  %-7s  %-5s  %-6s  %-9s  %s\n", "Wave", "Money", "Lives", "MadeIt", "Destroyed", "Time")
	for i := 0; i < flagWaves; i++ {
		st, done := g.PlayWave(flagDelta, flagMaxTicks)
		if !done && !st.Over {
			logger.Warn("wave did not drain within the step limit", "wave", st.Waves, "active", st.Active)
		}
		printStatus(out, st)
		if st.Over {
			break
		}
	}
	st := g.Status()
	switch {
	case st.Over && st.Won:
		fmt.Fprintln(out, "\nAll waves cleared.")
	case st.Over:
		fmt.Fprintln(out, "\nOverrun.")
	}

	if flagSave != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("failed to open snapshot database: %w", err)
		}
		defer store.Close()
		if err := store.SaveSnapshot(flagSave, g.Snapshot()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved snapshot %q\n", flagSave)
	}
	return nil
}

func printStatus(out io.Writer, st game.Status) {
	fmt.Fprintf(out, "  %-4d  %-7d  %-5d  %-6d  %-9d  %.1fs\n", st.Waves, st.Money, st.Lives, st.MadeIt, st.Destroyed, st.Time)
}

// restoreFrom загружает снимок из базы в партию
func restoreFrom(g *game.Game, name string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}
	defer store.Close()
	snap, err := store.LoadSnapshot(name)
	if err != nil {
		return err
	}
	return g.Restore(snap)
}
