package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"go-grid-defense/internal/termview"
)

var flagWatchFrom string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play in the terminal",
	Long: `Run the simulation in real time in the terminal.

Controls:
  Arrows      - Move the cursor
  Enter       - Place the current piece or select the one under the cursor
  Tab / 1-9   - Choose the piece to build
  u / s       - Upgrade / sell the selected piece
  n / Space   - Release the next wave
  p / +       - Pause / change speed
  r           - Restart after the game is over
  Esc         - Clear the selection
  q / Ctrl+C  - Quit`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchFrom, "from", "", "Start from a saved snapshot")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	g, err := newGame(logger)
	if err != nil {
		return err
	}
	if flagWatchFrom != "" {
		if err := restoreFrom(g, flagWatchFrom); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = termview.New(screen, g).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
