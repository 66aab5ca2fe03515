// tdsim runs the grid defense simulation without a window.
//
// Usage:
//
//	tdsim run                 - Play waves headless and print the counters
//	tdsim watch               - Play in the terminal
//	tdsim snapshots           - List saved snapshots
//	tdsim snapshots delete    - Delete a snapshot
//	tdsim show <name>         - Print a saved snapshot
//
// Global flags:
//
//	--config <path>   - Simulation config YAML
//	--seed <value>    - RNG seed (0 = time based)
//	--db <path>       - Snapshot database (default: ~/.griddefense/snapshots.db)
//	--debug           - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/assets"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
)

var (
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagDebug    bool
	flagPieces   string
	flagInvaders string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tdsim",
	Short: "Grid defense simulation",
	Long: `tdsim drives the grid defense simulation from the command line.

Examples:
  tdsim run --waves 5 --place gun@3,3 --place wall@5,2
  tdsim run --save opening
  tdsim watch --from opening
  tdsim snapshots`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.griddefense/snapshots.db", "Path to snapshot database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagPieces, "pieces", "", "Piece definitions JSON (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&flagInvaders, "invaders", "", "Invader definitions JSON (default: built-in)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(showCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tdsim",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newGame собирает партию из флагов
func newGame(logger *log.Logger) (*game.Game, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}
	if flagDebug {
		cfg.Sim.Debug = true
	}
	library, err := defs.LoadLibrary(flagPieces, flagInvaders)
	if err != nil {
		return nil, err
	}
	images := assets.NewDefaultImages(int(cfg.Grid.CellSize), cfg.Sim.HullThreshold, logger)
	return game.NewGame(cfg, library, images, logger), nil
}
