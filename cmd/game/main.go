// cmd/game/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/assets"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/state"
	"go-grid-defense/pkg/render"
)

var (
	flagConfig string
	flagAssets string
	flagSeed   int64
	flagDebug  bool
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	width, height  int
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

var rootCmd = &cobra.Command{
	Use:           "game",
	Short:         "Grid defense in a window",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory with sprite PNG/BMP files (default: generated sprites)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Draw hulls and path labels")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "griddefense",
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}
	if flagDebug {
		cfg.Sim.Debug = true
		logger.SetLevel(log.DebugLevel)
	}

	library, err := defs.DefaultLibrary()
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	images := assets.NewDefaultImages(int(cfg.Grid.CellSize), cfg.Sim.HullThreshold, logger)
	if flagAssets != "" {
		if err := images.LoadDir(flagAssets); err != nil {
			return err
		}
	}

	g := game.NewGame(cfg, library, images, logger)
	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, g, render.NewCanvas(images)))

	width, height := state.Layout(cfg)
	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
		width:          width,
		height:         height,
	}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Grid Defense")
	ebiten.SetTPS(config.TicksPerSec)
	return ebiten.RunGame(app)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
