package system

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/grid"
)

// world: набор систем вокруг одной сетки для тестов
type world struct {
	ecs         *entity.Store
	grid        *grid.Grid
	lib         *defs.Library
	player      *component.Player
	events      *event.Dispatcher
	placement   *PlacementSystem
	pieces      *PieceSystem
	targeting   *TargetingSystem
	waves       *WaveSystem
	movement    *MovementSystem
	projectiles *ProjectileSystem
	combat      *CombatSystem
	received    []event.EventType
}

func testLibrary() *defs.Library {
	pieces := []defs.PieceDefinition{
		{ID: "block", Width: 1, Height: 1, Cost: 5, ProgressRate: 50, Blocking: true},
		{ID: "bar", Width: 3, Height: 1, Cost: 5, ProgressRate: 50, Blocking: true},
		{ID: "tar", Width: 1, Height: 1, Cost: 5, ProgressRate: 50, Ground: &defs.Ground{SlowFactor: 0.5}},
		{ID: "fire", Width: 1, Height: 1, Cost: 5, ProgressRate: 50, Ground: &defs.Ground{SlowFactor: 1, DrainPerSecond: 10}},
		{ID: "gun", Width: 1, Height: 1, Cost: 20, UpgradeCost: 10, MaxLevel: 2, ProgressRate: 50, Blocking: true,
			Fire: &defs.FireStats{Kind: defs.FireBolt, Rate: 2, Range: 3, Attack: 2, Speed: 50, TTL: 1}},
		{ID: "tesla", Width: 1, Height: 1, Cost: 20, ProgressRate: 50, Blocking: true, FixedFacing: true,
			Fire: &defs.FireStats{Kind: defs.FireArc, Rate: 1, Range: 2, Attack: 3, Radius: 2, Frames: 2, FrameDuration: 0.1}},
	}
	invaders := []defs.InvaderDefinition{
		{ID: "walker", Weight: 1, MinLevel: 1,
			First: defs.InvaderSample{Life: 10, Speed: 10, Bounty: 5},
			Last:  defs.InvaderSample{Life: 30, Speed: 20, Bounty: 15}},
	}
	lib := &defs.Library{Pieces: map[string]defs.PieceDefinition{}, Invaders: map[string]defs.InvaderDefinition{}}
	for _, p := range pieces {
		lib.Pieces[p.ID] = p
		lib.PieceOrder = append(lib.PieceOrder, p.ID)
	}
	for _, i := range invaders {
		lib.Invaders[i.ID] = i
		lib.InvaderOrder = append(lib.InvaderOrder, i.ID)
	}
	return lib
}

// columnGrid: сетка 5x5 с единственным вертикальным проходом по столбцу 2
func columnGrid() *grid.Grid {
	g := grid.New(5, 5, 10)
	g.OpenEntrance(grid.Vertical, 2, 0)
	g.OpenExit(grid.Vertical, 2, 4)
	g.RecomputeAll()
	return g
}

func newWorld(t *testing.T, g *grid.Grid) *world {
	t.Helper()
	logger := log.New(io.Discard)
	w := &world{
		ecs:    entity.NewStore(),
		grid:   g,
		lib:    testLibrary(),
		player: &component.Player{Money: 100, Lives: 3},
		events: event.NewDispatcher(),
	}
	record := event.ListenerFunc(func(e event.Event) { w.received = append(w.received, e.Type) })
	for _, et := range []event.EventType{event.PiecePlaced, event.PieceUpgraded, event.PieceSold, event.InvaderMadeIt, event.InvaderDestroyed, event.PathsRecomputed, event.WaveGenerated} {
		w.events.Subscribe(et, record)
	}
	w.placement = NewPlacementSystem(w.ecs, g, w.lib, w.player, w.events, logger)
	w.pieces = NewPieceSystem(w.ecs, w.lib, w.player, w.placement, w.events, logger, g.CellSize)
	w.targeting = NewTargetingSystem(w.ecs, w.lib, w.pieces, g.CellSize)
	w.waves = NewWaveSystem(w.ecs, g, w.lib, utils.NewPRNGService(1), w.events, logger, config.WaveConfig{BatchSize: 4, MaxInvaderLevel: 3, SpawnInterval: 0.5})
	w.movement = NewMovementSystem(w.ecs, g, w.lib, w.player, w.waves, w.events, logger)
	w.projectiles = NewProjectileSystem(w.ecs)
	w.combat = NewCombatSystem(w.ecs, w.lib, nil)
	return w
}

// spawnWalker выпускает захватчика у входа в столбец
func (w *world) spawnWalker(speed float64) types.EntityID {
	return w.waves.Spawn(component.Spawn{
		DefID:    "walker",
		Key:      grid.Vertical,
		Entrance: w.grid.Entrances[grid.Vertical][0],
		Level:    1,
		Life:     10,
		Speed:    speed,
		Bounty:   5,
	})
}

func (w *world) saw(et event.EventType) bool {
	for _, e := range w.received {
		if e == et {
			return true
		}
	}
	return false
}
