// internal/app/game.go
package app

import (
	"github.com/charmbracelet/log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/grid"
)

// speedSteps: допустимые множители скорости, по кругу
var speedSteps = []int{1, 2, 4}

// Game holds the simulation context: grid, entities, systems and economy.
type Game struct {
	Config          config.Config
	Grid            *grid.Grid
	ECS             *entity.Store
	Library         *defs.Library
	Player          *component.Player
	EventDispatcher *event.Dispatcher
	Rng             *utils.PRNGService

	PlacementSystem  *system.PlacementSystem
	PieceSystem      *system.PieceSystem
	TargetingSystem  *system.TargetingSystem
	WaveSystem       *system.WaveSystem
	MovementSystem   *system.MovementSystem
	ProjectileSystem *system.ProjectileSystem
	CombatSystem     *system.CombatSystem
	RenderSystem     *system.RenderSystem

	Selected        types.EntityID // выбранная фигура
	Prototype       string         // что ставить по клику на пустую клетку
	SpeedMultiplier int

	logger    *log.Logger
	gameTime  float64
	isPaused  bool
	over      bool
	won       bool
	pressCell int // клетка, над которой нажата кнопка выбора
}

// Status: сводка для индикаторов и консоли
type Status struct {
	Time      float64
	Money     int
	Lives     int
	Level     int
	Waves     int
	Queued    int
	Active    int
	MadeIt    int
	Destroyed int
	Paused    bool
	Over      bool
	Won       bool
}

// NewGame initializes a new game instance.
func NewGame(cfg config.Config, library *defs.Library, resources interfaces.ResourceProvider, logger *log.Logger) *Game {
	if library == nil {
		panic("library cannot be nil")
	}
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		Config:          cfg,
		Grid:            grid.NewStandard(cfg.Grid.Cols, cfg.Grid.Rows, cfg.Grid.CellSize, cfg.Grid.Opening),
		ECS:             entity.NewStore(),
		Library:         library,
		Player:          &component.Player{Money: cfg.Economy.StartingMoney, Lives: cfg.Economy.StartingLives},
		EventDispatcher: event.NewDispatcher(),
		Rng:             utils.NewPRNGService(cfg.Sim.Seed),
		SpeedMultiplier: 1,
		logger:          logger,
		pressCell:       grid.NoCell,
	}
	if len(library.PieceOrder) > 0 {
		g.Prototype = library.PieceOrder[0]
	}

	g.PlacementSystem = system.NewPlacementSystem(g.ECS, g.Grid, library, g.Player, g.EventDispatcher, logger)
	g.PieceSystem = system.NewPieceSystem(g.ECS, library, g.Player, g.PlacementSystem, g.EventDispatcher, logger, g.Grid.CellSize)
	g.TargetingSystem = system.NewTargetingSystem(g.ECS, library, g.PieceSystem, g.Grid.CellSize)
	g.WaveSystem = system.NewWaveSystem(g.ECS, g.Grid, library, g.Rng, g.EventDispatcher, logger, cfg.Waves)
	g.MovementSystem = system.NewMovementSystem(g.ECS, g.Grid, library, g.Player, g.WaveSystem, g.EventDispatcher, logger)
	g.ProjectileSystem = system.NewProjectileSystem(g.ECS)
	g.CombatSystem = system.NewCombatSystem(g.ECS, library, resources)
	g.RenderSystem = system.NewRenderSystem(g.ECS, g.Grid, library, g.CombatSystem)
	g.RenderSystem.Debug = cfg.Sim.Debug

	listener := &GameEventListener{game: g}
	g.EventDispatcher.Subscribe(event.InvaderMadeIt, listener)
	g.EventDispatcher.Subscribe(event.PieceSold, listener)
	g.EventDispatcher.Subscribe(event.WaveGenerated, listener)

	logger.Debug("game created", "cols", g.Grid.Cols, "rows", g.Grid.Rows, "seed", g.Rng.Seed())
	return g
}

// GameEventListener реагирует на события, меняющие состояние партии
type GameEventListener struct {
	game *Game
}

func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.InvaderMadeIt:
		if l.game.Player.Lives == 0 {
			l.game.endGame(false)
		}
	case event.PieceSold:
		if data, ok := e.Data.(event.PieceData); ok && data.ID == l.game.Selected {
			l.game.Selected = types.None
		}
	case event.WaveGenerated:
		if data, ok := e.Data.(event.WaveData); ok {
			l.game.logger.Debug("wave queued", "level", data.Level, "count", data.Count)
		}
	}
}

// Update продвигает симуляцию. Шаг ограничивается MaxDeltaTime,
// множитель скорости даёт несколько шагов за вызов.
func (g *Game) Update(deltaTime float64) {
	if g.isPaused || g.over || deltaTime <= 0 {
		return
	}
	dt := deltaTime
	if limit := g.Config.Sim.MaxDeltaTime; limit > 0 && dt > limit {
		dt = limit
	}
	for i := 0; i < g.SpeedMultiplier && !g.over; i++ {
		g.step(dt)
	}
}

func (g *Game) step(dt float64) {
	g.gameTime += dt
	g.ECS.GameTime = g.gameTime

	g.WaveSystem.Update(dt)
	g.TargetingSystem.Update(dt)
	g.PieceSystem.Update(dt)
	g.MovementSystem.Update(dt)
	g.ProjectileSystem.Update(dt)
	g.CombatSystem.Update(dt)

	if !g.over && g.WaveSystem.Finished() {
		g.endGame(true)
	}
}

func (g *Game) endGame(won bool) {
	if g.over {
		return
	}
	g.over = true
	g.won = won
	g.EventDispatcher.Dispatch(event.Event{Type: event.GameOver, Data: event.GameOverData{Won: won}})
	g.logger.Info("game over", "won", won, "time", g.gameTime, "lives", g.Player.Lives)
}

// NextWave ставит в очередь следующую волну. Возвращает размер пачки.
func (g *Game) NextWave() int {
	if g.over {
		return 0
	}
	return len(g.WaveSystem.GenerateWave())
}

// PlayWave выпускает следующую волну и крутит симуляцию шагами dt, пока волна
// не выбудет целиком. false, если за maxTicks шагов волна не кончилась.
func (g *Game) PlayWave(dt float64, maxTicks int) (Status, bool) {
	if g.over {
		return g.Status(), false
	}
	g.NextWave()
	for i := 0; i < maxTicks; i++ {
		g.Update(dt)
		w := &g.WaveSystem.Wave
		if g.over || (len(w.Queue) == 0 && w.Active == 0) {
			return g.Status(), true
		}
	}
	return g.Status(), false
}

// Reset возвращает партию в начальное состояние с тем же сидом
func (g *Game) Reset() {
	g.ECS.Clear()
	g.Grid.Reset()
	g.EventDispatcher.Dispatch(event.Event{Type: event.PathsRecomputed})
	g.Player.Money = g.Config.Economy.StartingMoney
	g.Player.Lives = g.Config.Economy.StartingLives
	g.Rng.Reseed(g.Rng.Seed())
	g.WaveSystem.Reset()
	g.CombatSystem.Reset()
	g.Selected = types.None
	g.pressCell = grid.NoCell
	g.gameTime = 0
	g.over, g.won = false, false
	g.logger.Debug("game reset")
}

// Draw отдаёт отрисовку поля в canvas
func (g *Game) Draw(canvas interfaces.Canvas) {
	g.RenderSystem.Draw(canvas, g.Selected)
}

func (g *Game) Status() Status {
	w := g.WaveSystem.Wave
	return Status{
		Time:      g.gameTime,
		Money:     g.Player.Money,
		Lives:     g.Player.Lives,
		Level:     w.InvaderLevel,
		Waves:     w.Generated,
		Queued:    len(w.Queue),
		Active:    w.Active,
		MadeIt:    w.MadeIt,
		Destroyed: w.Destroyed,
		Paused:    g.isPaused,
		Over:      g.over,
		Won:       g.won,
	}
}

func (g *Game) HandleSpeedClick() {
	for i, s := range speedSteps {
		if s == g.SpeedMultiplier {
			g.SpeedMultiplier = speedSteps[(i+1)%len(speedSteps)]
			return
		}
	}
	g.SpeedMultiplier = speedSteps[0]
}

func (g *Game) HandlePauseClick() {
	g.isPaused = !g.isPaused
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

func (g *Game) IsOver() bool {
	return g.over
}

func (g *Game) GetGameTime() float64 {
	return g.gameTime
}

func (g *Game) Logger() *log.Logger {
	return g.logger
}
