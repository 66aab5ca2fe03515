// internal/system/movement.go
package system

import (
	"math"

	"github.com/charmbracelet/log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

// WaveReporter принимает захватчиков, покинувших поле.
// Это помогает избежать циклических зависимостей между системами.
type WaveReporter interface {
	ReportBackIn(id types.EntityID, state component.InvaderState)
}

// MovementSystem ведёт захватчиков по цепочке родителей к выходу
type MovementSystem struct {
	ecs             *entity.Store
	grid            *grid.Grid
	library         *defs.Library
	player          *component.Player
	reporter        WaveReporter
	eventDispatcher *event.Dispatcher
	logger          *log.Logger
}

func NewMovementSystem(ecs *entity.Store, g *grid.Grid, library *defs.Library, player *component.Player, reporter WaveReporter, eventDispatcher *event.Dispatcher, logger *log.Logger) *MovementSystem {
	return &MovementSystem{
		ecs:             ecs,
		grid:            g,
		library:         library,
		player:          player,
		reporter:        reporter,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Invaders) {
		inv := s.ecs.Invaders[id]
		if inv.Alive() {
			s.step(inv, deltaTime)
		}
	}
	s.retire()
}

func (s *MovementSystem) step(inv *component.Invader, deltaTime float64) {
	if inv.Life <= 0 {
		inv.Life = 0
		inv.State = component.InvaderDead
		return
	}

	speed := inv.Speed
	if ground, ok := s.groundUnder(inv.Position); ok {
		if !inv.Flags.Has(component.SlowResistant) && ground.SlowFactor > 0 {
			speed *= ground.SlowFactor
		}
		if !inv.Flags.Has(component.FireResistant) && ground.DrainPerSecond > 0 {
			ApplyDamage(inv, ground.DrainPerSecond*deltaTime)
		}
	}
	moveDistance := speed * deltaTime
	start := inv.Position

	switch {
	case inv.Target != grid.NoCell:
		s.advance(inv, moveDistance)
	case inv.Current != grid.NoCell && s.grid.Distance(inv.Current, inv.Key) == 0:
		s.exit(inv, moveDistance)
	case inv.Current != grid.NoCell:
		// Путь мог открыться после пересчёта
		inv.Target = s.grid.Parent(inv.Current, inv.Key)
	}

	if deltaTime > 0 {
		inv.Velocity = inv.Position.Sub(start).Scale(1 / deltaTime)
	}
	inv.Angle = utils.LerpAngle(inv.Angle, inv.TargetAngle, math.Min(1, config.InvaderTurnRate*deltaTime))
}

// advance двигает к якорю целевой клетки, не проскакивая его
func (s *MovementSystem) advance(inv *component.Invader, moveDistance float64) {
	anchor := s.grid.Anchor(inv.Target)
	d := anchor.Sub(inv.Position)
	dist := d.Len()
	if dist > moveDistance {
		inv.Position = inv.Position.Add(d.Scale(moveDistance / dist))
		return
	}

	inv.Position = anchor
	inv.Current = inv.Target
	inv.Target = s.grid.Parent(inv.Current, inv.Key)
	if inv.Target != grid.NoCell {
		inv.TargetAngle = s.grid.Anchor(inv.Target).Sub(anchor).Angle()
	} else {
		dx, dy := inv.Key.ExitAxis()
		inv.TargetAngle = geometry.Pt(float64(dx), float64(dy)).Angle()
	}
}

// exit: фаза выхода: движение вдоль оси ключа до дальнего края клетки выхода
func (s *MovementSystem) exit(inv *component.Invader, moveDistance float64) {
	dx, dy := inv.Key.ExitAxis()
	inv.Position = inv.Position.Add(geometry.Pt(float64(dx), float64(dy)).Scale(moveDistance))
	bounds := s.grid.Cell(inv.Current).Bounds
	if (dx > 0 && inv.Position.X > bounds.MaxX) || (dy > 0 && inv.Position.Y > bounds.MaxY) {
		inv.State = component.InvaderMadeIt
	}
}

func (s *MovementSystem) groundUnder(p geometry.Point) (defs.Ground, bool) {
	idx := s.grid.CellAt(p)
	if idx == grid.NoCell {
		return defs.Ground{}, false
	}
	pieceID := s.grid.Cell(idx).Piece
	if pieceID == types.None {
		return defs.Ground{}, false
	}
	piece, ok := s.ecs.Pieces[pieceID]
	if !ok || piece.State == component.PieceSold {
		return defs.Ground{}, false
	}
	def, ok := s.library.Piece(piece.DefID)
	if !ok || def.Ground == nil {
		return defs.Ground{}, false
	}
	return *def.Ground, true
}

// retire отчитывается о выбывших захватчиках и удаляет их
func (s *MovementSystem) retire() {
	for _, id := range entity.SortedIDs(s.ecs.Invaders) {
		inv := s.ecs.Invaders[id]
		if inv.Alive() {
			continue
		}
		data := event.InvaderData{ID: id, DefID: inv.DefID, Key: inv.Key, Bounty: inv.Bounty}
		switch inv.State {
		case component.InvaderMadeIt:
			s.player.LoseLife()
			s.eventDispatcher.Dispatch(event.Event{Type: event.InvaderMadeIt, Data: data})
			s.logger.Debug("invader made it", "id", id, "lives", s.player.Lives)
		case component.InvaderDead:
			s.player.Earn(inv.Bounty)
			s.eventDispatcher.Dispatch(event.Event{Type: event.InvaderDestroyed, Data: data})
			s.logger.Debug("invader destroyed", "id", id, "bounty", inv.Bounty)
		}
		if s.reporter != nil {
			s.reporter.ReportBackIn(id, inv.State)
		}
		delete(s.ecs.Invaders, id)
	}
}
