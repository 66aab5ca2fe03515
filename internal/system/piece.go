// internal/system/piece.go
package system

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
)

var (
	ErrUnknownPiece      = errors.New("unknown piece")
	ErrNotIdle           = errors.New("piece is busy")
	ErrMaxLevel          = errors.New("piece is at max level")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// PieceSystem ведёт машину состояний фигур и их стрельбу
type PieceSystem struct {
	ecs             *entity.Store
	library         *defs.Library
	player          *component.Player
	placement       *PlacementSystem
	eventDispatcher *event.Dispatcher
	logger          *log.Logger
	cellSize        float64
	strategies      map[defs.FireKind]FireStrategy
}

func NewPieceSystem(ecs *entity.Store, library *defs.Library, player *component.Player, placement *PlacementSystem, eventDispatcher *event.Dispatcher, logger *log.Logger, cellSize float64) *PieceSystem {
	return &PieceSystem{
		ecs:             ecs,
		library:         library,
		player:          player,
		placement:       placement,
		eventDispatcher: eventDispatcher,
		logger:          logger,
		cellSize:        cellSize,
		strategies:      DefaultStrategies(),
	}
}

// Upgrade начинает улучшение простаивающей фигуры и списывает его цену
func (s *PieceSystem) Upgrade(id types.EntityID) error {
	piece, def, err := s.lookup(id)
	if err != nil {
		return err
	}
	if piece.State != component.PieceIdle {
		return ErrNotIdle
	}
	if piece.Level >= def.MaxLevel {
		return ErrMaxLevel
	}
	price := def.UpgradePrice(piece.Level)
	if !s.player.Spend(price) {
		return ErrInsufficientFunds
	}
	piece.Invested += price
	piece.State = component.PieceUpgrading
	piece.Progress = 0
	s.logger.Debug("upgrade started", "id", id, "level", piece.Level, "price", price)
	return nil
}

// Sell начинает продажу простаивающей фигуры
func (s *PieceSystem) Sell(id types.EntityID) error {
	piece, _, err := s.lookup(id)
	if err != nil {
		return err
	}
	if piece.State != component.PieceIdle {
		return ErrNotIdle
	}
	piece.State = component.PieceSelling
	piece.Progress = 0
	piece.Target = types.None
	s.logger.Debug("sale started", "id", id)
	return nil
}

// SetTarget назначает цель, если её ещё нет. Возвращает true, если цель принята.
func (s *PieceSystem) SetTarget(id, target types.EntityID) bool {
	piece, ok := s.ecs.Pieces[id]
	if !ok || piece.HasTarget() {
		return false
	}
	piece.Target = target
	return true
}

// ClearTarget снимает цель
func (s *PieceSystem) ClearTarget(id types.EntityID) {
	if piece, ok := s.ecs.Pieces[id]; ok {
		piece.Target = types.None
	}
}

func (s *PieceSystem) lookup(id types.EntityID) (*component.Piece, defs.PieceDefinition, error) {
	piece, ok := s.ecs.Pieces[id]
	if !ok {
		return nil, defs.PieceDefinition{}, ErrUnknownPiece
	}
	def, ok := s.library.Piece(piece.DefID)
	if !ok {
		return nil, defs.PieceDefinition{}, ErrUnknownPiece
	}
	return piece, def, nil
}

func (s *PieceSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Pieces) {
		piece := s.ecs.Pieces[id]
		def, ok := s.library.Piece(piece.DefID)
		if !ok {
			continue
		}
		piece.Discharge.Update(deltaTime)

		switch piece.State {
		case component.PieceUpgrading:
			if s.advance(piece, def, deltaTime) {
				piece.Level++
				piece.State = component.PieceUpgraded
				s.eventDispatcher.Dispatch(event.Event{Type: event.PieceUpgraded, Data: event.PieceData{ID: id, DefID: def.ID, Level: piece.Level}})
				s.logger.Debug("upgrade finished", "id", id, "level", piece.Level)
			}
		case component.PieceUpgraded:
			piece.State = component.PieceIdle
			piece.Progress = 0
		case component.PieceSelling:
			if s.advance(piece, def, deltaTime) {
				s.finishSale(id, piece)
			}
		case component.PieceIdle:
			s.fire(id, piece, def, deltaTime)
		}
	}
}

// advance продвигает прогресс; true, когда достигнут MaxProgress
func (s *PieceSystem) advance(piece *component.Piece, def defs.PieceDefinition, deltaTime float64) bool {
	piece.Progress += def.ProgressRate * deltaTime
	if piece.Progress >= config.MaxProgress {
		piece.Progress = config.MaxProgress
		return true
	}
	if piece.Progress < 0 {
		piece.Progress = 0
	}
	return false
}

func (s *PieceSystem) finishSale(id types.EntityID, piece *component.Piece) {
	piece.State = component.PieceSold
	refund := int(math.Floor(float64(piece.Invested) * config.SellRefundFactor))
	s.player.Earn(refund)
	s.placement.Vacate(id)
	delete(s.ecs.Pieces, id)
	s.eventDispatcher.Dispatch(event.Event{Type: event.PieceSold, Data: event.PieceData{ID: id, DefID: piece.DefID, Level: piece.Level, Refund: refund}})
	s.logger.Debug("piece sold", "id", id, "refund", refund)
}

// fire: таймер выстрелов простаивающей фигуры.
// Без цели таймер держится на 1, чтобы первый выстрел по новой цели был сразу.
func (s *PieceSystem) fire(id types.EntityID, piece *component.Piece, def defs.PieceDefinition, deltaTime float64) {
	stats, ok := def.FireAt(piece.Level)
	if !ok {
		return
	}
	target, hasTarget := s.ecs.Invaders[piece.Target]
	if !hasTarget || !target.Alive() {
		piece.FireTimer = math.Min(piece.FireTimer+stats.Rate*deltaTime, 1)
		return
	}

	if !def.FixedFacing {
		want := target.Position.Sub(piece.Center).Angle()
		piece.Angle = utils.LerpAngle(piece.Angle, want, math.Min(1, config.PieceTurnRate*deltaTime))
	}

	strategy, ok := s.strategies[stats.Kind]
	if !ok {
		return
	}
	piece.FireTimer += stats.Rate * deltaTime
	for piece.FireTimer >= 1 {
		piece.FireTimer--
		strategy.Fire(s.ecs, Shot{
			PieceID:  id,
			Piece:    piece,
			Stats:    stats,
			Origin:   piece.Center,
			TargetID: piece.Target,
			Target:   target,
			CellSize: s.cellSize,
		})
	}
}
