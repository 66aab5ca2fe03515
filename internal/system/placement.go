// internal/system/placement.go
package system

import (
	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

// Reason: причина отказа в размещении
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnknownPiece
	ReasonOutOfBounds
	ReasonOuterCell
	ReasonOccupied
	ReasonInvaderPresent
	ReasonStrandsInvader
	ReasonBlocksPath
	ReasonInsufficientFunds
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonUnknownPiece:
		return "unknown piece"
	case ReasonOutOfBounds:
		return "out of bounds"
	case ReasonOuterCell:
		return "outer cell"
	case ReasonOccupied:
		return "occupied"
	case ReasonInvaderPresent:
		return "invader present"
	case ReasonStrandsInvader:
		return "would strand invader"
	case ReasonBlocksPath:
		return "blocks path"
	case ReasonInsufficientFunds:
		return "insufficient funds"
	default:
		return "unknown"
	}
}

// Placement: результат проверки размещения
type Placement struct {
	Accepted bool
	Reason   Reason
	Cells    []int // клетки группы, если она внутри сетки
}

func reject(r Reason, cells []int) Placement {
	return Placement{Reason: r, Cells: cells}
}

// PlacementSystem проверяет и фиксирует размещение фигур на сетке.
// Единственная система, меняющая занятость клеток.
type PlacementSystem struct {
	ecs             *entity.Store
	grid            *grid.Grid
	library         *defs.Library
	player          *component.Player
	eventDispatcher *event.Dispatcher
	logger          *log.Logger
}

func NewPlacementSystem(ecs *entity.Store, g *grid.Grid, library *defs.Library, player *component.Player, eventDispatcher *event.Dispatcher, logger *log.Logger) *PlacementSystem {
	return &PlacementSystem{
		ecs:             ecs,
		grid:            g,
		library:         library,
		player:          player,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

// Check проверяет размещение фигуры defID с левым верхним углом (col,row), ничего не меняя.
func (s *PlacementSystem) Check(col, row int, defID string) Placement {
	def, ok := s.library.Piece(defID)
	if !ok {
		return reject(ReasonUnknownPiece, nil)
	}
	w, h := def.Size()
	cells, ok := s.grid.Group(col, row, w, h)
	if !ok {
		return reject(ReasonOutOfBounds, nil)
	}

	candidates := mapset.New[int]()
	for _, idx := range cells {
		c := s.grid.Cell(idx)
		if c.Outer {
			return reject(ReasonOuterCell, cells)
		}
		if c.Piece != types.None || c.Occupancy != grid.Empty {
			return reject(ReasonOccupied, cells)
		}
		candidates.Put(idx)
	}

	if def.Blocking {
		for _, id := range entity.SortedIDs(s.ecs.Invaders) {
			inv := s.ecs.Invaders[id]
			if !inv.Alive() {
				continue
			}
			if candidates.Has(inv.Current) || candidates.Has(inv.Target) || candidates.Has(s.grid.CellAt(inv.Position)) {
				return reject(ReasonInvaderPresent, cells)
			}
		}

		walkable := func(idx int) bool {
			return !candidates.Has(idx) && s.grid.Walkable(idx)
		}
		var simulated [grid.KeyCount][]grid.Label
		labelsFor := func(key grid.Key) []grid.Label {
			if simulated[key] == nil {
				simulated[key] = grid.Solve(s.grid, s.grid.Exits[key], walkable)
			}
			return simulated[key]
		}

		if s.strandsInvader(labelsFor) {
			return reject(ReasonStrandsInvader, cells)
		}
		if s.blocksEntrance(labelsFor) {
			return reject(ReasonBlocksPath, cells)
		}
	}

	if def.Cost > s.player.Money {
		return reject(ReasonInsufficientFunds, cells)
	}
	return Placement{Accepted: true, Cells: cells}
}

// strandsInvader: потеряет ли хоть один живой захватчик путь к выходу своего ключа
func (s *PlacementSystem) strandsInvader(labelsFor func(grid.Key) []grid.Label) bool {
	for _, inv := range s.ecs.Invaders {
		if !inv.Alive() {
			continue
		}
		next := inv.Target
		if next == grid.NoCell {
			next = inv.Current
		}
		if next == grid.NoCell {
			continue
		}
		// Захватчик, уже отрезанный от выхода, не мешает строить
		if !s.grid.Cells[next].Labels[inv.Key].Reachable() {
			continue
		}
		if !labelsFor(inv.Key)[next].Reachable() {
			return true
		}
	}
	return false
}

// blocksEntrance: потеряет ли путь какой-либо вход, у которого путь сейчас есть
func (s *PlacementSystem) blocksEntrance(labelsFor func(grid.Key) []grid.Label) bool {
	for k := grid.Key(0); k < grid.KeyCount; k++ {
		for _, idx := range s.grid.Entrances[k] {
			if !s.grid.Cells[idx].Labels[k].Reachable() {
				continue
			}
			if !labelsFor(k)[idx].Reachable() {
				return true
			}
		}
	}
	return false
}

// TryPlace проверяет размещение и при успехе создаёт фигуру.
// Отказ ничего не меняет.
func (s *PlacementSystem) TryPlace(col, row int, defID string) (Placement, types.EntityID) {
	result := s.Check(col, row, defID)
	if !result.Accepted {
		s.logger.Debug("placement rejected", "piece", defID, "col", col, "row", row, "reason", result.Reason)
		return result, types.None
	}
	def, _ := s.library.Piece(defID)
	s.player.Spend(def.Cost)
	id := s.Commit(col, row, def, result.Cells)
	s.logger.Debug("piece placed", "id", id, "piece", defID, "col", col, "row", row)
	return result, id
}

// Commit размещает фигуру без проверок. Используется TryPlace и восстановлением из снимка.
func (s *PlacementSystem) Commit(col, row int, def defs.PieceDefinition, cells []int) types.EntityID {
	id := s.ecs.NewEntity()
	w, h := def.Size()
	bounds := s.grid.Cell(cells[0]).Bounds
	last := s.grid.Cell(cells[len(cells)-1]).Bounds
	bounds.MaxX, bounds.MaxY = last.MaxX, last.MaxY

	piece := &component.Piece{
		DefID:     def.ID,
		Col:       col,
		Row:       row,
		Width:     w,
		Height:    h,
		Cells:     append([]int(nil), cells...),
		Center:    bounds.Center(),
		State:     component.PieceIdle,
		FireTimer: 0,
		Invested:  def.Cost,
	}
	s.ecs.Pieces[id] = piece

	for _, idx := range cells {
		c := s.grid.Cell(idx)
		c.Piece = id
		if def.Blocking {
			s.grid.SetOccupancy(idx, grid.Blocked)
		}
	}
	if def.Blocking {
		s.recompute()
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.PiecePlaced, Data: event.PieceData{ID: id, DefID: def.ID}})
	return id
}

// Vacate освобождает клетки фигуры и пересчитывает пути
func (s *PlacementSystem) Vacate(id types.EntityID) {
	piece, ok := s.ecs.Pieces[id]
	if !ok {
		return
	}
	blocking := false
	for _, idx := range piece.Cells {
		c := s.grid.Cell(idx)
		if c.Piece != id {
			continue
		}
		c.Piece = types.None
		if c.Occupancy == grid.Blocked && !s.grid.IsWall(idx) {
			s.grid.SetOccupancy(idx, grid.Empty)
			blocking = true
		}
	}
	piece.Cells = nil
	if blocking {
		s.recompute()
	}
}

func (s *PlacementSystem) recompute() {
	s.grid.RecomputeAll()
	s.eventDispatcher.Dispatch(event.Event{Type: event.PathsRecomputed})
}

// PieceAt возвращает фигуру, занимающую точку
func (s *PlacementSystem) PieceAt(p geometry.Point) types.EntityID {
	idx := s.grid.CellAt(p)
	if idx == grid.NoCell {
		return types.None
	}
	return s.grid.Cell(idx).Piece
}
