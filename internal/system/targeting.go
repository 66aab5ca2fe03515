// internal/system/targeting.go
package system

import (
	"math"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
)

// TargetingSystem снимает потерянные цели и предлагает фигурам ближайшего захватчика в радиусе
type TargetingSystem struct {
	ecs      *entity.Store
	library  *defs.Library
	pieces   *PieceSystem
	cellSize float64
}

func NewTargetingSystem(ecs *entity.Store, library *defs.Library, pieces *PieceSystem, cellSize float64) *TargetingSystem {
	return &TargetingSystem{ecs: ecs, library: library, pieces: pieces, cellSize: cellSize}
}

func (s *TargetingSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Pieces) {
		piece := s.ecs.Pieces[id]
		def, ok := s.library.Piece(piece.DefID)
		if !ok {
			continue
		}
		stats, ok := def.FireAt(piece.Level)
		if !ok || piece.State != component.PieceIdle {
			s.pieces.ClearTarget(id)
			continue
		}
		rangePx := stats.Range * s.cellSize

		if piece.HasTarget() {
			inv, exists := s.ecs.Invaders[piece.Target]
			if !exists || !inv.Alive() || !inRange(piece.Center, inv.Position, rangePx) {
				s.pieces.ClearTarget(id)
			}
		}
		if !piece.HasTarget() {
			if nearest := s.nearest(piece.Center, rangePx); nearest != types.None {
				s.pieces.SetTarget(id, nearest)
			}
		}
	}
}

// nearest: ближайший живой захватчик в радиусе; при равенстве меньший ID
func (s *TargetingSystem) nearest(from geometry.Point, rangePx float64) types.EntityID {
	best := types.None
	bestDist := math.MaxFloat64
	for _, id := range entity.SortedIDs(s.ecs.Invaders) {
		inv := s.ecs.Invaders[id]
		if !inv.Alive() {
			continue
		}
		d := inv.Position.Sub(from).LenSq()
		if d <= rangePx*rangePx && d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func inRange(a, b geometry.Point, r float64) bool {
	return b.Sub(a).LenSq() <= r*r
}
