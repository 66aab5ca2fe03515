package system

import (
	"testing"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

func snapshotLabels(g *grid.Grid) [][grid.KeyCount]grid.Label {
	out := make([][grid.KeyCount]grid.Label, len(g.Cells))
	for i := range g.Cells {
		out[i] = g.Cells[i].Labels
	}
	return out
}

func TestTryPlaceStrandsInvader(t *testing.T) {
	w := newWorld(t, columnGrid())
	w.spawnWalker(10)
	w.movement.Update(0.1)

	before := snapshotLabels(w.grid)
	occ := w.grid.Occupancies()

	// Полоса поперёк всей внутренней части перекрывает единственный путь
	result, id := w.placement.TryPlace(1, 2, "bar")
	if result.Accepted || id != types.None {
		t.Fatalf("placement across the only path should be rejected")
	}
	if result.Reason != ReasonStrandsInvader {
		t.Fatalf("expected %v, got %v", ReasonStrandsInvader, result.Reason)
	}
	if w.player.Money != 100 || len(w.ecs.Pieces) != 0 {
		t.Errorf("rejection must not charge money or create pieces")
	}
	after := w.grid.Occupancies()
	for i := range occ {
		if occ[i] != after[i] {
			t.Fatalf("rejection changed occupancy of cell %d", i)
		}
	}
	for i, l := range snapshotLabels(w.grid) {
		if l != before[i] {
			t.Fatalf("rejection changed labels of cell %d", i)
		}
	}
}

func TestTryPlaceBlocksPathWithoutInvaders(t *testing.T) {
	w := newWorld(t, columnGrid())
	result, _ := w.placement.TryPlace(1, 2, "bar")
	if result.Accepted || result.Reason != ReasonBlocksPath {
		t.Fatalf("expected %v, got %+v", ReasonBlocksPath, result)
	}
}

func TestTryPlaceRejectionReasons(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *world)
		col   int
		row   int
		piece string
		want  Reason
	}{
		{"unknown piece", nil, 1, 1, "catapult", ReasonUnknownPiece},
		{"out of bounds", nil, 3, 3, "bar", ReasonOutOfBounds},
		{"negative position", nil, -1, 1, "block", ReasonOutOfBounds},
		{"outer cell", nil, 0, 1, "block", ReasonOuterCell},
		{"occupied", func(w *world) { w.placement.TryPlace(1, 1, "block") }, 1, 1, "block", ReasonOccupied},
		{"occupied by ground piece", func(w *world) { w.placement.TryPlace(1, 1, "tar") }, 1, 1, "block", ReasonOccupied},
		{"invader present", func(w *world) {
			id := w.ecs.NewEntity()
			w.ecs.Invaders[id] = &component.Invader{
				Key:      grid.Vertical,
				Current:  w.grid.Index(2, 1),
				Target:   w.grid.Index(2, 2),
				Position: w.grid.Anchor(w.grid.Index(2, 1)),
				Life:     1,
			}
		}, 2, 2, "block", ReasonInvaderPresent},
		{"insufficient funds", func(w *world) { w.player.Money = 4 }, 1, 1, "block", ReasonInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t, columnGrid())
			if tt.setup != nil {
				tt.setup(w)
			}
			result, id := w.placement.TryPlace(tt.col, tt.row, tt.piece)
			if result.Accepted || id != types.None {
				t.Fatalf("expected rejection, got acceptance")
			}
			if result.Reason != tt.want {
				t.Errorf("reason = %v, want %v", result.Reason, tt.want)
			}
		})
	}
}

func TestTryPlaceAcceptedKeepsUnaffectedLabels(t *testing.T) {
	w := newWorld(t, columnGrid())
	w.spawnWalker(10)
	w.movement.Update(0.1)

	path := w.grid.Path(w.grid.Index(2, 0), grid.Vertical)
	distances := make([]int, len(path))
	for i, idx := range path {
		distances[i] = w.grid.Distance(idx, grid.Vertical)
	}

	result, id := w.placement.TryPlace(1, 1, "block")
	if !result.Accepted || id == types.None {
		t.Fatalf("placement beside the path should be accepted, got %v", result.Reason)
	}
	if w.player.Money != 95 {
		t.Errorf("expected cost to be charged, money = %d", w.player.Money)
	}
	cell := w.grid.Cell(w.grid.Index(1, 1))
	if cell.Occupancy != grid.Blocked || cell.Piece != id {
		t.Errorf("cell not marked as owned and blocked")
	}
	for i, idx := range path {
		if got := w.grid.Distance(idx, grid.Vertical); got != distances[i] {
			t.Errorf("distance along the path changed at step %d: %d -> %d", i, distances[i], got)
		}
	}
	if !w.saw(event.PiecePlaced) || !w.saw(event.PathsRecomputed) {
		t.Errorf("expected PiecePlaced and PathsRecomputed events, got %v", w.received)
	}
}

func TestTryPlaceReroutesAroundPiece(t *testing.T) {
	w := newWorld(t, columnGrid())
	if result, _ := w.placement.TryPlace(2, 2, "block"); !result.Accepted {
		t.Fatalf("single block should leave a detour, got %v", result.Reason)
	}
	// Обход через соседний столбец добавляет два шага
	if d := w.grid.Distance(w.grid.Index(2, 0), grid.Vertical); d != 6 {
		t.Errorf("expected detour distance 6, got %d", d)
	}
}

func TestGroundPieceDoesNotBlock(t *testing.T) {
	w := newWorld(t, columnGrid())
	before := w.grid.Distance(w.grid.Index(2, 0), grid.Vertical)
	result, id := w.placement.TryPlace(2, 2, "tar")
	if !result.Accepted {
		t.Fatalf("ground piece on the path should be accepted, got %v", result.Reason)
	}
	if w.grid.Cell(w.grid.Index(2, 2)).Occupancy != grid.Empty {
		t.Errorf("ground piece must keep the cell walkable")
	}
	if w.grid.Distance(w.grid.Index(2, 0), grid.Vertical) != before {
		t.Errorf("ground piece must not change paths")
	}
	if w.placement.PieceAt(geometry.Pt(25, 25)) != id {
		t.Errorf("PieceAt should find the ground piece")
	}
}

func TestVacateRestoresPath(t *testing.T) {
	w := newWorld(t, columnGrid())
	_, id := w.placement.TryPlace(2, 2, "block")
	w.placement.Vacate(id)
	if d := w.grid.Distance(w.grid.Index(2, 0), grid.Vertical); d != 4 {
		t.Errorf("expected straight distance 4 after vacate, got %d", d)
	}
	if w.grid.Cell(w.grid.Index(2, 2)).Piece != types.None {
		t.Errorf("vacated cell still references the piece")
	}
}
