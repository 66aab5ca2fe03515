// internal/app/snapshot.go
package app

import (
	"fmt"

	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/storage"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

// Snapshot снимает сохраняемое состояние партии
func (g *Game) Snapshot() storage.Snapshot {
	occ := g.Grid.Occupancies()
	snap := storage.Snapshot{
		Cols:         g.Grid.Cols,
		Rows:         g.Grid.Rows,
		CellSize:     g.Grid.CellSize,
		Occupancy:    make([]uint8, len(occ)),
		Money:        g.Player.Money,
		Lives:        g.Player.Lives,
		InvaderLevel: g.WaveSystem.Wave.InvaderLevel,
		Generated:    g.WaveSystem.Wave.Generated,
		MadeIt:       g.WaveSystem.Wave.MadeIt,
		Destroyed:    g.WaveSystem.Wave.Destroyed,
		SentAll:      g.WaveSystem.Wave.SentAllInvaders,
		Seed:         g.Rng.Seed(),
	}
	for i, o := range occ {
		snap.Occupancy[i] = uint8(o)
	}
	for _, id := range entity.SortedIDs(g.ECS.Pieces) {
		p := g.ECS.Pieces[id]
		snap.Pieces = append(snap.Pieces, storage.PieceRecord{
			DefID:    p.DefID,
			Col:      p.Col,
			Row:      p.Row,
			Level:    p.Level,
			Invested: p.Invested,
		})
	}
	return snap
}

// Restore заменяет состояние партии снимком. При ошибке партия не меняется.
func (g *Game) Restore(snap storage.Snapshot) error {
	if snap.Cols != g.Grid.Cols || snap.Rows != g.Grid.Rows {
		return fmt.Errorf("snapshot grid %dx%d does not match %dx%d", snap.Cols, snap.Rows, g.Grid.Cols, g.Grid.Rows)
	}
	if len(snap.Occupancy) != len(g.Grid.Cells) {
		return fmt.Errorf("snapshot has %d cells, grid has %d", len(snap.Occupancy), len(g.Grid.Cells))
	}

	groups := make([][]int, len(snap.Pieces))
	taken := make(map[int]bool)
	blocked := make(map[int]bool)
	for i, rec := range snap.Pieces {
		def, ok := g.Library.Piece(rec.DefID)
		if !ok {
			return fmt.Errorf("snapshot piece %d: unknown definition %q", i, rec.DefID)
		}
		w, h := def.Size()
		cells, ok := g.Grid.Group(rec.Col, rec.Row, w, h)
		if !ok {
			return fmt.Errorf("snapshot piece %d (%s): out of bounds at (%d,%d)", i, rec.DefID, rec.Col, rec.Row)
		}
		for _, idx := range cells {
			if g.Grid.Cell(idx).Outer || taken[idx] {
				return fmt.Errorf("snapshot piece %d (%s): cell %d unavailable", i, rec.DefID, idx)
			}
			taken[idx] = true
		}
		if rec.Level < 0 || rec.Level > def.MaxLevel {
			return fmt.Errorf("snapshot piece %d (%s): level %d out of range", i, rec.DefID, rec.Level)
		}
		groups[i] = cells
		if def.Blocking {
			for _, idx := range cells {
				blocked[idx] = true
			}
		}
	}

	// занятость выводится из стен и блокирующих фигур, снимок обязан с ней совпадать
	occ := make([]grid.Occupancy, len(snap.Occupancy))
	for i, o := range snap.Occupancy {
		want := grid.Empty
		if g.Grid.IsWall(i) || blocked[i] {
			want = grid.Blocked
		}
		if grid.Occupancy(o) != want {
			return fmt.Errorf("snapshot cell %d: occupancy %d, expected %d", i, o, want)
		}
		occ[i] = want
	}

	g.Reset()
	if snap.Seed != 0 {
		g.Rng.Reseed(snap.Seed)
	}
	for i, rec := range snap.Pieces {
		def, _ := g.Library.Piece(rec.DefID)
		id := g.PlacementSystem.Commit(rec.Col, rec.Row, def, groups[i])
		piece := g.ECS.Pieces[id]
		piece.Level = rec.Level
		piece.Invested = rec.Invested
	}

	g.Grid.RestoreOccupancies(occ)
	g.EventDispatcher.Dispatch(event.Event{Type: event.PathsRecomputed})

	g.Player.Money = snap.Money
	g.Player.Lives = snap.Lives
	w := &g.WaveSystem.Wave
	w.InvaderLevel = snap.InvaderLevel
	w.Generated = snap.Generated
	w.MadeIt = snap.MadeIt
	w.Destroyed = snap.Destroyed
	w.SentAllInvaders = snap.SentAll
	if w.InvaderLevel < 1 {
		w.InvaderLevel = 1
	}
	g.Selected = types.None

	g.logger.Info("snapshot restored", "pieces", len(snap.Pieces), "money", snap.Money, "lives", snap.Lives)
	if g.Player.Lives <= 0 {
		g.endGame(false)
	}
	return nil
}
