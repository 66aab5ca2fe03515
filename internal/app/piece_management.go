// internal/app/piece_management.go
package app

import (
	"fmt"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

// TryPlace ставит фигуру левым верхним углом в (col,row)
func (g *Game) TryPlace(col, row int, defID string) (system.Placement, types.EntityID) {
	return g.PlacementSystem.TryPlace(col, row, defID)
}

// PlaceAt ставит фигуру в клетку под точкой
func (g *Game) PlaceAt(p geometry.Point, defID string) (system.Placement, types.EntityID) {
	idx := g.Grid.CellAt(p)
	if idx == grid.NoCell {
		return system.Placement{Reason: system.ReasonOutOfBounds}, types.None
	}
	c := g.Grid.Cell(idx)
	return g.TryPlace(c.Col, c.Row, defID)
}

func (g *Game) Upgrade(id types.EntityID) error {
	if err := g.PieceSystem.Upgrade(id); err != nil {
		g.logger.Debug("upgrade refused", "id", id, "err", err)
		return err
	}
	return nil
}

func (g *Game) Sell(id types.EntityID) error {
	if err := g.PieceSystem.Sell(id); err != nil {
		g.logger.Debug("sale refused", "id", id, "err", err)
		return err
	}
	return nil
}

// Select выбирает фигуру под точкой; пустая клетка снимает выбор
func (g *Game) Select(p geometry.Point) types.EntityID {
	g.Selected = g.PlacementSystem.PieceAt(p)
	return g.Selected
}

// ApplyInput переводит снимок ввода в команды симуляции.
// Клик засчитывается, если кнопка отпущена над той же клеткой, где нажата.
func (g *Game) ApplyInput(in interfaces.InputSnapshot) {
	if g.over {
		return
	}
	if in.Prototype != "" {
		if _, ok := g.Library.Piece(in.Prototype); ok {
			g.Prototype = in.Prototype
		}
	}
	if in.ClearSelection {
		g.Selected = types.None
	}

	if in.SelectPressed {
		g.pressCell = g.Grid.CellAt(in.Cursor)
	}
	if in.SelectReleased {
		cell := g.Grid.CellAt(in.Cursor)
		if cell != grid.NoCell && cell == g.pressCell {
			g.click(in.Cursor)
		}
		g.pressCell = grid.NoCell
	}

	if g.Selected != types.None {
		if in.Upgrade {
			g.Upgrade(g.Selected)
		}
		if in.Sell {
			g.Sell(g.Selected)
		}
	}
	if in.NextWave {
		g.NextWave()
	}
}

func (g *Game) click(p geometry.Point) {
	if id := g.PlacementSystem.PieceAt(p); id != types.None {
		g.Selected = id
		return
	}
	g.Selected = types.None
	if g.Prototype == "" {
		return
	}
	if result, id := g.PlaceAt(p, g.Prototype); result.Accepted {
		g.Selected = id
	}
}

// Describe: короткая подпись фигуры для панели, пусто если её нет
func (g *Game) Describe(id types.EntityID) string {
	piece, ok := g.ECS.Pieces[id]
	if !ok {
		return ""
	}
	def, _ := g.Library.Piece(piece.DefID)
	name := def.Name
	if name == "" {
		name = def.ID
	}
	if piece.State != component.PieceIdle {
		return fmt.Sprintf("%s L%d (%s)", name, piece.Level, piece.State)
	}
	return fmt.Sprintf("%s L%d", name, piece.Level)
}
