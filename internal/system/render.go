// internal/system/render.go
package system

import (
	"fmt"
	"image/color"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
	"go-grid-defense/pkg/utils"
)

// RenderSystem рисует сетку и сущности через примитивы Canvas
type RenderSystem struct {
	ecs     *entity.Store
	grid    *grid.Grid
	library *defs.Library
	combat  *CombatSystem
	Debug   bool // рисовать оболочки и расстояния
}

func NewRenderSystem(ecs *entity.Store, g *grid.Grid, library *defs.Library, combat *CombatSystem) *RenderSystem {
	return &RenderSystem{ecs: ecs, grid: g, library: library, combat: combat}
}

func (s *RenderSystem) Draw(canvas interfaces.Canvas, selected types.EntityID) {
	s.drawCells(canvas)

	for _, id := range entity.SortedIDs(s.ecs.Pieces) {
		s.drawPiece(canvas, s.ecs.Pieces[id], id == selected)
	}

	// Отрисовка захватчиков
	for _, id := range entity.SortedIDs(s.ecs.Invaders) {
		inv := s.ecs.Invaders[id]
		def, _ := s.library.Invader(inv.DefID)
		if !canvas.Sprite(def.Visuals.Sprite, 0, inv.Position, inv.Angle, def.Visuals.SpriteScale()) {
			if hull, ok := s.combat.Hull(id); ok {
				canvas.Polygon(hull, def.Visuals.Color, true)
			}
		}
		s.drawBar(canvas, inv.Position, s.grid.CellSize*0.8, inv.Life/inv.MaxLife, config.LifeBarColor)
	}

	// Отрисовка снарядов
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		if !canvas.Sprite(proj.Sprite, 0, proj.Position, proj.Angle, 1) {
			canvas.FillRect(geometry.RectAround(proj.Position, 4, 4), config.ProjectileColor)
		}
	}

	if s.Debug {
		s.drawHulls(canvas)
	}
}

func (s *RenderSystem) drawCells(canvas interfaces.Canvas) {
	for i := range s.grid.Cells {
		c := &s.grid.Cells[i]
		var fill color.Color
		switch {
		case s.grid.IsWall(i):
			fill = config.WallColor
		case c.Throughway && s.grid.Distance(i, grid.Horizontal) == 0, c.Throughway && s.grid.Distance(i, grid.Vertical) == 0:
			fill = config.ExitColor
		case c.Throughway:
			fill = config.EntryColor
		case c.Occupancy == grid.Blocked:
			fill = config.ImpassableColor
		default:
			fill = config.PassableColor
		}
		canvas.FillRect(c.Bounds, fill)
		if s.Debug && !c.Outer {
			d := s.grid.Distance(i, grid.Horizontal)
			canvas.Text(fmt.Sprint(d), geometry.Pt(c.Bounds.MinX+2, c.Bounds.MinY+config.TextOffsetY), config.TextDarkColor)
		}
	}
}

func (s *RenderSystem) drawPiece(canvas interfaces.Canvas, piece *component.Piece, selected bool) {
	def, _ := s.library.Piece(piece.DefID)
	bounds := s.pieceBounds(piece)
	frame := 0
	if piece.Discharge.Running {
		frame = piece.Discharge.Frame
	}
	if !canvas.Sprite(def.Visuals.Sprite, frame, piece.Center, piece.Angle, def.Visuals.SpriteScale()) {
		canvas.FillRect(bounds, def.Visuals.Color)
	}
	canvas.StrokeRect(bounds, 1, config.PieceStrokeColor)

	if stats, ok := def.FireAt(piece.Level); ok && piece.Discharge.Running && stats.Kind == defs.FireArc {
		radius := stats.Radius * s.grid.CellSize * piece.Discharge.Progress()
		canvas.StrokeRect(geometry.RectAround(piece.Center, 2*radius, 2*radius), config.StrokeWidth, def.Visuals.Color)
	}
	switch piece.State {
	case component.PieceUpgrading, component.PieceSelling:
		s.drawBar(canvas, piece.Center, bounds.Width(), piece.Progress/config.MaxProgress, config.ProgressColor)
	}
	if piece.Level > 0 {
		canvas.Text(fmt.Sprint(piece.Level), geometry.Pt(bounds.MinX+2, bounds.MinY+config.TextOffsetY), config.TextLightColor)
	}
	if selected {
		canvas.StrokeRect(bounds, config.StrokeWidth, config.SelectionColor)
		if stats, ok := def.FireAt(piece.Level); ok {
			r := stats.Range * s.grid.CellSize
			canvas.StrokeRect(geometry.RectAround(piece.Center, 2*r, 2*r), 1, config.SelectionColor)
		}
	}
}

func (s *RenderSystem) pieceBounds(piece *component.Piece) geometry.Rect {
	cs := s.grid.CellSize
	return geometry.RectAt(float64(piece.Col)*cs, float64(piece.Row)*cs, float64(piece.Width)*cs, float64(piece.Height)*cs)
}

// drawBar: полоса над точкой, заполненная на долю frac
func (s *RenderSystem) drawBar(canvas interfaces.Canvas, at geometry.Point, width, frac float64, c color.Color) {
	frac = utils.ClampF(frac, 0, 1)
	top := at.Y - s.grid.CellSize/2 - 4
	canvas.FillRect(geometry.RectAt(at.X-width/2, top, width, 3), config.BackgroundColor)
	canvas.FillRect(geometry.RectAt(at.X-width/2, top, width*frac, 3), c)
}

func (s *RenderSystem) drawHulls(canvas interfaces.Canvas) {
	for _, id := range entity.SortedIDs(s.ecs.Invaders) {
		if hull, ok := s.combat.Hull(id); ok {
			canvas.Polygon(hull, config.HullColor, false)
		}
	}
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		if hull, ok := s.combat.Hull(id); ok {
			canvas.Polygon(hull, config.HullColor, false)
		}
	}
	// Цепочки родителей от входов
	for k := grid.Key(0); k < grid.KeyCount; k++ {
		for _, entrance := range s.grid.Entrances[k] {
			path := s.grid.Path(entrance, k)
			for i := 1; i < len(path); i++ {
				canvas.Line(s.grid.Anchor(path[i-1]), s.grid.Anchor(path[i]), 1, config.HullColor)
			}
		}
	}
}
