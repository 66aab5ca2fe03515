// internal/ui/player_health_indicator.go
package ui

import (
	"strconv"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

const (
	HealthCols        = 10
	HealthCellSize    = 8.0
	HealthCellSpacing = 3.0
)

// PlayerHealthIndicator отображает жизни игрока сеткой квадратов.
type PlayerHealthIndicator struct {
	Position geometry.Point
}

func NewPlayerHealthIndicator(x, y float64) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{Position: geometry.Pt(x, y)}
}

// Draw рисует maxHealth ячеек, из них health закрашены
func (i *PlayerHealthIndicator) Draw(canvas interfaces.Canvas, health, maxHealth int) {
	for j := 0; j < maxHealth; j++ {
		row := j / HealthCols
		col := j % HealthCols
		x := i.Position.X + float64(col)*(HealthCellSize+HealthCellSpacing)
		y := i.Position.Y + float64(row)*(HealthCellSize+HealthCellSpacing)
		r := geometry.RectAt(x, y, HealthCellSize, HealthCellSize)
		if j < health {
			canvas.FillRect(r, config.LifeBarColor)
		}
		canvas.StrokeRect(r, 1, config.TextLightColor)
	}
	rows := (maxHealth + HealthCols - 1) / HealthCols
	label := geometry.Pt(i.Position.X, i.Position.Y+float64(rows)*(HealthCellSize+HealthCellSpacing))
	canvas.Text(strconv.Itoa(health), label, config.TextLightColor)
}
