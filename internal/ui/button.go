// internal/ui/button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       geometry.Rect
	Text       string
	TextColor  color.Color
	BgColor    color.Color
	HoverColor color.Color
	Active     bool // подсветка выбранной кнопки
}

// NewButton создает новую кнопку.
func NewButton(rect geometry.Rect, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  config.TextDarkColor,
		BgColor:    config.ButtonColor,
		HoverColor: config.ButtonHoverColor,
	}
}

// IsClicked проверяет, попадает ли точка в кнопку.
func (b *Button) IsClicked(p geometry.Point) bool {
	return b.Rect.Contains(p)
}

// Draw отрисовывает кнопку.
func (b *Button) Draw(canvas interfaces.Canvas, cursor geometry.Point) {
	bg := b.BgColor
	if b.Rect.Contains(cursor) {
		bg = b.HoverColor
	}
	canvas.FillRect(b.Rect, bg)
	border := config.PieceStrokeColor
	width := 1.0
	if b.Active {
		border = config.SelectionColor
		width = config.StrokeWidth
	}
	canvas.StrokeRect(b.Rect, width, border)

	textX := b.Rect.MinX + (b.Rect.Width()-float64(len(b.Text))*config.TextCharWidth)/2
	textY := b.Rect.MinY + (b.Rect.Height()-config.TextLineHeight)/2
	canvas.Text(b.Text, geometry.Pt(textX, textY), b.TextColor)
}

// pulse: кратковременное увеличение после клика
func pulse(lastClick time.Time) float64 {
	if lastClick.IsZero() {
		return 1
	}
	elapsed := time.Since(lastClick).Seconds()
	return 1.0 + 0.3*math.Exp(-elapsed*8)
}
