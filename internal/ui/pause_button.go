// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"time"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

// PauseButton: кнопка паузы: две полосы или треугольник «play»
type PauseButton struct {
	X, Y          float64
	Size          float64
	LastClickTime time.Time
	IsPaused      bool
	PauseColor    color.Color
	PlayColor     color.Color
}

func NewPauseButton(x, y, size float64, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(canvas interfaces.Canvas) {
	rectSize := b.Size * pulse(b.LastClickTime)

	if b.IsPaused {
		tri := geometry.NewPolygon([]geometry.Point{
			{X: b.X - rectSize, Y: b.Y - rectSize*1.2},
			{X: b.X + rectSize, Y: b.Y},
			{X: b.X - rectSize, Y: b.Y + rectSize*1.2},
		})
		canvas.Polygon(tri, b.PlayColor, true)
		canvas.Polygon(tri, config.TextLightColor, false)
		return
	}

	width := rectSize * 0.6
	height := rectSize * 2.0
	spacing := rectSize * 0.4
	left := geometry.RectAt(b.X-width-spacing/2, b.Y-height/2, width, height)
	right := geometry.RectAt(b.X+spacing/2, b.Y-height/2, width, height)
	for _, r := range []geometry.Rect{left, right} {
		canvas.FillRect(r, b.PauseColor)
		canvas.StrokeRect(r, 1, config.TextLightColor)
	}
}

func (b *PauseButton) IsClicked(p geometry.Point) bool {
	return geometry.RectAround(geometry.Pt(b.X, b.Y), 2*b.Size, 2*b.Size).Contains(p)
}

func (b *PauseButton) TogglePause() {
	b.IsPaused = !b.IsPaused
	b.LastClickTime = time.Now()
}

func (b *PauseButton) SetPaused(paused bool) {
	b.IsPaused = paused
}
