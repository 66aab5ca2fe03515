// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"time"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

// SpeedButton: кнопка множителя скорости, цвет по состоянию
type SpeedButton struct {
	X, Y          float64
	Size          float64
	LastClickTime time.Time
	StateColors   []color.Color
	CurrentState  int
}

func NewSpeedButton(x, y, size float64, stateColors []color.Color) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

func (b *SpeedButton) Draw(canvas interfaces.Canvas) {
	triangleSize := b.Size * pulse(b.LastClickTime)
	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	left := geometry.NewPolygon([]geometry.Point{
		{X: b.X - width, Y: b.Y - height/2},
		{X: b.X, Y: b.Y},
		{X: b.X - width, Y: b.Y + height/2},
	})
	right := geometry.NewPolygon([]geometry.Point{
		{X: b.X - width + offset, Y: b.Y - height/2},
		{X: b.X + offset, Y: b.Y},
		{X: b.X - width + offset, Y: b.Y + height/2},
	})
	for _, tri := range []geometry.Polygon{left, right} {
		canvas.Polygon(tri, clr, true)
		canvas.Polygon(tri, config.TextLightColor, false)
	}
}

// IsClicked: попадание в квадрат вокруг кнопки, форма сложная
func (b *SpeedButton) IsClicked(p geometry.Point) bool {
	r := b.Size * 1.5
	return geometry.RectAround(geometry.Pt(b.X, b.Y), 2*r, 2*r).Contains(p)
}

// SetState выставляет состояние по множителю скорости
func (b *SpeedButton) SetState(multiplier int) {
	state := 0
	for m := multiplier; m > 1; m /= 2 {
		state++
	}
	b.CurrentState = state % len(b.StateColors)
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.StateColors)
	b.LastClickTime = time.Now()
}
