// internal/defs/types.go
package defs

import "image/color"

// FireKind: закрытый набор стратегий стрельбы фигуры.
type FireKind string

const (
	FireBolt FireKind = "bolt" // прямой выстрел в текущую позицию цели
	FireLead FireKind = "lead" // выстрел с упреждением
	FireArc  FireKind = "arc"  // мгновенный разряд по всем целям в радиусе
)

// Valid reports whether the kind names a known strategy.
func (k FireKind) Valid() bool {
	switch k {
	case FireBolt, FireLead, FireArc:
		return true
	}
	return false
}

// Visuals contains parameters for rendering a piece or an invader.
type Visuals struct {
	Color  color.RGBA `json:"color"`
	Sprite string     `json:"sprite"` // ключ изображения в менеджере ресурсов
	Scale  float64    `json:"scale"`
}

// SpriteScale returns the scale, treating zero as 1.
func (v Visuals) SpriteScale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
