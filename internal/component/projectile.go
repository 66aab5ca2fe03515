// internal/component/projectile.go
package component

import (
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
)

// Projectile представляет летящий снаряд.
type Projectile struct {
	SourceID types.EntityID // выпустившая фигура
	Position geometry.Point
	Velocity geometry.Point // пикселей в секунду
	Angle    float64
	TTL      float64 // оставшееся время жизни, секунды
	Attack   float64
	Alive    bool
	Sprite   string
}
