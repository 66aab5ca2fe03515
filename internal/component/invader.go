// internal/component/invader.go
package component

import (
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

// InvaderState: состояние захватчика
type InvaderState int

const (
	InvaderAlive InvaderState = iota
	InvaderMadeIt
	InvaderDead
)

func (s InvaderState) String() string {
	switch s {
	case InvaderAlive:
		return "alive"
	case InvaderMadeIt:
		return "made_it"
	case InvaderDead:
		return "dead"
	default:
		return "unknown"
	}
}

// InvaderFlags: набор устойчивостей
type InvaderFlags uint8

const (
	SlowResistant InvaderFlags = 1 << iota // не замедляется на земле
	FireResistant                          // не теряет жизнь на земле
)

// Has reports whether all bits of f are set.
func (fl InvaderFlags) Has(f InvaderFlags) bool {
	return fl&f == f
}

// Invader представляет захватчика, идущего по цепочке родителей к выходу.
type Invader struct {
	DefID       string
	Key         grid.Key
	Level       int
	Life        float64
	MaxLife     float64
	Speed       float64 // базовая скорость, пикселей в секунду
	Bounty      int
	Flags       InvaderFlags
	Position    geometry.Point
	Velocity    geometry.Point // фактическое смещение за последний тик, в секунду
	Angle       float64
	TargetAngle float64
	Current     int // grid.NoCell до входа на сетку
	Target      int // grid.NoCell в фазе выхода
	State       InvaderState
}

// Alive: жив и ещё на поле
func (i *Invader) Alive() bool {
	return i.State == InvaderAlive
}
