// internal/defs/invaders.go
package defs

// InvaderSample: атрибуты захватчика на границе диапазона уровней
type InvaderSample struct {
	Life   float64 `json:"life"`
	Speed  float64 `json:"speed"` // пикселей в секунду
	Bounty int     `json:"bounty"`
}

// InvaderDefinition holds all the static data for a specific type of invader.
type InvaderDefinition struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Weight        int           `json:"weight"`     // вес при случайном выборе
	MinLevel      int           `json:"min_level"`  // с какого уровня появляется
	First         InvaderSample `json:"first"`      // на уровне 1
	Last          InvaderSample `json:"last"`       // на максимальном уровне
	Ease          string        `json:"ease"`       // кривая интерполяции между First и Last
	SlowResistant bool          `json:"slow_resistant"`
	FireResistant bool          `json:"fire_resistant"`
	Visuals       Visuals       `json:"visuals"`
}
