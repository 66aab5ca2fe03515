// internal/defs/pieces.go
package defs

// PieceDefinition holds all the static data for a specific type of piece.
type PieceDefinition struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Width        int        `json:"width"`  // в клетках
	Height       int        `json:"height"` // в клетках
	Cost         int        `json:"cost"`
	UpgradeCost  int        `json:"upgrade_cost"` // цена за каждый следующий уровень
	MaxLevel     int        `json:"max_level"`
	ProgressRate float64    `json:"progress_rate"` // единиц прогресса в секунду
	Blocking     bool       `json:"blocking"`      // перекрывает ли клетки для прохода
	FixedFacing  bool       `json:"fixed_facing"`  // не поворачивается к цели
	Fire         *FireStats `json:"fire,omitempty"`
	Ground       *Ground    `json:"ground,omitempty"`
	Visuals      Visuals    `json:"visuals"`
}

// FireStats contains parameters related to a piece's attack.
type FireStats struct {
	Kind           FireKind `json:"kind"`
	Rate           float64  `json:"rate"`  // выстрелов в секунду
	Range          float64  `json:"range"` // в клетках
	Attack         float64  `json:"attack"`
	Speed          float64  `json:"speed"`  // скорость снаряда, пикселей в секунду
	TTL            float64  `json:"ttl"`    // время жизни снаряда, секунды
	Radius         float64  `json:"radius"` // радиус разряда для arc, в клетках
	Sprite         string   `json:"sprite"` // изображение снаряда
	AttackPerLevel float64  `json:"attack_per_level"`
	RangePerLevel  float64  `json:"range_per_level"`
	RatePerLevel   float64  `json:"rate_per_level"`
	Frames         int      `json:"frames"`         // кадров анимации разряда
	FrameDuration  float64  `json:"frame_duration"` // секунд на кадр
}

// Ground describes the effect a non-blocking piece has on invaders walking over it.
type Ground struct {
	SlowFactor     float64 `json:"slow_factor"` // 0.5 вдвое, 0.25 вчетверо
	DrainPerSecond float64 `json:"drain_per_second"`
}

// FireAt returns the attack parameters scaled for the given level.
func (d PieceDefinition) FireAt(level int) (FireStats, bool) {
	if d.Fire == nil {
		return FireStats{}, false
	}
	s := *d.Fire
	l := float64(level)
	s.Attack += s.AttackPerLevel * l
	s.Range += s.RangePerLevel * l
	s.Rate += s.RatePerLevel * l
	return s, true
}

// UpgradePrice is the price of going from level to level+1.
func (d PieceDefinition) UpgradePrice(level int) int {
	return d.UpgradeCost * (level + 1)
}

// Size returns the footprint, treating non-positive dimensions as 1.
func (d PieceDefinition) Size() (w, h int) {
	w, h = d.Width, d.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
