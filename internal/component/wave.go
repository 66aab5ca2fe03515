// internal/component/wave.go
package component

import "go-grid-defense/pkg/grid"

// Spawn: запланированный выход одного захватчика
type Spawn struct {
	DefID    string
	Key      grid.Key
	Entrance int // индекс клетки входа
	Level    int
	Life     float64
	Speed    float64
	Bounty   int
	Flags    InvaderFlags
}

// Wave: состояние директора волн
type Wave struct {
	InvaderLevel    int     // уровень следующей волны, начиная с 1
	Generated       int     // сколько волн сгенерировано
	Queue           []Spawn // ещё не выпущенные захватчики
	SpawnTimer      float64 // до следующего выпуска, секунды
	SinceLastWave   float64
	Spawned         int
	Active          int
	MadeIt          int
	Destroyed       int
	SentAllInvaders bool
}
