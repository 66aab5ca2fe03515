// internal/event/types.go
package event

import (
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

const (
	PiecePlaced      EventType = "PiecePlaced"   // Фигура поставлена
	PieceUpgraded    EventType = "PieceUpgraded" // Улучшение завершено
	PieceSold        EventType = "PieceSold"     // Продажа завершена, клетки освобождены
	InvaderSpawned   EventType = "InvaderSpawned"
	InvaderMadeIt    EventType = "InvaderMadeIt"    // Захватчик дошёл до выхода
	InvaderDestroyed EventType = "InvaderDestroyed" // Захватчик уничтожен
	WaveGenerated    EventType = "WaveGenerated"
	PathsRecomputed  EventType = "PathsRecomputed"
	GameOver         EventType = "GameOver"
)

// PieceData: данные событий фигур
type PieceData struct {
	ID     types.EntityID
	DefID  string
	Level  int
	Refund int // только для PieceSold
}

// InvaderData: данные событий захватчиков
type InvaderData struct {
	ID     types.EntityID
	DefID  string
	Key    grid.Key
	Bounty int
}

// WaveData: данные WaveGenerated
type WaveData struct {
	Level int
	Count int
}

// GameOverData: данные GameOver
type GameOverData struct {
	Won bool
}
