// internal/component/piece.go
package component

import (
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
)

// PieceState: стадия жизненного цикла фигуры
type PieceState int

const (
	PieceIdle PieceState = iota
	PieceUpgrading
	PieceUpgraded // держится один тик, затем Idle
	PieceSelling
	PieceSold // терминальное
)

func (s PieceState) String() string {
	switch s {
	case PieceIdle:
		return "idle"
	case PieceUpgrading:
		return "upgrading"
	case PieceUpgraded:
		return "upgraded"
	case PieceSelling:
		return "selling"
	case PieceSold:
		return "sold"
	default:
		return "unknown"
	}
}

// Piece: размещённая на сетке фигура
type Piece struct {
	DefID     string
	Col, Row  int   // левый верхний угол группы клеток
	Width     int   // в клетках
	Height    int   // в клетках
	Cells     []int // индексы занятых клеток, построчно
	Center    geometry.Point
	Level     int
	State     PieceState
	Progress  float64 // 0..MaxProgress
	Target    types.EntityID
	FireTimer float64 // накопленная доля выстрела
	Angle     float64
	Invested  int        // сколько денег вложено, для возврата при продаже
	Discharge FrameTimer // анимация разряда
}

// HasTarget: есть ли текущая цель
func (p *Piece) HasTarget() bool {
	return p.Target != types.None
}
