// pkg/grid/grid.go
package grid

import (
	"math"

	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/utils"
)

// NoCell: отсутствие клетки (край сетки, нет родителя, нет цели)
const NoCell = -1

// Infinite: расстояние до недостижимой клетки
const Infinite = math.MaxInt32

// Key выбирает один из двух независимых наборов меток пути
type Key int

const (
	Horizontal Key = iota // вход слева, выход справа
	Vertical              // вход сверху, выход снизу
	KeyCount
)

func (k Key) String() string {
	switch k {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ExitAxis: направление, в котором захватчик покидает сетку
func (k Key) ExitAxis() (dx, dy int) {
	if k == Vertical {
		return 0, 1
	}
	return 1, 0
}

// Direction: слот соседства
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	DirectionCount
)

// directionOffsets в порядке Up, Down, Left, Right
var directionOffsets = [DirectionCount][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
}

// Occupancy: проходимость клетки
type Occupancy uint8

const (
	Empty Occupancy = iota
	Blocked
)

// Label: результат обратного прохода Дейкстры для одной клетки
type Label struct {
	Distance int // Infinite, если пути нет
	Parent   int // следующая клетка к выходу; NoCell у самого выхода
}

// Reachable: есть ли путь к выходу
func (l Label) Reachable() bool {
	return l.Distance != Infinite
}

var unreachable = Label{Distance: Infinite, Parent: NoCell}

// Cell: клетка сетки
type Cell struct {
	Index      int
	Col, Row   int
	Bounds     geometry.Rect
	Outer      bool // клетка на краю сетки
	Throughway bool // вход или выход
	Occupancy  Occupancy
	Piece      types.EntityID // владелец клетки, None если свободна
	Adjacent   [DirectionCount]int
	Labels     [KeyCount]Label
}

// Grid: арена клеток с адресацией по индексу row*Cols+col
type Grid struct {
	Cols, Rows int
	CellSize   float64
	Cells      []Cell
	Entrances  [KeyCount][]int
	Exits      [KeyCount][]int

	queue priorityQueue // переиспользуемый буфер решателя
}

// New создаёт сетку. Клетки по краю помечаются Outer и считаются стеной,
// пока не будут открыты как вход или выход.
func New(cols, rows int, cellSize float64) *Grid {
	g := &Grid{
		Cols:     cols,
		Rows:     rows,
		CellSize: cellSize,
		Cells:    make([]Cell, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			c := &g.Cells[idx]
			c.Index = idx
			c.Col, c.Row = col, row
			c.Bounds = geometry.RectAt(float64(col)*cellSize, float64(row)*cellSize, cellSize, cellSize)
			c.Outer = col == 0 || row == 0 || col == cols-1 || row == rows-1
			if c.Outer {
				c.Occupancy = Blocked
			}
			for d, off := range directionOffsets {
				c.Adjacent[d] = g.Index(col+off[0], row+off[1])
			}
			for k := range c.Labels {
				c.Labels[k] = unreachable
			}
		}
	}
	return g
}

// NewStandard создаёт сетку с центрированными проходами шириной opening
// на всех четырёх сторонах и сразу рассчитывает пути.
func NewStandard(cols, rows int, cellSize float64, opening int) *Grid {
	g := New(cols, rows, cellSize)
	opening = utils.Clamp(opening, 1, utils.Clamp(rows-2, 1, rows))
	start := (rows - opening) / 2
	for r := start; r < start+opening; r++ {
		g.OpenEntrance(Horizontal, 0, r)
		g.OpenExit(Horizontal, cols-1, r)
	}
	opening = utils.Clamp(opening, 1, utils.Clamp(cols-2, 1, cols))
	start = (cols - opening) / 2
	for c := start; c < start+opening; c++ {
		g.OpenEntrance(Vertical, c, 0)
		g.OpenExit(Vertical, c, rows-1)
	}
	g.RecomputeAll()
	return g
}

// OpenEntrance открывает клетку края как вход для ключа
func (g *Grid) OpenEntrance(key Key, col, row int) {
	if idx := g.open(col, row); idx != NoCell {
		g.Entrances[key] = append(g.Entrances[key], idx)
	}
}

// OpenExit открывает клетку края как выход (источник обратного прохода) для ключа
func (g *Grid) OpenExit(key Key, col, row int) {
	if idx := g.open(col, row); idx != NoCell {
		g.Exits[key] = append(g.Exits[key], idx)
	}
}

func (g *Grid) open(col, row int) int {
	idx := g.Index(col, row)
	if idx == NoCell {
		return NoCell
	}
	c := &g.Cells[idx]
	c.Throughway = true
	c.Occupancy = Empty
	return idx
}

// Index возвращает индекс клетки или NoCell за пределами сетки
func (g *Grid) Index(col, row int) int {
	if !g.InBounds(col, row) {
		return NoCell
	}
	return row*g.Cols + col
}

func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

// Cell возвращает клетку по индексу
func (g *Grid) Cell(idx int) *Cell {
	return &g.Cells[idx]
}

// Valid: корректный ли индекс
func (g *Grid) Valid(idx int) bool {
	return idx >= 0 && idx < len(g.Cells)
}

// Walkable: можно ли пройти через клетку
func (g *Grid) Walkable(idx int) bool {
	return g.Valid(idx) && g.Cells[idx].Occupancy == Empty
}

// IsWall: стена по краю сетки, не являющаяся проходом
func (g *Grid) IsWall(idx int) bool {
	c := &g.Cells[idx]
	return c.Outer && !c.Throughway
}

// SetOccupancy меняет проходимость клетки. Пересчёт путей делает вызывающий.
func (g *Grid) SetOccupancy(idx int, occ Occupancy) {
	g.Cells[idx].Occupancy = occ
}

// Distance возвращает расстояние до выхода по ключу, -1 если пути нет
func (g *Grid) Distance(idx int, key Key) int {
	if !g.Valid(idx) {
		return -1
	}
	l := g.Cells[idx].Labels[key]
	if !l.Reachable() {
		return -1
	}
	return l.Distance
}

// Parent возвращает следующую клетку по пути к выходу
func (g *Grid) Parent(idx int, key Key) int {
	if !g.Valid(idx) {
		return NoCell
	}
	return g.Cells[idx].Labels[key].Parent
}

// Anchor: точка, к которой движется захватчик (центр клетки)
func (g *Grid) Anchor(idx int) geometry.Point {
	return g.Cells[idx].Bounds.Center()
}

// CellAt возвращает клетку, содержащую точку, или NoCell
func (g *Grid) CellAt(p geometry.Point) int {
	if p.X < 0 || p.Y < 0 {
		return NoCell
	}
	return g.Index(int(p.X/g.CellSize), int(p.Y/g.CellSize))
}

// Group возвращает прямоугольную группу клеток w×h с левым верхним углом (col,row).
// ok=false, если группа выходит за сетку.
func (g *Grid) Group(col, row, w, h int) ([]int, bool) {
	if w <= 0 || h <= 0 || !g.InBounds(col, row) || !g.InBounds(col+w-1, row+h-1) {
		return nil, false
	}
	cells := make([]int, 0, w*h)
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			cells = append(cells, r*g.Cols+c)
		}
	}
	return cells, true
}

// Bounds: прямоугольник всей сетки в пикселях
func (g *Grid) Bounds() geometry.Rect {
	return geometry.RectAt(0, 0, float64(g.Cols)*g.CellSize, float64(g.Rows)*g.CellSize)
}

// Occupancies снимает занятость всех клеток для сохранения
func (g *Grid) Occupancies() []Occupancy {
	out := make([]Occupancy, len(g.Cells))
	for i := range g.Cells {
		out[i] = g.Cells[i].Occupancy
	}
	return out
}

// RestoreOccupancies восстанавливает занятость и пересчитывает пути.
// Владельцы клеток восстанавливаются отдельно вместе с фигурами.
// Неизвестные значения и открытые стены отклоняются без изменений.
func (g *Grid) RestoreOccupancies(occ []Occupancy) bool {
	if len(occ) != len(g.Cells) {
		return false
	}
	for i, o := range occ {
		if o != Empty && o != Blocked {
			return false
		}
		if g.IsWall(i) && o != Blocked {
			return false
		}
	}
	for i := range g.Cells {
		g.Cells[i].Occupancy = occ[i]
	}
	g.RecomputeAll()
	return true
}

// Reset освобождает все клетки, кроме стен, и пересчитывает пути
func (g *Grid) Reset() {
	for i := range g.Cells {
		c := &g.Cells[i]
		c.Piece = types.None
		if g.IsWall(i) {
			c.Occupancy = Blocked
		} else {
			c.Occupancy = Empty
		}
	}
	g.RecomputeAll()
}
