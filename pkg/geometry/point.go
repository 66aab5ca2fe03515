// pkg/geometry/point.go
package geometry

import "math"

// Point: точка или вектор на плоскости
type Point struct {
	X, Y float64
}

// Pt: короткий конструктор точки
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Dot: скалярное произведение
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

// Cross: z-компонента векторного произведения
func (p Point) Cross(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

// LenSq: квадрат длины вектора
func (p Point) LenSq() float64 {
	return p.X*p.X + p.Y*p.Y
}

func (p Point) Len() float64 {
	return math.Sqrt(p.LenSq())
}

// Normalize возвращает единичный вектор. Нулевой вектор остаётся нулевым.
func (p Point) Normalize() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Perp возвращает перпендикуляр (поворот на 90° против часовой)
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

// Angle: угол вектора в радианах
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rect: выровненный по осям прямоугольник (AABB)
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAt создаёт прямоугольник по левому верхнему углу и размерам
func RectAt(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// RectAround создаёт прямоугольник с центром в c
func RectAround(c Point, w, h float64) Rect {
	return Rect{MinX: c.X - w/2, MinY: c.Y - h/2, MaxX: c.X + w/2, MaxY: c.Y + h/2}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center возвращает центр прямоугольника
func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Overlaps: пересекаются ли прямоугольники. Касание рёбрами считается пересечением,
// отбрасываются только строго разнесённые боксы.
func (r Rect) Overlaps(o Rect) bool {
	if r.MaxX < o.MinX || o.MaxX < r.MinX {
		return false
	}
	if r.MaxY < o.MinY || o.MaxY < r.MinY {
		return false
	}
	return true
}

// Contains: лежит ли точка внутри прямоугольника (правая и нижняя границы исключены)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Translate сдвигает прямоугольник на вектор d
func (r Rect) Translate(d Point) Rect {
	return Rect{r.MinX + d.X, r.MinY + d.Y, r.MaxX + d.X, r.MaxY + d.Y}
}
