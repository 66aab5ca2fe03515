// pkg/geometry/transform.go
package geometry

import "math"

// Matrix: аффинное преобразование 2x3:
// | A C E |
// | B D F |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity: единичное преобразование
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

func Translate(dx, dy float64) Matrix {
	return Matrix{A: 1, D: 1, E: dx, F: dy}
}

func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: s, C: -s, D: c}
}

func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Mul возвращает композицию: сначала применяется n, затем m
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply преобразует точку
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Transform возвращает новый многоугольник с преобразованными вершинами
func (p Polygon) Transform(m Matrix) Polygon {
	pts := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = m.Apply(pt)
	}
	return NewPolygon(pts)
}

// Shape хранит оболочку спрайта и кэш её положения в мире.
// Пересчёт идёт только при изменении центра, угла или масштаба.
type Shape struct {
	Hull   Polygon // оболочка в координатах изображения
	Origin Point   // точка изображения, совпадающая с центром сущности

	center Point
	angle  float64
	scale  float64
	cached Polygon
	valid  bool
}

// NewShape создаёт форму с началом координат в origin
func NewShape(hull Polygon, origin Point) *Shape {
	return &Shape{Hull: hull, Origin: origin}
}

// At возвращает оболочку, перенесённую в center, повёрнутую на angle и отмасштабированную.
func (s *Shape) At(center Point, angle, scale float64) Polygon {
	if s.valid && s.center == center && s.angle == angle && s.scale == scale {
		return s.cached
	}
	m := Translate(center.X, center.Y).
		Mul(Rotate(angle)).
		Mul(Scale(scale, scale)).
		Mul(Translate(-s.Origin.X, -s.Origin.Y))
	s.cached = s.Hull.Transform(m)
	s.center, s.angle, s.scale = center, angle, scale
	s.valid = true
	return s.cached
}

// Invalidate сбрасывает кэш
func (s *Shape) Invalidate() {
	s.valid = false
}
