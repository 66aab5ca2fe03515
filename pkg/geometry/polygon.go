// pkg/geometry/polygon.go
package geometry

import (
	"image"
	"math"
	"sort"
)

// Polygon: выпуклый многоугольник: кольцо вершин, векторы рёбер и ограничивающий бокс.
// Вырожденные варианты (0, 1 или 2 вершины) допустимы.
type Polygon struct {
	Points []Point
	Edges  []Point
	Bounds Rect
}

// NewPolygon строит многоугольник и предрассчитывает рёбра и бокс
func NewPolygon(points []Point) Polygon {
	p := Polygon{Points: points}
	p.build()
	return p
}

func (p *Polygon) build() {
	n := len(p.Points)
	p.Edges = p.Edges[:0]
	if n == 0 {
		p.Bounds = Rect{}
		return
	}
	b := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for i, pt := range p.Points {
		b.MinX = math.Min(b.MinX, pt.X)
		b.MinY = math.Min(b.MinY, pt.Y)
		b.MaxX = math.Max(b.MaxX, pt.X)
		b.MaxY = math.Max(b.MaxY, pt.Y)
		if n > 1 {
			next := p.Points[(i+1)%n]
			p.Edges = append(p.Edges, next.Sub(pt))
		}
	}
	p.Bounds = b
}

// Empty: нет ни одной вершины
func (p Polygon) Empty() bool {
	return len(p.Points) == 0
}

// Center: среднее вершин
func (p Polygon) Center() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	var c Point
	for _, pt := range p.Points {
		c = c.Add(pt)
	}
	return c.Scale(1 / float64(len(p.Points)))
}

// ConvexHull строит выпуклую оболочку монотонной цепью Эндрю.
// Результат обходится против часовой стрелки (в осях с Y вверх).
// Коллинеарные точки отбрасываются: на прямой остаются только два крайних конца.
func ConvexHull(points []Point) Polygon {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Удаляем дубликаты
	uniq := pts[:0]
	for i, pt := range pts {
		if i == 0 || pt != pts[i-1] {
			uniq = append(uniq, pt)
		}
	}
	pts = uniq

	if len(pts) < 3 {
		return NewPolygon(pts)
	}

	hull := make([]Point, 0, 2*len(pts))
	// Нижняя цепь
	for _, pt := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	// Верхняя цепь
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		pt := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	// Последняя точка совпадает с первой
	hull = hull[:len(hull)-1]
	return NewPolygon(hull)
}

func cross(o, a, b Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// HullFromAlpha собирает пиксели, чья альфа строго больше threshold,
// и возвращает их выпуклую оболочку в координатах изображения.
// Полностью прозрачное изображение даёт пустой многоугольник.
func HullFromAlpha(img image.Image, threshold uint8) Polygon {
	b := img.Bounds()
	points := make([]Point, 0, b.Dx()*2+b.Dy()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		// Внутренние пиксели строки не влияют на оболочку: достаточно крайних
		first, last := -1, -1
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if uint8(a>>8) > threshold {
				if first < 0 {
					first = x
				}
				last = x
			}
		}
		if first < 0 {
			continue
		}
		points = append(points, Point{float64(first - b.Min.X), float64(y - b.Min.Y)})
		if last != first {
			points = append(points, Point{float64(last - b.Min.X), float64(y - b.Min.Y)})
		}
	}
	return ConvexHull(points)
}
