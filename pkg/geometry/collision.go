// pkg/geometry/collision.go
package geometry

import "math"

// Project проецирует вершины многоугольника на ось и возвращает интервал
func Project(p Polygon, axis Point) (min, max float64) {
	if len(p.Points) == 0 {
		return 0, 0
	}
	min = axis.Dot(p.Points[0])
	max = min
	for _, pt := range p.Points[1:] {
		d := axis.Dot(pt)
		if d < min {
			min = d
		} else if d > max {
			max = d
		}
	}
	return min, max
}

// IntervalDistance: расстояние между интервалами [minA,maxA] и [minB,maxB].
// Отрицательное или нулевое значение означает перекрытие или касание.
func IntervalDistance(minA, maxA, minB, maxB float64) float64 {
	if minA < minB {
		return minB - maxA
	}
	return minA - maxB
}

// Intersects проверяет пересечение выпуклых многоугольников по теореме
// о разделяющей оси. Сначала быстрый отсев по боксам.
func Intersects(a, b Polygon) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	if !a.Bounds.Overlaps(b.Bounds) {
		return false
	}
	if separatedAlongEdges(a, a, b) {
		return false
	}
	if separatedAlongEdges(b, a, b) {
		return false
	}
	return true
}

// separatedAlongEdges перебирает нормали рёбер src и ищет разделяющую ось для a и b
func separatedAlongEdges(src, a, b Polygon) bool {
	for _, edge := range src.Edges {
		l := edge.Len()
		// Ребро нулевой длины не задаёт ось
		if l == 0 || math.IsNaN(l) {
			continue
		}
		axis := Point{-edge.Y / l, edge.X / l}
		minA, maxA := Project(a, axis)
		minB, maxB := Project(b, axis)
		if IntervalDistance(minA, maxA, minB, maxB) > 0 {
			return true
		}
	}
	return false
}
