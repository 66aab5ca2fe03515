// internal/system/intercept.go
package system

import (
	"math"

	"go-grid-defense/pkg/geometry"
)

const interceptEpsilon = 1e-9

// ComputeInterceptDirection ищет единичное направление выстрела снарядом скорости speed
// из shooter по цели в target, движущейся с постоянной скоростью targetVel.
// Решается a·t² - 2b·t - c = 0, где a = speed² - |v|², b = <p, v>, c = |p|²,
// p: положение цели относительно стрелка. Берётся наименьший неотрицательный корень.
// Если корня нет, возвращается нулевой вектор и false.
func ComputeInterceptDirection(shooter geometry.Point, speed float64, target, targetVel geometry.Point) (geometry.Point, bool) {
	rel := target.Sub(shooter)
	c := rel.LenSq()
	if c == 0 {
		return geometry.Point{}, false
	}
	if speed <= 0 {
		return geometry.Point{}, false
	}
	a := speed*speed - targetVel.LenSq()
	b := rel.Dot(targetVel)

	var t float64
	if math.Abs(a) < interceptEpsilon {
		// Скорости равны: -2b·t - c = 0
		if b >= 0 {
			return geometry.Point{}, false
		}
		t = -c / (2 * b)
	} else {
		disc := b*b + a*c
		if disc < 0 {
			return geometry.Point{}, false
		}
		sq := math.Sqrt(disc)
		t1 := (b - sq) / a
		t2 := (b + sq) / a
		t = smallestNonNegative(t1, t2)
		if t < 0 {
			return geometry.Point{}, false
		}
	}

	aim := rel.Add(targetVel.Scale(t))
	if aim.LenSq() == 0 {
		return geometry.Point{}, false
	}
	return aim.Normalize(), true
}

func smallestNonNegative(a, b float64) float64 {
	if a > b {
		a, b = b, a
	}
	if a >= 0 {
		return a
	}
	if b >= 0 {
		return b
	}
	return -1
}
