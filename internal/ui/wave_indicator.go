// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

// WaveIndicator отображает номер волны римскими цифрами.
type WaveIndicator struct {
	X, Y         float64
	Color        color.Color
	BossColor    color.Color
	OutlineColor color.Color
}

func NewWaveIndicator(x, y float64) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        config.UIColorBlue,
		BossColor:    config.UIColorRed,
		OutlineColor: config.TextLightColor,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw рисует номер с обводкой в один пиксель; каждая десятая волна красная
func (i *WaveIndicator) Draw(canvas interfaces.Canvas, waveNumber int) {
	if waveNumber <= 0 {
		return
	}
	text := toRoman(waveNumber)
	textColor := i.Color
	if waveNumber%10 == 0 {
		textColor = i.BossColor
	}

	x := i.X - float64(len(text))*config.TextCharWidth/2
	for dy := -1.0; dy <= 1; dy++ {
		for dx := -1.0; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			canvas.Text(text, geometry.Pt(x+dx, i.Y+dy), i.OutlineColor)
		}
	}
	canvas.Text(text, geometry.Pt(x, i.Y), textColor)
}
