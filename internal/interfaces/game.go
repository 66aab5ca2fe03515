package interfaces

import (
	"image/color"

	"go-grid-defense/pkg/geometry"
)

// InputSnapshot: состояние ввода за один тик
type InputSnapshot struct {
	Cursor         geometry.Point // в координатах сетки, пиксели
	SelectPressed  bool
	SelectReleased bool
	Sell           bool
	Upgrade        bool
	ClearSelection bool
	NextWave       bool
	Prototype      string // выбранный для постройки тип фигуры, пусто: только выбор
}

// FramedImage: данные изображения, нужные ядру
type FramedImage struct {
	Hull       geometry.Polygon // выпуклая оболочка первого кадра
	FrameSize  geometry.Point   // ширина и высота одного кадра
	FrameCount int
}

// ResourceProvider отдаёт сведения об изображениях по ключу
type ResourceProvider interface {
	GetFramedImage(key string) (FramedImage, bool)
	GetSize(key string) (w, h int, ok bool)
}

// Canvas: контракт примитивов отрисовки
type Canvas interface {
	FillRect(r geometry.Rect, c color.Color)
	StrokeRect(r geometry.Rect, width float64, c color.Color)
	Polygon(p geometry.Polygon, c color.Color, filled bool)
	Line(a, b geometry.Point, width float64, c color.Color)
	// Sprite рисует кадр изображения с центром в center; false, если ключ неизвестен
	Sprite(key string, frame int, center geometry.Point, angle, scale float64) bool
	Text(s string, at geometry.Point, c color.Color)
}
