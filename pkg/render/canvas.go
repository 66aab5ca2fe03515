// pkg/render/canvas.go
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-grid-defense/internal/assets"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

var _ interfaces.Canvas = (*Canvas)(nil)

// sheet: лента кадров, загруженная в GPU
type sheet struct {
	image  *ebiten.Image
	source *assets.FramedImage
}

// Canvas рисует примитивы ядра на ebiten.Image со сдвигом Offset
type Canvas struct {
	Offset geometry.Point

	target    *ebiten.Image
	fillImg   *ebiten.Image
	sprites   map[string]*sheet
	fontFace  font.Face
	vertices  []ebiten.Vertex
	indices   []uint16
	antiAlias bool
}

// NewCanvas загружает все изображения менеджера как ebiten-текстуры
func NewCanvas(images *assets.ImageManager) *Canvas {
	fillImg := ebiten.NewImage(3, 3)
	fillImg.Fill(color.White)

	c := &Canvas{
		fillImg:   fillImg,
		sprites:   make(map[string]*sheet),
		fontFace:  basicfont.Face7x13,
		vertices:  make([]ebiten.Vertex, 0, 64),
		indices:   make([]uint16, 0, 96),
		antiAlias: true,
	}
	if images != nil {
		for _, key := range images.Keys() {
			fi, _ := images.Image(key)
			c.sprites[key] = &sheet{image: ebiten.NewImageFromImage(fi.Image), source: fi}
		}
	}
	return c
}

// Begin задаёт цель для следующих вызовов
func (c *Canvas) Begin(target *ebiten.Image) {
	c.target = target
}

func (c *Canvas) FillRect(r geometry.Rect, clr color.Color) {
	x, y := c.at(geometry.Pt(r.MinX, r.MinY))
	vector.DrawFilledRect(c.target, x, y, float32(r.Width()), float32(r.Height()), clr, false)
}

func (c *Canvas) StrokeRect(r geometry.Rect, width float64, clr color.Color) {
	x, y := c.at(geometry.Pt(r.MinX, r.MinY))
	vector.StrokeRect(c.target, x, y, float32(r.Width()), float32(r.Height()), float32(width), clr, c.antiAlias)
}

func (c *Canvas) Line(a, b geometry.Point, width float64, clr color.Color) {
	x0, y0 := c.at(a)
	x1, y1 := c.at(b)
	vector.StrokeLine(c.target, x0, y0, x1, y1, float32(width), clr, c.antiAlias)
}

// Polygon рисует многоугольник путём из вершин, как контур или заливку
func (c *Canvas) Polygon(p geometry.Polygon, clr color.Color, filled bool) {
	if len(p.Points) < 2 {
		return
	}
	path := vector.Path{}
	for i, pt := range p.Points {
		x, y := c.at(pt)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	if filled {
		c.vertices, c.indices = path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	} else {
		c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
			Width: 1,
		})
	}
	r, g, b, a := vertexColor(clr)
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = r
		c.vertices[i].ColorG = g
		c.vertices[i].ColorB = b
		c.vertices[i].ColorA = a
	}
	c.target.DrawTriangles(c.vertices, c.indices, c.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: c.antiAlias,
	})
}

// Sprite рисует кадр ленты с центром в center, повёрнутый на angle
func (c *Canvas) Sprite(key string, frame int, center geometry.Point, angle, scale float64) bool {
	s, ok := c.sprites[key]
	if !ok || key == "" {
		return false
	}
	rect := s.source.Frame(frame)
	sub := s.image.SubImage(rect).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(s.source.FrameW)/2, -float64(s.source.FrameH)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(center.X+c.Offset.X, center.Y+c.Offset.Y)
	op.Filter = ebiten.FilterLinear
	c.target.DrawImage(sub, op)
	return true
}

// Text пишет строку; at задаёт левый верхний угол
func (c *Canvas) Text(s string, at geometry.Point, clr color.Color) {
	x, y := c.at(at)
	ascent := c.fontFace.Metrics().Ascent.Ceil()
	text.Draw(c.target, s, c.fontFace, int(x), int(y)+ascent, clr)
}

// TextWidth: ширина строки в пикселях
func (c *Canvas) TextWidth(s string) int {
	return font.MeasureString(c.fontFace, s).Ceil()
}

func (c *Canvas) at(p geometry.Point) (float32, float32) {
	return float32(p.X + c.Offset.X), float32(p.Y + c.Offset.Y)
}

// ScreenToWorld переводит координаты экрана в координаты сетки
func (c *Canvas) ScreenToWorld(x, y int) geometry.Point {
	return geometry.Pt(float64(x)-c.Offset.X, float64(y)-c.Offset.Y)
}

// Bounds: размер текущей цели
func (c *Canvas) Bounds() image.Rectangle {
	if c.target == nil {
		return image.Rectangle{}
	}
	return c.target.Bounds()
}
