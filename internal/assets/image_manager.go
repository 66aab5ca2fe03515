package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/image/bmp"

	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

// FramedImage: изображение-лента из FrameCount кадров одинаковой ширины
type FramedImage struct {
	Image      image.Image
	Hull       geometry.Polygon // оболочка первого кадра, строится один раз
	FrameW     int
	FrameH     int
	FrameCount int
}

// Frame возвращает прямоугольник кадра i внутри ленты
func (f *FramedImage) Frame(i int) image.Rectangle {
	if f.FrameCount > 0 {
		i %= f.FrameCount
	}
	b := f.Image.Bounds()
	x := b.Min.X + i*f.FrameW
	return image.Rect(x, b.Min.Y, x+f.FrameW, b.Min.Y+f.FrameH)
}

// ImageManager управляет загрузкой и кэшированием изображений и их оболочек.
type ImageManager struct {
	images    map[string]*FramedImage
	threshold uint8
	logger    *log.Logger
}

var _ interfaces.ResourceProvider = (*ImageManager)(nil)

// NewImageManager создает менеджер; threshold задаёт порог альфы для оболочек.
func NewImageManager(threshold uint8, logger *log.Logger) *ImageManager {
	return &ImageManager{
		images:    make(map[string]*FramedImage),
		threshold: threshold,
		logger:    logger,
	}
}

// Register добавляет изображение из памяти.
func (m *ImageManager) Register(key string, img image.Image, frames int) error {
	if img == nil {
		return fmt.Errorf("image %q is nil", key)
	}
	if frames < 1 {
		frames = 1
	}
	b := img.Bounds()
	if b.Dx()%frames != 0 {
		return fmt.Errorf("image %q: width %d is not divisible into %d frames", key, b.Dx(), frames)
	}
	fi := &FramedImage{
		Image:      img,
		FrameW:     b.Dx() / frames,
		FrameH:     b.Dy(),
		FrameCount: frames,
	}
	fi.Hull = geometry.HullFromAlpha(subImage(img, fi.Frame(0)), m.threshold)
	m.images[key] = fi
	return nil
}

// Load читает PNG или BMP с диска и регистрирует его.
func (m *ImageManager) Load(key, path string, frames int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(file)
	case ".bmp":
		img, err = bmp.Decode(file)
	default:
		return fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if err := m.Register(key, img, frames); err != nil {
		return err
	}
	if m.logger != nil {
		m.logger.Debug("image loaded", "key", key, "path", path, "frames", frames)
	}
	return nil
}

// LoadDir загружает все PNG и BMP из каталога. Ключ равен имени файла без расширения.
// Суффикс "_N" перед расширением задаёт число кадров, например tesla_4.png.
func (m *ImageManager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read image dir: %w", err)
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".png" && ext != ".bmp") {
			continue
		}
		key, frames := splitFrames(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if err := m.Load(key, filepath.Join(dir, e.Name()), frames); err != nil {
			if m.logger != nil {
				m.logger.Warn("skipping image", "file", e.Name(), "err", err)
			}
		}
	}
	return nil
}

func splitFrames(name string) (string, int) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return name, 1
	}
	var n int
	if _, err := fmt.Sscanf(name[i+1:], "%d", &n); err != nil || n < 1 {
		return name, 1
	}
	return name[:i], n
}

// Image возвращает зарегистрированное изображение
func (m *ImageManager) Image(key string) (*FramedImage, bool) {
	fi, ok := m.images[key]
	return fi, ok
}

// Keys возвращает ключи всех изображений по алфавиту
func (m *ImageManager) Keys() []string {
	keys := make([]string, 0, len(m.images))
	for k := range m.images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *ImageManager) GetFramedImage(key string) (interfaces.FramedImage, bool) {
	fi, ok := m.images[key]
	if !ok {
		return interfaces.FramedImage{}, false
	}
	return interfaces.FramedImage{
		Hull:       fi.Hull,
		FrameSize:  geometry.Pt(float64(fi.FrameW), float64(fi.FrameH)),
		FrameCount: fi.FrameCount,
	}, true
}

func (m *ImageManager) GetSize(key string) (int, int, bool) {
	fi, ok := m.images[key]
	if !ok {
		return 0, 0, false
	}
	return fi.FrameW, fi.FrameH, true
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	dst := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, img.At(x, y))
		}
	}
	return dst
}

// NewDefaultImages строит процедурные спрайты для запуска без файлов ресурсов.
// Размеры заданы в долях клетки cell.
func NewDefaultImages(cell int, threshold uint8, logger *log.Logger) *ImageManager {
	m := NewImageManager(threshold, logger)
	white := color.NRGBA{255, 255, 255, 255}
	sprites := []struct {
		key    string
		img    image.Image
		frames int
	}{
		{"wall", box(cell, cell, 1, white), 1},
		{"gun", turret(2*cell, white), 1},
		{"missile_base", turret(2*cell, white), 1},
		{"tesla", discharge(2*cell, 4, white), 4},
		{"bolt", box(cell/4+1, cell/8+1, 0, white), 1},
		{"missile", triangle(cell/2, cell/4+1, white), 1},
		{"crawler", disc(cell*3/4, white), 1},
		{"runner", triangle(cell*3/4, cell/2, white), 1},
		{"brute", box(cell*3/4, cell*3/4, 0, white), 1},
	}
	for _, s := range sprites {
		if err := m.Register(s.key, s.img, s.frames); err != nil && logger != nil {
			logger.Error("failed to build sprite", "key", s.key, "err", err)
		}
	}
	return m
}

func box(w, h, inset int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := inset; y < h-inset; y++ {
		for x := inset; x < w-inset; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func disc(size int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

// triangle смотрит вправо, вдоль нулевого угла
func triangle(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		half := float64(h) / 2 * (1 - float64(x)/float64(w))
		for y := 0; y < h; y++ {
			if math.Abs(float64(y)+0.5-float64(h)/2) <= half {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

// turret: основание с дулом вправо
func turret(size int, c color.Color) *image.NRGBA {
	img := disc(size*3/4, c)
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	off := (size - img.Bounds().Dx()) / 2
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			out.Set(x+off, y+off, img.At(x, y))
		}
	}
	for y := size/2 - size/16; y <= size/2+size/16; y++ {
		for x := size / 2; x < size; x++ {
			out.Set(x, y, c)
		}
	}
	return out
}

// discharge: лента из frames кадров с расширяющимся кольцом
func discharge(size, frames int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size*frames, size))
	center := float64(size) / 2
	for f := 0; f < frames; f++ {
		radius := center * float64(f+1) / float64(frames)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dx, dy := float64(x)+0.5-center, float64(y)+0.5-center
				d := math.Sqrt(dx*dx + dy*dy)
				if d <= radius && d >= radius-2 || d <= center/4 {
					img.Set(f*size+x, y, c)
				}
			}
		}
	}
	return img
}
