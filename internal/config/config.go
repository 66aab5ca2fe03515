// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06 // ограничение шага симуляции, секунды
	TicksPerSec  = 60

	MaxProgress        = 100.0 // шкала прогресса улучшения/продажи
	HullAlphaThreshold = 250   // альфа, выше которой пиксель входит в оболочку
	ProjectileScale    = 1.0   // множитель скорости снарядов (пикселей в секунду на единицу скорости)
	InvaderTurnRate    = 10.0  // скорость доворота захватчика к новой цели
	PieceTurnRate      = 8.0   // скорость поворота фигуры к цели
	SellRefundFactor   = 0.75  // доля вложенных денег, возвращаемая при продаже

	TextCharWidth  = 7
	TextLineHeight = 13
	TextOffsetY    = 4
	StrokeWidth    = 2.0

	HUDWidth           = 220  // ширина правой панели
	HUDMargin          = 16   // отступ элементов панели
	PaletteButtonH     = 28   // высота кнопки в палитре фигур
	SpeedButtonOffsetX = 80   // Отступ слева от правого края
	SpeedButtonY       = 30   // Позиция по Y
	SpeedButtonSize    = 12.0 // Полуразмер кнопок скорости и паузы
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PassableColor    = color.RGBA{70, 100, 120, 220}
	ImpassableColor  = color.RGBA{150, 70, 70, 220}
	WallColor        = color.RGBA{45, 45, 60, 255}
	EntryColor       = color.RGBA{0, 255, 0, 255}
	ExitColor        = color.RGBA{255, 0, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDarkColor    = color.RGBA{20, 20, 30, 255}
	InvaderColor     = color.RGBA{220, 60, 60, 255}
	ProjectileColor  = color.RGBA{255, 215, 0, 255}
	HullColor        = color.RGBA{0, 255, 255, 255}
	SelectionColor   = color.RGBA{255, 255, 255, 255}
	ProgressColor    = color.RGBA{70, 130, 180, 220}
	LifeBarColor     = color.RGBA{50, 205, 50, 255}
	PieceStrokeColor = color.RGBA{255, 255, 255, 255}
	ButtonColor      = color.RGBA{200, 200, 210, 255}
	ButtonHoverColor = color.RGBA{160, 160, 175, 255}
	UIColorBlue      = color.RGBA{70, 130, 180, 220}
	UIColorRed       = color.RGBA{220, 60, 60, 220}
	OverlayColor     = color.RGBA{0, 0, 0, 128}

	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},  // x1
		color.RGBA{220, 60, 60, 220},   // x2
		color.RGBA{194, 178, 128, 255}, // x4, песочно-жёлтый
	}
)

// Config: параметры симуляции, загружаемые из YAML
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Waves   WaveConfig    `yaml:"waves"`
	Economy EconomyConfig `yaml:"economy"`
	Sim     SimConfig     `yaml:"sim"`
}

// GridConfig defines the playfield.
type GridConfig struct {
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"`
	Opening  int     `yaml:"opening"` // width of each throughway, in cells
}

// WaveConfig defines the wave director.
type WaveConfig struct {
	BatchSize        int     `yaml:"batch_size"`
	MaxInvaderLevel  int     `yaml:"max_invader_level"`
	SpawnInterval    float64 `yaml:"spawn_interval"`     // seconds between releases inside a wave
	AutoWaveInterval float64 `yaml:"auto_wave_interval"` // 0 disables automatic waves
}

// EconomyConfig defines starting player counters.
type EconomyConfig struct {
	StartingMoney int `yaml:"starting_money"`
	StartingLives int `yaml:"starting_lives"`
}

// SimConfig defines the tick loop.
type SimConfig struct {
	Seed          int64   `yaml:"seed"` // 0 = time based
	MaxDeltaTime  float64 `yaml:"max_delta_time"`
	HullThreshold uint8   `yaml:"hull_threshold"`
	Debug         bool    `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Cols:     24,
			Rows:     18,
			CellSize: 32,
			Opening:  4,
		},
		Waves: WaveConfig{
			BatchSize:        10,
			MaxInvaderLevel:  20,
			SpawnInterval:    0.8,
			AutoWaveInterval: 0,
		},
		Economy: EconomyConfig{
			StartingMoney: 150,
			StartingLives: 20,
		},
		Sim: SimConfig{
			Seed:          0,
			MaxDeltaTime:  MaxDeltaTime,
			HullThreshold: HullAlphaThreshold,
		},
	}
}
