// internal/ui/hud.go
package ui

import (
	"fmt"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/geometry"
)

// Action: команда, выбранная кликом по панели
type Action int

const (
	ActionNone Action = iota
	ActionPrototype
	ActionSpeed
	ActionPause
	ActionNextWave
	ActionUpgrade
	ActionSell
)

// Info: то, что панель показывает в текущем кадре
type Info struct {
	Money     int
	Lives     int
	MaxLives  int
	Wave      int
	Active    int
	Queued    int
	Prototype string
	Selected  string // описание выбранной фигуры, пусто если нет
	Speed     int
	Paused    bool
	Over      bool
	Won       bool
}

// HUD: правая панель: палитра фигур, индикаторы и команды
type HUD struct {
	Bounds geometry.Rect

	palette    []*Button
	paletteIDs []string
	nextWave   *Button
	upgrade    *Button
	sell       *Button
	speed      *SpeedButton
	pause      *PauseButton
	wave       *WaveIndicator
	health     *PlayerHealthIndicator
	statsAt    geometry.Point
}

// NewHUD раскладывает панель шириной config.HUDWidth начиная с x
func NewHUD(lib *defs.Library, x, height float64) *HUD {
	m := float64(config.HUDMargin)
	w := float64(config.HUDWidth) - 2*m
	h := &HUD{Bounds: geometry.RectAt(x, 0, config.HUDWidth, height)}

	h.pause = NewPauseButton(x+m+config.SpeedButtonSize, config.SpeedButtonY, config.SpeedButtonSize, config.UIColorBlue, config.UIColorRed)
	h.speed = NewSpeedButton(x+config.HUDWidth-config.SpeedButtonOffsetX+config.SpeedButtonSize*2, config.SpeedButtonY, config.SpeedButtonSize, config.SpeedButtonColors)
	h.wave = NewWaveIndicator(x+config.HUDWidth/2, config.SpeedButtonY-config.TextLineHeight/2)

	y := config.SpeedButtonY*2 + m
	h.health = NewPlayerHealthIndicator(x+m, y)
	y += 3*(HealthCellSize+HealthCellSpacing) + config.TextLineHeight + m

	h.statsAt = geometry.Pt(x+m, y)
	y += 3*config.TextLineHeight + m

	for _, id := range lib.PieceOrder {
		def := lib.Pieces[id]
		name := def.Name
		if name == "" {
			name = id
		}
		h.palette = append(h.palette, NewButton(geometry.RectAt(x+m, y, w, config.PaletteButtonH), fmt.Sprintf("%s $%d", name, def.Cost)))
		h.paletteIDs = append(h.paletteIDs, id)
		y += config.PaletteButtonH + 4
	}
	y += m
	h.upgrade = NewButton(geometry.RectAt(x+m, y, w/2-2, config.PaletteButtonH), "Upgrade")
	h.sell = NewButton(geometry.RectAt(x+m+w/2+2, y, w/2-2, config.PaletteButtonH), "Sell")
	y += config.PaletteButtonH + 4
	h.nextWave = NewButton(geometry.RectAt(x+m, y, w, config.PaletteButtonH), "Next wave")
	return h
}

// Contains: лежит ли точка на панели
func (h *HUD) Contains(p geometry.Point) bool {
	return h.Bounds.Contains(p)
}

// Click возвращает команду под точкой и, для палитры, id фигуры
func (h *HUD) Click(p geometry.Point) (Action, string) {
	for i, b := range h.palette {
		if b.IsClicked(p) {
			return ActionPrototype, h.paletteIDs[i]
		}
	}
	switch {
	case h.pause.IsClicked(p):
		h.pause.TogglePause()
		return ActionPause, ""
	case h.speed.IsClicked(p):
		h.speed.ToggleState()
		return ActionSpeed, ""
	case h.nextWave.IsClicked(p):
		return ActionNextWave, ""
	case h.upgrade.IsClicked(p):
		return ActionUpgrade, ""
	case h.sell.IsClicked(p):
		return ActionSell, ""
	}
	return ActionNone, ""
}

func (h *HUD) Draw(canvas interfaces.Canvas, info Info, cursor geometry.Point) {
	canvas.FillRect(h.Bounds, config.BackgroundColor)

	h.pause.SetPaused(info.Paused)
	h.pause.Draw(canvas)
	h.speed.SetState(info.Speed)
	h.speed.Draw(canvas)
	h.wave.Draw(canvas, info.Wave)
	h.health.Draw(canvas, info.Lives, info.MaxLives)

	lines := []string{
		fmt.Sprintf("Money: %d", info.Money),
		fmt.Sprintf("Invaders: %d (+%d)", info.Active, info.Queued),
		info.Selected,
	}
	for i, line := range lines {
		canvas.Text(line, h.statsAt.Add(geometry.Pt(0, float64(i)*config.TextLineHeight)), config.TextLightColor)
	}

	for i, b := range h.palette {
		b.Active = h.paletteIDs[i] == info.Prototype
		b.Draw(canvas, cursor)
	}
	if info.Selected != "" {
		h.upgrade.Draw(canvas, cursor)
		h.sell.Draw(canvas, cursor)
	}
	h.nextWave.Draw(canvas, cursor)

	if info.Over {
		msg := "GAME OVER"
		if info.Won {
			msg = "VICTORY"
		}
		canvas.Text(msg, geometry.Pt(h.Bounds.MinX+config.HUDMargin, h.Bounds.MaxY-2*config.TextLineHeight), config.UIColorRed)
	}
}
