package ui

import (
	"image/color"
	"testing"

	"go-grid-defense/internal/defs"
	"go-grid-defense/pkg/geometry"
)

type recordingCanvas struct {
	texts []string
	rects int
}

func (c *recordingCanvas) FillRect(geometry.Rect, color.Color)                     { c.rects++ }
func (c *recordingCanvas) StrokeRect(geometry.Rect, float64, color.Color)          {}
func (c *recordingCanvas) Polygon(geometry.Polygon, color.Color, bool)             {}
func (c *recordingCanvas) Line(geometry.Point, geometry.Point, float64, color.Color) {}
func (c *recordingCanvas) Sprite(string, int, geometry.Point, float64, float64) bool {
	return false
}
func (c *recordingCanvas) Text(s string, _ geometry.Point, _ color.Color) { c.texts = append(c.texts, s) }

func TestToRoman(t *testing.T) {
	tests := map[int]string{0: "", -3: "", 1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1994: "MCMXCIV"}
	for n, want := range tests {
		if got := toRoman(n); got != want {
			t.Errorf("toRoman(%d) = %q, want %q", n, got, want)
		}
	}
}

func testHUD(t *testing.T) (*HUD, *defs.Library) {
	t.Helper()
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	return NewHUD(lib, 800, 600), lib
}

func TestHUDPaletteClick(t *testing.T) {
	h, lib := testHUD(t)
	for i, id := range lib.PieceOrder {
		center := h.palette[i].Rect.Center()
		action, got := h.Click(center)
		if action != ActionPrototype || got != id {
			t.Errorf("palette button %d: got %v %q, want prototype %q", i, action, got, id)
		}
	}
	if action, _ := h.Click(geometry.Pt(10, 10)); action != ActionNone {
		t.Errorf("click outside the panel should do nothing, got %v", action)
	}
	if h.Contains(geometry.Pt(10, 10)) || !h.Contains(geometry.Pt(810, 10)) {
		t.Errorf("Contains() does not match the panel bounds")
	}
}

func TestHUDCommandButtons(t *testing.T) {
	h, _ := testHUD(t)
	tests := []struct {
		name string
		at   geometry.Point
		want Action
	}{
		{"pause", geometry.Pt(h.pause.X, h.pause.Y), ActionPause},
		{"speed", geometry.Pt(h.speed.X, h.speed.Y), ActionSpeed},
		{"next wave", h.nextWave.Rect.Center(), ActionNextWave},
		{"upgrade", h.upgrade.Rect.Center(), ActionUpgrade},
		{"sell", h.sell.Rect.Center(), ActionSell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := h.Click(tt.at); got != tt.want {
				t.Errorf("Click() = %v, want %v", got, tt.want)
			}
		})
	}
	if !h.pause.IsPaused {
		t.Errorf("pause click should toggle the button")
	}
	if h.speed.CurrentState != 1 {
		t.Errorf("speed click should advance the state, got %d", h.speed.CurrentState)
	}
}

func TestHUDDraw(t *testing.T) {
	h, _ := testHUD(t)
	c := &recordingCanvas{}
	h.Draw(c, Info{Money: 42, Lives: 3, MaxLives: 5, Wave: 4, Speed: 4, Over: true, Won: true}, geometry.Pt(0, 0))

	want := map[string]bool{"Money: 42": false, "IV": false, "VICTORY": false}
	for _, s := range c.texts {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for s, seen := range want {
		if !seen {
			t.Errorf("expected text %q to be drawn", s)
		}
	}
	if h.speed.CurrentState != 2 {
		t.Errorf("speed x4 should map to state 2, got %d", h.speed.CurrentState)
	}
}
