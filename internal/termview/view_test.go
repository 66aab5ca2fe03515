package termview

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
)

func newTestView(t *testing.T) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	cfg := config.Default()
	cfg.Grid = config.GridConfig{Cols: 9, Rows: 9, CellSize: 32, Opening: 1}
	cfg.Economy = config.EconomyConfig{StartingMoney: 100, StartingLives: 10}
	cfg.Sim.Seed = 1
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatal(err)
	}
	g := game.NewGame(cfg, lib, nil, log.New(io.Discard))
	return New(screen, g), screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func readLine(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawShowsGridAndStatus(t *testing.T) {
	v, screen := newTestView(t)
	v.Draw()

	if r, _, style, _ := screen.GetContent(0, 0); r != ' ' || style != styleWall {
		t.Errorf("corner should be drawn as wall, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(0, 4); r != '>' {
		t.Errorf("left entrance glyph = %q, want '>'", r)
	}
	if r, _, _, _ := screen.GetContent(8*cellWidth, 4); r != '<' {
		t.Errorf("right exit glyph = %q, want '<'", r)
	}
	if r, _, _, _ := screen.GetContent(2, 2); r != '.' {
		t.Errorf("empty cell glyph = %q, want '.'", r)
	}
	status := readLine(screen, 10, 40)
	if !strings.HasPrefix(status, "$100  lives 10") {
		t.Errorf("status line = %q", status)
	}
}

func TestEnterPlacesAndSelects(t *testing.T) {
	v, screen := newTestView(t)
	v.HandleKey(key(tcell.KeyLeft))
	v.HandleKey(key(tcell.KeyUp))
	if col, row := v.Cursor(); col != 3 || row != 3 {
		t.Fatalf("cursor at (%d,%d), want (3,3)", col, row)
	}
	if !v.HandleKey(key(tcell.KeyEnter)) {
		t.Fatal("Enter must not quit")
	}
	if v.game.Player.Money != 95 {
		t.Errorf("money = %d, want 95 after placing a wall", v.game.Player.Money)
	}
	if v.game.Selected == 0 {
		t.Fatalf("placed piece should be selected")
	}
	v.Draw()
	if r, _, _, _ := screen.GetContent(3*cellWidth+1, 3); r != 'W' {
		t.Errorf("wall glyph = %q, want 'W'", r)
	}

	v.HandleKey(key(tcell.KeyEscape))
	if v.game.Selected != 0 {
		t.Errorf("Escape should clear the selection")
	}
}

func TestCursorStaysOnGrid(t *testing.T) {
	v, _ := newTestView(t)
	for i := 0; i < 20; i++ {
		v.HandleKey(key(tcell.KeyRight))
		v.HandleKey(key(tcell.KeyDown))
	}
	if col, row := v.Cursor(); col != 8 || row != 8 {
		t.Errorf("cursor at (%d,%d), want clamped (8,8)", col, row)
	}
}

func TestPrototypeKeys(t *testing.T) {
	v, _ := newTestView(t)
	v.HandleKey(key(tcell.KeyTab))
	if v.game.Prototype != "gun" {
		t.Errorf("Tab should advance to gun, got %q", v.game.Prototype)
	}
	v.HandleKey(runeKey('4'))
	if v.game.Prototype != "tesla" {
		t.Errorf("key 4 should pick tesla, got %q", v.game.Prototype)
	}
	v.HandleKey(runeKey('9'))
	if v.game.Prototype != "tesla" {
		t.Errorf("key beyond the palette must be ignored, got %q", v.game.Prototype)
	}
}

func TestCommandKeys(t *testing.T) {
	v, _ := newTestView(t)
	v.HandleKey(runeKey('n'))
	if v.game.Status().Waves != 1 {
		t.Errorf("n should queue a wave")
	}
	v.HandleKey(runeKey('p'))
	if !v.game.IsPaused() {
		t.Errorf("p should pause")
	}
	v.HandleKey(runeKey('+'))
	if v.game.SpeedMultiplier != 2 {
		t.Errorf("+ should double the speed")
	}
	if v.HandleKey(runeKey('q')) {
		t.Errorf("q should quit")
	}
	if v.HandleKey(key(tcell.KeyCtrlC)) {
		t.Errorf("Ctrl-C should quit")
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	v, screen := newTestView(t)
	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	v, _ := newTestView(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := v.Run(ctx); err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
