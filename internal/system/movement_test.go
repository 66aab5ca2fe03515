package system

import (
	"math"
	"testing"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

func TestInvaderWalksColumnAndMakesIt(t *testing.T) {
	const (
		speed = 10.0
		dt    = 0.1
	)
	w := newWorld(t, columnGrid())
	id := w.spawnWalker(speed)

	var visited []int
	madeItTick := -1
	for tick := 0; tick < 200; tick++ {
		inv, ok := w.ecs.Invaders[id]
		if !ok {
			break
		}
		if inv.Current != grid.NoCell && (len(visited) == 0 || visited[len(visited)-1] != inv.Current) {
			visited = append(visited, inv.Current)
		}
		w.movement.Update(dt)
		if _, ok := w.ecs.Invaders[id]; !ok {
			madeItTick = tick + 1
		}
	}

	if madeItTick < 0 {
		t.Fatalf("invader never left the grid")
	}
	want := []int{w.grid.Index(2, 0), w.grid.Index(2, 1), w.grid.Index(2, 2), w.grid.Index(2, 3), w.grid.Index(2, 4)}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("step %d: visited %d, want %d", i, visited[i], want[i])
		}
	}
	// клетка подхода ко входу, шаги по столбцу и половина клетки выхода
	size := w.grid.CellSize
	wantTicks := (size + float64(len(want)-1)*size + size/2) / speed / dt
	if math.Abs(float64(madeItTick)-wantTicks) > 1+1e-9 {
		t.Errorf("made it after %d ticks, want %.1f ± 1", madeItTick, wantTicks)
	}
	if w.waves.Wave.MadeIt != 1 {
		t.Errorf("MadeIt = %d, want 1", w.waves.Wave.MadeIt)
	}
	if w.player.Lives != 2 {
		t.Errorf("lives = %d, want 2", w.player.Lives)
	}
	if !w.saw(event.InvaderMadeIt) {
		t.Errorf("InvaderMadeIt event not dispatched")
	}
}

func TestInvaderVelocityTracksMovement(t *testing.T) {
	w := newWorld(t, columnGrid())
	id := w.spawnWalker(10)
	w.movement.Update(0.1)
	inv := w.ecs.Invaders[id]
	if math.Abs(inv.Velocity.Len()-10) > 1e-9 || inv.Velocity.Y <= 0 {
		t.Errorf("velocity = %v, want 10 px/s downward", inv.Velocity)
	}
}

// onCell ставит захватчика внутрь клетки (2,2), идущего к её якорю
func onCell(w *world, flags component.InvaderFlags) (types.EntityID, *component.Invader) {
	id := w.ecs.NewEntity()
	inv := &component.Invader{
		DefID:    "walker",
		Key:      grid.Vertical,
		Life:     10,
		MaxLife:  10,
		Speed:    10,
		Bounty:   5,
		Flags:    flags,
		Position: geometry.Pt(25, 21),
		Current:  w.grid.Index(2, 1),
		Target:   w.grid.Index(2, 2),
	}
	w.ecs.Invaders[id] = inv
	return id, inv
}

func TestGroundEffects(t *testing.T) {
	tests := []struct {
		name     string
		piece    string
		flags    component.InvaderFlags
		wantY    float64
		wantLife float64
	}{
		{"tar slows", "tar", 0, 21.5, 10},
		{"slow resistant ignores tar", "tar", component.SlowResistant, 22, 10},
		{"fire drains", "fire", 0, 22, 9},
		{"fire resistant ignores drain", "fire", component.FireResistant, 22, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t, columnGrid())
			placeOrFail(t, w, 2, 2, tt.piece)
			_, inv := onCell(w, tt.flags)
			w.movement.Update(0.1)
			if math.Abs(inv.Position.Y-tt.wantY) > 1e-9 {
				t.Errorf("y = %v, want %v", inv.Position.Y, tt.wantY)
			}
			if math.Abs(inv.Life-tt.wantLife) > 1e-9 {
				t.Errorf("life = %v, want %v", inv.Life, tt.wantLife)
			}
		})
	}
}

func TestDeadInvaderPaysBounty(t *testing.T) {
	w := newWorld(t, columnGrid())
	id := w.spawnWalker(10)
	w.ecs.Invaders[id].Life = 0

	w.movement.Update(0.1)
	if _, ok := w.ecs.Invaders[id]; ok {
		t.Fatalf("dead invader should be removed")
	}
	if w.player.Money != 105 {
		t.Errorf("expected bounty of 5, money = %d", w.player.Money)
	}
	if w.waves.Wave.Destroyed != 1 || w.waves.Wave.Active != 0 {
		t.Errorf("wave counters not updated: %+v", w.waves.Wave)
	}
	if !w.saw(event.InvaderDestroyed) {
		t.Errorf("InvaderDestroyed event not dispatched")
	}
	if w.player.Lives != 3 {
		t.Errorf("destroyed invader must not cost a life")
	}
}

func TestInvaderReroutesAfterPlacement(t *testing.T) {
	w := newWorld(t, columnGrid())
	id := w.spawnWalker(10)
	// Дойти до клетки входа
	for i := 0; i < 12; i++ {
		w.movement.Update(0.1)
	}
	inv := w.ecs.Invaders[id]
	if inv.Current != w.grid.Index(2, 0) {
		t.Fatalf("expected invader at the entrance, current = %d", inv.Current)
	}
	if result, _ := w.placement.TryPlace(2, 2, "block"); !result.Accepted {
		t.Fatalf("block should leave a detour, got %v", result.Reason)
	}
	for i := 0; i < 200; i++ {
		if _, ok := w.ecs.Invaders[id]; !ok {
			break
		}
		if inv.Current == w.grid.Index(2, 2) {
			t.Fatalf("invader walked through a blocked cell")
		}
		w.movement.Update(0.1)
	}
	if w.waves.Wave.MadeIt != 1 {
		t.Errorf("invader should still reach the exit, MadeIt = %d", w.waves.Wave.MadeIt)
	}
}
