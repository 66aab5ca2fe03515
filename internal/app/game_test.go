package app

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/internal/storage"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Grid = config.GridConfig{Cols: 9, Rows: 9, CellSize: 32, Opening: 1}
	cfg.Waves = config.WaveConfig{BatchSize: 2, MaxInvaderLevel: 2, SpawnInterval: 0.5}
	cfg.Economy = config.EconomyConfig{StartingMoney: 100, StartingLives: 10}
	cfg.Sim.Seed = 1
	return cfg
}

func newTestGame(t *testing.T, cfg config.Config) *Game {
	t.Helper()
	lib, err := defs.DefaultLibrary()
	if err != nil {
		t.Fatalf("DefaultLibrary() failed: %v", err)
	}
	return NewGame(cfg, lib, nil, log.New(io.Discard))
}

// cellCenter: центр клетки в пикселях
func cellCenter(g *Game, col, row int) geometry.Point {
	return g.Grid.Anchor(g.Grid.Index(col, row))
}

func runUntilOver(g *Game, maxTicks int) {
	for i := 0; i < maxTicks && !g.IsOver(); i++ {
		g.Update(0.05)
	}
}

func TestNewGameWiring(t *testing.T) {
	g := newTestGame(t, testConfig())
	if g.Grid.Cols != 9 || g.Grid.Rows != 9 {
		t.Fatalf("grid %dx%d, want 9x9", g.Grid.Cols, g.Grid.Rows)
	}
	if g.Prototype != "wall" {
		t.Errorf("default prototype = %q, want first library piece", g.Prototype)
	}
	st := g.Status()
	if st.Money != 100 || st.Lives != 10 || st.Level != 1 || st.Over {
		t.Errorf("unexpected initial status %+v", st)
	}
	if g.Grid.Distance(g.Grid.Index(0, 4), grid.Horizontal) != 8 {
		t.Errorf("horizontal path should cross the grid")
	}
}

func TestUpdateClampsDeltaAndSpeed(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Update(1.0)
	if math.Abs(g.GetGameTime()-0.06) > 1e-12 {
		t.Errorf("game time = %v, want clamped 0.06", g.GetGameTime())
	}
	g.HandleSpeedClick()
	if g.SpeedMultiplier != 2 {
		t.Fatalf("speed = %d, want 2", g.SpeedMultiplier)
	}
	g.Update(0.01)
	if math.Abs(g.GetGameTime()-0.08) > 1e-12 {
		t.Errorf("game time = %v, want 0.08 after double step", g.GetGameTime())
	}
	g.HandleSpeedClick()
	g.HandleSpeedClick()
	if g.SpeedMultiplier != 1 {
		t.Errorf("speed should cycle back to 1, got %d", g.SpeedMultiplier)
	}

	g.HandlePauseClick()
	before := g.GetGameTime()
	g.Update(0.05)
	if g.GetGameTime() != before || !g.Status().Paused {
		t.Errorf("paused game must not advance")
	}
	g.Update(-1)
	if g.GetGameTime() != before {
		t.Errorf("negative delta must be ignored")
	}
}

func TestGameOverWhenLivesRunOut(t *testing.T) {
	cfg := testConfig()
	cfg.Economy.StartingLives = 1
	g := newTestGame(t, cfg)

	var overEvents []event.GameOverData
	g.EventDispatcher.Subscribe(event.GameOver, event.ListenerFunc(func(e event.Event) {
		overEvents = append(overEvents, e.Data.(event.GameOverData))
	}))

	if n := g.NextWave(); n != 2 {
		t.Fatalf("NextWave() queued %d, want 2", n)
	}
	runUntilOver(g, 5000)

	if !g.IsOver() {
		t.Fatalf("game should end once lives reach 0")
	}
	if st := g.Status(); st.Won || st.Lives != 0 {
		t.Errorf("expected a loss with 0 lives, got %+v", st)
	}
	if len(overEvents) != 1 || overEvents[0].Won {
		t.Errorf("expected exactly one GameOver(lost) event, got %v", overEvents)
	}

	frozen := g.GetGameTime()
	g.Update(0.05)
	if g.GetGameTime() != frozen {
		t.Errorf("updates must freeze after game over")
	}
	if g.NextWave() != 0 {
		t.Errorf("no waves after game over")
	}
}

func TestGameWonAfterLastWave(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.NextWave()
	g.NextWave()
	runUntilOver(g, 10000)

	st := g.Status()
	if !st.Over || !st.Won {
		t.Fatalf("game should be won after the last wave drains, got %+v", st)
	}
	if st.MadeIt+st.Destroyed != 4 {
		t.Errorf("all 4 invaders should be accounted for, got %+v", st)
	}
	if st.Lives != 10-st.MadeIt {
		t.Errorf("each invader that made it costs a life: %+v", st)
	}
}

func click(g *Game, p geometry.Point) {
	g.ApplyInput(interfaces.InputSnapshot{Cursor: p, SelectPressed: true, SelectReleased: true})
}

func TestApplyInputPlaceSelectSell(t *testing.T) {
	g := newTestGame(t, testConfig())
	at := cellCenter(g, 2, 2)

	click(g, at)
	id := g.Selected
	if id == types.None {
		t.Fatalf("click on an empty cell should place the prototype")
	}
	if g.Player.Money != 95 {
		t.Errorf("wall cost not charged, money = %d", g.Player.Money)
	}

	g.ApplyInput(interfaces.InputSnapshot{ClearSelection: true})
	if g.Selected != types.None {
		t.Fatalf("selection should be cleared")
	}
	click(g, at)
	if g.Selected != id || len(g.ECS.Pieces) != 1 {
		t.Fatalf("click on a piece should select it, not place another")
	}

	// Нажатие и отпускание над разными клетками не считается кликом
	g.ApplyInput(interfaces.InputSnapshot{Cursor: cellCenter(g, 3, 3), SelectPressed: true})
	g.ApplyInput(interfaces.InputSnapshot{Cursor: cellCenter(g, 5, 5), SelectReleased: true})
	if len(g.ECS.Pieces) != 1 {
		t.Errorf("drag must not place pieces")
	}

	g.ApplyInput(interfaces.InputSnapshot{Sell: true})
	if g.ECS.Pieces[id].State != component.PieceSelling {
		t.Fatalf("sell command should start selling")
	}
	for i := 0; i < 20; i++ {
		g.Update(0.05)
	}
	if _, ok := g.ECS.Pieces[id]; ok {
		t.Fatalf("sold piece should be gone")
	}
	if g.Selected != types.None {
		t.Errorf("selection should drop when the piece is sold")
	}
	// 95 + floor(5 × 0.75)
	if g.Player.Money != 98 {
		t.Errorf("money after refund = %d, want 98", g.Player.Money)
	}
}

func TestApplyInputPrototypeAndNextWave(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.ApplyInput(interfaces.InputSnapshot{Prototype: "catapult"})
	if g.Prototype != "wall" {
		t.Errorf("unknown prototype must be ignored, got %q", g.Prototype)
	}
	g.ApplyInput(interfaces.InputSnapshot{Prototype: "gun", NextWave: true})
	if g.Prototype != "gun" {
		t.Errorf("prototype = %q, want gun", g.Prototype)
	}
	if g.Status().Waves != 1 {
		t.Errorf("NextWave input should queue a wave")
	}
}

func TestSnapshotRestore(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	if r, _ := g.TryPlace(2, 2, "wall"); !r.Accepted {
		t.Fatalf("wall rejected: %v", r.Reason)
	}
	r, gun := g.TryPlace(5, 5, "gun")
	if !r.Accepted {
		t.Fatalf("gun rejected: %v", r.Reason)
	}
	if err := g.Upgrade(gun); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		g.Update(0.06)
	}
	if g.ECS.Pieces[gun].Level != 1 {
		t.Fatalf("gun should be upgraded before the snapshot")
	}
	g.NextWave()

	data, err := storage.Encode(g.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	snap, err := storage.Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	other := newTestGame(t, cfg)
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if len(other.ECS.Pieces) != 2 {
		t.Fatalf("restored %d pieces, want 2", len(other.ECS.Pieces))
	}
	levels := map[string]int{}
	invested := map[string]int{}
	for _, p := range other.ECS.Pieces {
		levels[p.DefID] = p.Level
		invested[p.DefID] = p.Invested
	}
	if levels["gun"] != 1 || invested["gun"] != 25 {
		t.Errorf("gun restored at level %d with %d invested", levels["gun"], invested["gun"])
	}
	if other.Player.Money != g.Player.Money || other.Player.Lives != g.Player.Lives {
		t.Errorf("economy not restored")
	}
	if other.WaveSystem.Wave.InvaderLevel != 2 || other.WaveSystem.Wave.Generated != 1 {
		t.Errorf("wave counters not restored: %+v", other.WaveSystem.Wave)
	}
	for i := range g.Grid.Cells {
		if g.Grid.Cells[i].Occupancy != other.Grid.Cells[i].Occupancy {
			t.Fatalf("occupancy differs at cell %d", i)
		}
		for k := grid.Key(0); k < grid.KeyCount; k++ {
			if g.Grid.Distance(i, k) != other.Grid.Distance(i, k) {
				t.Fatalf("distance differs at cell %d key %v", i, k)
			}
		}
	}
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.TryPlace(2, 2, "wall")
	good := g.Snapshot()

	wrongSize := good
	wrongSize.Cols = 5
	if err := g.Restore(wrongSize); err == nil {
		t.Error("expected error for mismatched grid size")
	}

	unknown := good
	unknown.Pieces = []storage.PieceRecord{{DefID: "catapult", Col: 2, Row: 2}}
	if err := g.Restore(unknown); err == nil {
		t.Error("expected error for unknown piece")
	}

	overlap := good
	overlap.Pieces = []storage.PieceRecord{{DefID: "wall", Col: 3, Row: 3}, {DefID: "gun", Col: 2, Row: 2}}
	if err := g.Restore(overlap); err == nil {
		t.Error("expected error for overlapping pieces")
	}

	if len(g.ECS.Pieces) != 1 || g.Player.Money != 95 {
		t.Errorf("failed restore must leave the game untouched")
	}
}

func TestInputIgnoredAfterGameOver(t *testing.T) {
	cfg := testConfig()
	cfg.Economy.StartingLives = 1
	g := newTestGame(t, cfg)
	g.NextWave()
	runUntilOver(g, 5000)
	if !g.IsOver() {
		t.Fatalf("game should end once lives reach 0")
	}

	money, pieces, generated := g.Player.Money, len(g.ECS.Pieces), g.WaveSystem.Wave.Generated
	g.ApplyInput(interfaces.InputSnapshot{
		Cursor:         cellCenter(g, 4, 4),
		SelectPressed:  true,
		SelectReleased: true,
		Prototype:      "gun",
		NextWave:       true,
	})

	if g.Player.Money != money || len(g.ECS.Pieces) != pieces {
		t.Errorf("click after game over changed the board: money %d -> %d, pieces %d -> %d", money, g.Player.Money, pieces, len(g.ECS.Pieces))
	}
	if g.Grid.Cell(g.Grid.Index(4, 4)).Occupancy != grid.Empty {
		t.Errorf("click after game over occupied a cell")
	}
	if g.Prototype != "wall" {
		t.Errorf("prototype changed after game over: %q", g.Prototype)
	}
	if g.WaveSystem.Wave.Generated != generated {
		t.Errorf("next wave honoured after game over")
	}
}

func TestRestoreRejectsInconsistentOccupancy(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.TryPlace(2, 2, "wall")
	good := g.Snapshot()

	tests := []struct {
		name string
		col  int
		row  int
		val  uint8
	}{
		{"blocking piece cell marked empty", 2, 2, uint8(grid.Empty)},
		{"border wall marked empty", 0, 0, uint8(grid.Empty)},
		{"free cell marked blocked", 4, 4, uint8(grid.Blocked)},
		{"unknown occupancy value", 4, 4, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := good
			bad.Occupancy = append([]uint8(nil), good.Occupancy...)
			bad.Occupancy[g.Grid.Index(tt.col, tt.row)] = tt.val
			if err := g.Restore(bad); err == nil {
				t.Fatal("expected error for inconsistent occupancy")
			}
			if len(g.ECS.Pieces) != 1 || g.Player.Money != 95 {
				t.Errorf("failed restore must leave the game untouched")
			}
			if g.Grid.Cell(g.Grid.Index(2, 2)).Occupancy != grid.Blocked {
				t.Errorf("failed restore must keep the wall blocked")
			}
		})
	}

	if err := g.Restore(good); err != nil {
		t.Fatalf("consistent snapshot rejected: %v", err)
	}
	if g.Grid.Cell(g.Grid.Index(2, 2)).Occupancy != grid.Blocked || g.Grid.Cell(g.Grid.Index(0, 0)).Occupancy != grid.Blocked {
		t.Errorf("restore should keep walls and blocking pieces blocked")
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.TryPlace(2, 2, "wall")
	g.NextWave()
	for i := 0; i < 30; i++ {
		g.Update(0.05)
	}
	g.Reset()

	st := g.Status()
	if st.Money != 100 || st.Lives != 10 || st.Level != 1 || st.Waves != 0 || st.Time != 0 {
		t.Errorf("reset should restore the starting status, got %+v", st)
	}
	if len(g.ECS.Pieces)+len(g.ECS.Invaders)+len(g.ECS.Projectiles) != 0 {
		t.Errorf("reset should remove all entities")
	}
	if g.Grid.Cell(g.Grid.Index(2, 2)).Occupancy != grid.Empty {
		t.Errorf("reset should free grid cells")
	}
}

func TestPlayWave(t *testing.T) {
	g := newTestGame(t, testConfig())

	st, done := g.PlayWave(0.05, 10000)
	if !done {
		t.Fatalf("first wave did not drain")
	}
	if st.Waves != 1 || st.MadeIt+st.Destroyed != 2 || st.Over {
		t.Errorf("unexpected status after first wave: %+v", st)
	}

	st, done = g.PlayWave(0.05, 10000)
	if !done || !st.Over || !st.Won {
		t.Errorf("last wave should end the game with a win, got %+v", st)
	}
	if _, done := g.PlayWave(0.05, 10); done {
		t.Errorf("PlayWave after game over must report false")
	}
}

func TestDescribe(t *testing.T) {
	g := newTestGame(t, testConfig())
	if g.Describe(types.None) != "" {
		t.Errorf("missing piece should have an empty description")
	}
	_, id := g.TryPlace(2, 2, "gun")
	if got := g.Describe(id); got != "Gun L0" {
		t.Errorf("Describe() = %q, want %q", got, "Gun L0")
	}
	if err := g.Upgrade(id); err != nil {
		t.Fatal(err)
	}
	if got := g.Describe(id); got != "Gun L0 (upgrading)" {
		t.Errorf("Describe() = %q during upgrade", got)
	}
}
