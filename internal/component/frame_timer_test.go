package component

import "testing"

func TestFrameTimer(t *testing.T) {
	var ft FrameTimer
	ft.Start(3, 0.25)
	if !ft.Running || ft.Frame != 0 {
		t.Fatalf("timer should start on frame 0")
	}
	if ft.Update(0.25) || ft.Frame != 1 {
		t.Fatalf("expected frame 1 after one frame duration, got %d", ft.Frame)
	}
	if ft.Update(0.25) || ft.Frame != 2 {
		t.Fatalf("expected frame 2, got %d", ft.Frame)
	}
	if !ft.Update(0.25) {
		t.Fatalf("timer should report completion after the last frame")
	}
	if ft.Running || ft.Frame != 2 {
		t.Errorf("finished timer should stop on the last frame, got running=%v frame=%d", ft.Running, ft.Frame)
	}
	if ft.Update(1) {
		t.Errorf("stopped timer must not finish twice")
	}
}

func TestFrameTimerRejectsEmptyAnimation(t *testing.T) {
	var ft FrameTimer
	ft.Start(0, 0.1)
	if ft.Running {
		t.Errorf("zero-frame animation must not run")
	}
}

func TestPlayerEconomy(t *testing.T) {
	p := Player{Money: 10, Lives: 1}
	if p.Spend(11) || p.Money != 10 {
		t.Errorf("overspending must be refused without side effects")
	}
	if !p.Spend(10) || p.Money != 0 {
		t.Errorf("exact spend should succeed")
	}
	if !p.LoseLife() || p.Lives != 0 {
		t.Errorf("losing the last life should report game over")
	}
	if !p.LoseLife() || p.Lives != 0 {
		t.Errorf("lives must not go negative")
	}
}
