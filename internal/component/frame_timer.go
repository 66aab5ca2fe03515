// internal/component/frame_timer.go
package component

// FrameTimer: переиспользуемый таймер покадровой анимации.
// Кадр меняется каждые FrameDuration секунд; после последнего кадра таймер останавливается.
type FrameTimer struct {
	Running       bool
	Frame         int
	Elapsed       float64
	FrameCount    int
	FrameDuration float64
}

// Start запускает анимацию с первого кадра
func (t *FrameTimer) Start(frames int, duration float64) {
	if frames < 1 || duration <= 0 {
		t.Running = false
		return
	}
	t.Running = true
	t.Frame = 0
	t.Elapsed = 0
	t.FrameCount = frames
	t.FrameDuration = duration
}

// Update продвигает таймер. Возвращает true, когда анимация только что закончилась.
func (t *FrameTimer) Update(dt float64) bool {
	if !t.Running {
		return false
	}
	t.Elapsed += dt
	for t.Elapsed >= t.FrameDuration {
		t.Elapsed -= t.FrameDuration
		t.Frame++
		if t.Frame >= t.FrameCount {
			t.Running = false
			t.Frame = t.FrameCount - 1
			t.Elapsed = 0
			return true
		}
	}
	return false
}

// Progress: доля проигранной анимации в [0,1]
func (t *FrameTimer) Progress() float64 {
	if t.FrameCount == 0 || !t.Running {
		return 0
	}
	return (float64(t.Frame) + t.Elapsed/t.FrameDuration) / float64(t.FrameCount)
}
