// internal/state/pause_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/ui"
	"go-grid-defense/pkg/geometry"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState рисует поле под затемнением и ждёт снятия паузы
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if action, _ := s.previousState.hud.Click(geometry.Pt(float64(x), float64(y))); action == ui.ActionPause {
			unpause = true
		}
	}

	if unpause {
		if g := s.previousState.GetGame(); g.IsPaused() {
			g.HandlePauseClick()
		}
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), config.OverlayColor, false)

	c := s.previousState.canvas
	c.Offset = geometry.Point{}
	pauseText := "PAUSED"
	x := (float64(b.Dx()-config.HUDWidth) - float64(c.TextWidth(pauseText))) / 2
	c.Text(pauseText, geometry.Pt(x, float64(b.Dy())/2-config.TextLineHeight), config.TextLightColor)
}

func (s *PauseState) Exit() {}
