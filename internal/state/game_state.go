// internal/state/game_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/internal/ui"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/render"
)

// цифровые клавиши выбирают фигуру по порядку палитры
var prototypeKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Layout: размер окна: поле с полями по краям плюс правая панель
func Layout(cfg config.Config) (int, int) {
	w := float64(cfg.Grid.Cols)*cfg.Grid.CellSize + 2*config.HUDMargin
	h := float64(cfg.Grid.Rows)*cfg.Grid.CellSize + 2*config.HUDMargin
	if h < config.ScreenHeight/2 {
		h = config.ScreenHeight / 2
	}
	return int(w) + config.HUDWidth, int(h)
}

// GameState: состояние игры
type GameState struct {
	sm       *StateMachine
	game     *game.Game
	canvas   *render.Canvas
	hud      *ui.HUD
	origin   geometry.Point // сдвиг поля на экране
	maxLives int
}

func NewGameState(sm *StateMachine, g *game.Game, canvas *render.Canvas) *GameState {
	w, h := Layout(g.Config)
	return &GameState{
		sm:       sm,
		game:     g,
		canvas:   canvas,
		hud:      ui.NewHUD(g.Library, float64(w-config.HUDWidth), float64(h)),
		origin:   geometry.Pt(config.HUDMargin, config.HUDMargin),
		maxLives: g.Config.Economy.StartingLives,
	}
}

func (s *GameState) Enter() {}

func (s *GameState) Exit() {}

// GetGame отдаёт симуляцию, например для паузы
func (s *GameState) GetGame() *game.Game {
	return s.game
}

func (s *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.pause()
		return
	}
	if s.game.IsOver() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			s.game.Reset()
		}
		return
	}

	in := interfaces.InputSnapshot{
		Upgrade:        inpututil.IsKeyJustPressed(ebiten.KeyU),
		Sell:           inpututil.IsKeyJustPressed(ebiten.KeyS),
		NextWave:       inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		ClearSelection: inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
	}
	for i, key := range prototypeKeys {
		if i < len(s.game.Library.PieceOrder) && inpututil.IsKeyJustPressed(key) {
			in.Prototype = s.game.Library.PieceOrder[i]
		}
	}

	x, y := ebiten.CursorPosition()
	screen := geometry.Pt(float64(x), float64(y))
	if s.hud.Contains(screen) {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.handleHUDClick(screen, &in) {
			return
		}
	} else {
		in.Cursor = screen.Sub(s.origin)
		in.SelectPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		in.SelectReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	}

	s.game.ApplyInput(in)
	s.game.Update(deltaTime)
}

// handleHUDClick переводит клик по панели в ввод; true, если кадр дальше не обрабатывается
func (s *GameState) handleHUDClick(p geometry.Point, in *interfaces.InputSnapshot) bool {
	action, id := s.hud.Click(p)
	switch action {
	case ui.ActionPrototype:
		in.Prototype = id
	case ui.ActionSpeed:
		s.game.HandleSpeedClick()
	case ui.ActionPause:
		s.pause()
		return true
	case ui.ActionNextWave:
		in.NextWave = true
	case ui.ActionUpgrade:
		in.Upgrade = true
	case ui.ActionSell:
		in.Sell = true
	}
	return false
}

func (s *GameState) pause() {
	if !s.game.IsPaused() {
		s.game.HandlePauseClick()
	}
	s.sm.SetState(NewPauseState(s.sm, s))
}

func (s *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	s.canvas.Begin(screen)

	s.canvas.Offset = s.origin
	s.game.Draw(s.canvas)

	s.canvas.Offset = geometry.Point{}
	x, y := ebiten.CursorPosition()
	s.hud.Draw(s.canvas, s.info(), geometry.Pt(float64(x), float64(y)))
}

func (s *GameState) info() ui.Info {
	st := s.game.Status()
	return ui.Info{
		Money:     st.Money,
		Lives:     st.Lives,
		MaxLives:  s.maxLives,
		Wave:      st.Waves,
		Active:    st.Active,
		Queued:    st.Queued,
		Prototype: s.game.Prototype,
		Selected:  s.game.Describe(s.game.Selected),
		Speed:     s.game.SpeedMultiplier,
		Paused:    st.Paused,
		Over:      st.Over,
		Won:       st.Won,
	}
}
