// internal/termview/view.go
package termview

import (
	"context"
	"fmt"
	"image/color"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/pkg/grid"
)

// cellWidth: символов терминала на одну клетку сетки
const cellWidth = 2

var (
	styleWall    = tcell.StyleDefault.Foreground(rgb(config.WallColor)).Background(rgb(config.WallColor))
	styleEmpty   = tcell.StyleDefault.Foreground(rgb(config.PassableColor))
	styleEntry   = tcell.StyleDefault.Foreground(rgb(config.EntryColor))
	styleExit    = tcell.StyleDefault.Foreground(rgb(config.ExitColor))
	styleInvader = tcell.StyleDefault.Foreground(rgb(config.InvaderColor)).Bold(true)
	styleShot    = tcell.StyleDefault.Foreground(rgb(config.ProjectileColor))
	styleText    = tcell.StyleDefault.Foreground(rgb(config.TextLightColor))
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// View рисует партию символами и переводит клавиши в команды
type View struct {
	screen    tcell.Screen
	game      *game.Game
	cursorCol int
	cursorRow int
}

func New(screen tcell.Screen, g *game.Game) *View {
	return &View{
		screen:    screen,
		game:      g,
		cursorCol: g.Grid.Cols / 2,
		cursorRow: g.Grid.Rows / 2,
	}
}

// Cursor: клетка под курсором
func (v *View) Cursor() (int, int) {
	return v.cursorCol, v.cursorRow
}

// HandleKey применяет клавишу; false означает выход
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	g := v.game
	var in interfaces.InputSnapshot

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.move(0, -1)
	case tcell.KeyDown:
		v.move(0, 1)
	case tcell.KeyLeft:
		v.move(-1, 0)
	case tcell.KeyRight:
		v.move(1, 0)
	case tcell.KeyEscape:
		in.ClearSelection = true
	case tcell.KeyTab:
		in.Prototype = v.nextPrototype()
	case tcell.KeyEnter:
		in.Cursor = g.Grid.Anchor(g.Grid.Index(v.cursorCol, v.cursorRow))
		in.SelectPressed, in.SelectReleased = true, true
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r == 'u':
			in.Upgrade = true
		case r == 's':
			in.Sell = true
		case r == 'n' || r == ' ':
			in.NextWave = true
		case r == 'p':
			g.HandlePauseClick()
		case r == '+':
			g.HandleSpeedClick()
		case r == 'r' && g.IsOver():
			g.Reset()
		case r >= '1' && r <= '9':
			if i := int(r - '1'); i < len(g.Library.PieceOrder) {
				in.Prototype = g.Library.PieceOrder[i]
			}
		}
	}
	g.ApplyInput(in)
	return true
}

func (v *View) move(dc, dr int) {
	g := v.game.Grid
	v.cursorCol = max(0, min(g.Cols-1, v.cursorCol+dc))
	v.cursorRow = max(0, min(g.Rows-1, v.cursorRow+dr))
}

func (v *View) nextPrototype() string {
	order := v.game.Library.PieceOrder
	for i, id := range order {
		if id == v.game.Prototype {
			return order[(i+1)%len(order)]
		}
	}
	if len(order) > 0 {
		return order[0]
	}
	return ""
}

// Draw перерисовывает экран целиком
func (v *View) Draw() {
	s := v.screen
	g := v.game
	s.Clear()

	for i := range g.Grid.Cells {
		c := g.Grid.Cell(i)
		ch, style := v.cellGlyph(i)
		x, y := c.Col*cellWidth, c.Row
		for dx := 0; dx < cellWidth; dx++ {
			s.SetContent(x+dx, y, ch, nil, style)
		}
	}

	for _, id := range entity.SortedIDs(g.ECS.Projectiles) {
		v.plot(g.Grid.CellAt(g.ECS.Projectiles[id].Position), '*', styleShot)
	}
	for _, id := range entity.SortedIDs(g.ECS.Invaders) {
		v.plot(g.Grid.CellAt(g.ECS.Invaders[id].Position), '@', styleInvader)
	}

	// курсор
	x := v.cursorCol * cellWidth
	ch, _, style, _ := s.GetContent(x, v.cursorRow)
	s.SetContent(x, v.cursorRow, ch, nil, style.Reverse(true))

	st := g.Status()
	line := g.Grid.Rows + 1
	v.text(0, line, fmt.Sprintf("$%d  lives %d  wave %d  active %d (+%d)  x%d",
		st.Money, st.Lives, st.Waves, st.Active, st.Queued, g.SpeedMultiplier))
	v.text(0, line+1, fmt.Sprintf("build: %s  selected: %s", g.Prototype, g.Describe(g.Selected)))
	switch {
	case st.Over && st.Won:
		v.text(0, line+2, "VICTORY  r: restart  q: quit")
	case st.Over:
		v.text(0, line+2, "GAME OVER  r: restart  q: quit")
	case st.Paused:
		v.text(0, line+2, "PAUSED")
	}
	s.Show()
}

func (v *View) cellGlyph(idx int) (rune, tcell.Style) {
	g := v.game
	c := g.Grid.Cell(idx)
	switch {
	case g.Grid.IsWall(idx):
		return ' ', styleWall
	case c.Throughway && (g.Grid.Distance(idx, grid.Horizontal) == 0 || g.Grid.Distance(idx, grid.Vertical) == 0):
		return '<', styleExit
	case c.Throughway:
		return '>', styleEntry
	}
	if piece, ok := g.ECS.Pieces[c.Piece]; ok {
		def, _ := g.Library.Piece(piece.DefID)
		ch := '?'
		if def.ID != "" {
			ch = unicode.ToUpper([]rune(def.ID)[0])
		}
		style := tcell.StyleDefault.Foreground(rgb(def.Visuals.Color))
		if c.Piece == g.Selected {
			style = style.Underline(true)
		}
		if def.Ground != nil {
			ch = '~'
		}
		return ch, style
	}
	return '.', styleEmpty
}

func (v *View) plot(idx int, ch rune, style tcell.Style) {
	if idx == grid.NoCell {
		return
	}
	c := v.game.Grid.Cell(idx)
	v.screen.SetContent(c.Col*cellWidth, c.Row, ch, nil, style)
}

func (v *View) text(x, y int, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, styleText)
		x++
	}
}

// Run крутит симуляцию в реальном времени, пока не отменён ctx или не нажат выход
func (v *View) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / config.TicksPerSec)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
			v.Draw()
		case now := <-ticker.C:
			v.game.Update(now.Sub(last).Seconds())
			last = now
			v.Draw()
		}
	}
}
