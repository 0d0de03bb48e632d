// Package terminal draws the game in a text terminal with tcell.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snake-autopilot/game"
	"snake-autopilot/game/types"

	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth  = 2 // terminal columns per board cell
	panelGap   = 3
	frameDelay = 16 * time.Millisecond
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Frontend runs a game on a tcell screen
type Frontend struct {
	screen   tcell.Screen
	game     *game.Game
	interval time.Duration
	log      *slog.Logger
}

// New takes ownership of screen; pass nil to open the real terminal
func New(screen tcell.Screen, g *game.Game, interval time.Duration, logger *slog.Logger) (*Frontend, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Frontend{screen: screen, game: g, interval: interval, log: logger}, nil
}

// Run ticks the game every interval and redraws until the player quits or
// ctx is done. The screen is released on return.
func (f *Frontend) Run(ctx context.Context) error {
	defer f.screen.Fini()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(f.screen.PollEvent, events, done)

	frames := time.NewTicker(frameDelay)
	defer frames.Stop()
	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				quit, err := f.game.Apply(KeyCommand(ev))
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			case *tcell.EventResize:
				f.screen.Sync()
			}

		case <-frames.C:
			if !f.game.Over && time.Since(lastTick) >= f.interval {
				lastTick = time.Now()
				if err := f.game.Update(ctx); err != nil {
					return err
				}
			}
			f.Draw()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil (screen
// finalized) or done is closed
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// KeyCommand maps a key press onto a game command
func KeyCommand(ev *tcell.EventKey) game.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.CmdUp
	case tcell.KeyDown:
		return game.CmdDown
	case tcell.KeyLeft:
		return game.CmdLeft
	case tcell.KeyRight:
		return game.CmdRight
	case tcell.KeyEnter:
		return game.CmdRestart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CmdQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return game.CmdAStar
		case 'b', 'B':
			return game.CmdBFS
		case 't', 'T':
			return game.CmdToggleStrategy
		case 'm', 'M':
			return game.CmdToggleAI
		case 'q', 'Q':
			return game.CmdQuit
		}
	}
	return game.CmdNone
}

// Draw renders one frame: bordered board on the left, panel on the right
func (f *Frontend) Draw() {
	g := f.game
	f.screen.Clear()

	w, h := g.Grid.Width*cellWidth, g.Grid.Height
	for x := 0; x < w+2; x++ {
		f.screen.SetContent(x, 0, '─', nil, borderStyle)
		f.screen.SetContent(x, h+1, '─', nil, borderStyle)
	}
	for y := 0; y < h+2; y++ {
		f.screen.SetContent(0, y, '│', nil, borderStyle)
		f.screen.SetContent(w+1, y, '│', nil, borderStyle)
	}
	f.screen.SetContent(0, 0, '┌', nil, borderStyle)
	f.screen.SetContent(w+1, 0, '┐', nil, borderStyle)
	f.screen.SetContent(0, h+1, '└', nil, borderStyle)
	f.screen.SetContent(w+1, h+1, '┘', nil, borderStyle)

	f.putCell(g.Food, '●', foodStyle)
	for i := len(g.Snake.Body) - 1; i >= 0; i-- {
		style := bodyStyle
		if i == 0 {
			style = headStyle
		}
		f.putCell(g.Snake.Body[i], '█', style)
	}

	mode := "AI"
	if !g.AIEnabled {
		mode = "Manual"
	}
	lines := []string{
		fmt.Sprintf("Score: %d", g.Score()),
		fmt.Sprintf("High Score: %d", g.HighScore()),
		fmt.Sprintf("Strategy: %s", g.Strategy()),
		fmt.Sprintf("Mode: %s", mode),
		fmt.Sprintf("Games: %d", g.GamesPlayed()),
		"",
		"A/B: A*/BFS  T: toggle",
		"M: AI/manual  Esc: quit",
	}
	px := w + 2 + panelGap
	for i, line := range lines {
		f.putText(px, 1+i, line, textStyle)
	}
	if g.Over {
		f.putText(px, 2+len(lines), fmt.Sprintf("Game over: %s", g.Cause), alertStyle)
		f.putText(px, 3+len(lines), "Enter: restart", alertStyle)
	}

	f.screen.Show()
}

// putCell fills the terminal columns of one board cell
func (f *Frontend) putCell(p types.Point, r rune, style tcell.Style) {
	if !f.game.Grid.InBounds(p) {
		return
	}
	for dx := 0; dx < cellWidth; dx++ {
		f.screen.SetContent(1+p.X*cellWidth+dx, 1+p.Y, r, nil, style)
	}
}

func (f *Frontend) putText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		f.screen.SetContent(x+i, y, r, nil, style)
	}
}
