package ui

import (
	"fmt"
	"snake-autopilot/game"
	"snake-autopilot/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10 // padding around game area
	panelDivisor  = 4  // stats panel takes a quarter of the window
)

var (
	snakeColor = rl.Color{R: 40, G: 200, B: 90, A: 255}
	cycleColor = rl.Color{R: 70, G: 70, B: 110, A: 255}
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / panelDivisor
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight
}

// HandleInput reads this frame's key presses
func (r *Renderer) HandleInput() game.Command {
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		return game.CmdUp
	case rl.IsKeyPressed(rl.KeyDown):
		return game.CmdDown
	case rl.IsKeyPressed(rl.KeyLeft):
		return game.CmdLeft
	case rl.IsKeyPressed(rl.KeyRight):
		return game.CmdRight
	case rl.IsKeyPressed(rl.KeyA):
		return game.CmdAStar
	case rl.IsKeyPressed(rl.KeyB):
		return game.CmdBFS
	case rl.IsKeyPressed(rl.KeyT):
		return game.CmdToggleStrategy
	case rl.IsKeyPressed(rl.KeyM):
		return game.CmdToggleAI
	case rl.IsKeyPressed(rl.KeyEnter):
		return game.CmdRestart
	case rl.IsKeyPressed(rl.KeyEscape):
		return game.CmdQuit
	}
	return game.CmdNone
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func (r *Renderer) Draw(g *game.Game) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/30, r.statsPanel/12)
	lineHeight := fontSize + fontSize/2

	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	r.cellSize = min(availableWidth/int32(g.Grid.Width), availableHeight/int32(g.Grid.Height))

	r.totalGridWidth = r.cellSize * int32(g.Grid.Width)
	r.totalGridHeight = r.cellSize * int32(g.Grid.Height)

	// center the board in the game area
	r.offsetX = (r.gameWidth - r.totalGridWidth) / 2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	rl.DrawRectangle(
		r.offsetX-1,
		r.offsetY-1,
		r.totalGridWidth+2,
		r.totalGridHeight+2,
		rl.DarkGray)

	for x := 0; x < g.Grid.Width; x++ {
		for y := 0; y < g.Grid.Height; y++ {
			rl.DrawRectangleLines(
				r.offsetX+int32(x)*r.cellSize,
				r.offsetY+int32(y)*r.cellSize,
				r.cellSize, r.cellSize, rl.Gray)
		}
	}

	if g.AIEnabled && g.LastDecision.Fallback {
		r.drawCycle(g)
	}

	r.fillCell(g.Food, rl.Red)

	body := g.Snake.Body
	for i := len(body) - 1; i >= 0; i-- {
		if !g.Grid.InBounds(body[i]) {
			// the head after a wall crash
			continue
		}
		color := snakeColor
		if i == 0 {
			color = rl.Color{
				R: uint8(min(int32(float32(snakeColor.R)*1.3), 255)),
				G: uint8(min(int32(float32(snakeColor.G)*1.3), 255)),
				B: uint8(min(int32(float32(snakeColor.B)*1.3), 255)),
				A: 255,
			}
		}
		r.fillCell(body[i], color)
	}
	if len(body) > 0 && g.Grid.InBounds(body[0]) {
		r.drawHeading(body[0], g.Snake.Direction)
	}

	if g.Over {
		text := fmt.Sprintf("Game Over! (%s) - Enter to restart", g.Cause)
		textWidth := rl.MeasureText(text, fontSize)
		rl.DrawText(text,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2-fontSize/2,
			fontSize, rl.White)
	}

	r.drawStatsPanel(g, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) fillCell(p types.Point, color rl.Color) {
	rl.DrawRectangle(
		r.offsetX+int32(p.X)*r.cellSize,
		r.offsetY+int32(p.Y)*r.cellSize,
		r.cellSize, r.cellSize, color)
}

func (r *Renderer) cellCenter(p types.Point) rl.Vector2 {
	return rl.Vector2{
		X: float32(r.offsetX + int32(p.X)*r.cellSize + r.cellSize/2),
		Y: float32(r.offsetY + int32(p.Y)*r.cellSize + r.cellSize/2),
	}
}

// drawCycle traces the fallback tour while the snake is following it
func (r *Renderer) drawCycle(g *game.Game) {
	cycle := g.FallbackCycle()
	for i := 0; i < cycle.Len(); i++ {
		rl.DrawLineV(r.cellCenter(cycle.At(i)), r.cellCenter(cycle.At(i+1)), cycleColor)
	}
}

func (r *Renderer) drawHeading(head types.Point, dir types.Direction) {
	headX := r.offsetX + int32(head.X)*r.cellSize
	headY := r.offsetY + int32(head.Y)*r.cellSize
	halfCell := r.cellSize / 2

	switch dir {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Yellow)
	default:
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Yellow)
	}
}

func (r *Renderer) drawStatsPanel(g *game.Game, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 10
	statsY := int32(10)

	rl.DrawRectangle(r.gameWidth, 0, r.statsPanel, r.screenHeight, rl.DarkGray)

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
		fmt.Sprintf("Avg: %.2f", g.AverageScore()),
		"",
		fmt.Sprintf("All games: %d", g.Stats().GamesPlayed()),
		fmt.Sprintf("Median: %.1f", g.Stats().MedianScore()),
		fmt.Sprintf("Best: %d", g.Stats().MaxScore()),
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	statsY += lineHeight / 2
	for _, help := range []string{"A/B: A* / BFS", "T: toggle strategy", "M: AI / manual", "Arrows: steer", "Esc: quit"} {
		rl.DrawText(help, statsX, statsY, fontSize*3/4, rl.LightGray)
		statsY += lineHeight * 3 / 4
	}

	elapsed := int(g.ElapsedTime())
	timeText := fmt.Sprintf("%02d:%02d:%02d", elapsed/3600, elapsed/60%60, elapsed%60)
	rl.DrawText(timeText, statsX, r.screenHeight-fontSize-10, fontSize, rl.White)
}
