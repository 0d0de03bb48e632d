package game

import (
	"snake-autopilot/ai"
	"snake-autopilot/game/types"
)

// Command is a frontend-independent player input
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdRight
	CmdDown
	CmdLeft
	CmdAStar
	CmdBFS
	CmdToggleStrategy
	CmdToggleAI
	CmdRestart
	CmdQuit
)

var steering = map[Command]types.Direction{
	CmdUp:    types.Up,
	CmdRight: types.Right,
	CmdDown:  types.Down,
	CmdLeft:  types.Left,
}

// Apply executes cmd against the session. It reports whether the frontend
// should quit.
func (g *Game) Apply(cmd Command) (bool, error) {
	if dir, ok := steering[cmd]; ok {
		g.Steer(dir)
		return false, nil
	}

	switch cmd {
	case CmdAStar:
		return false, g.SetStrategy(ai.KindAStar)
	case CmdBFS:
		return false, g.SetStrategy(ai.KindBFS)
	case CmdToggleStrategy:
		g.ToggleStrategy()
	case CmdToggleAI:
		g.ToggleAI()
	case CmdRestart:
		if g.Over {
			return false, g.Reset()
		}
	case CmdQuit:
		return true, nil
	}
	return false, nil
}
