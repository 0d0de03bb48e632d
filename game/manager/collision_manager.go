package manager

import (
	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	// BoardFull ends a session that filled every cell
	BoardFull
	// Stuck ends a session whose navigator found no cell to move to
	Stuck
)

func (c CollisionType) String() string {
	switch c {
	case NoCollision:
		return "none"
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case BoardFull:
		return "board full"
	case Stuck:
		return "stuck"
	default:
		return "unknown"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Check classifies the snake's head after a move. Walls win over self hits.
func (cm *CollisionManager) Check(snake *entity.Snake) CollisionType {
	if snake.OutOfBounds(cm.grid) {
		return WallCollision
	}
	if snake.SelfCollision() {
		return SelfCollision
	}
	return NoCollision
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}

// ValidateSpawnPosition checks if food may be placed at pos
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if !cm.grid.InBounds(pos) {
		return false
	}
	return snake == nil || !snake.Contains(pos)
}
