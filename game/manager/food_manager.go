package manager

import (
	"errors"

	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"

	"golang.org/x/exp/rand"
)

// ErrBoardFull is returned when the snake covers every cell
var ErrBoardFull = errors.New("no free cell for food")

// Random picks before falling back to scanning the free cells
const maxSpawnAttempts = 64

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, seed uint64, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// GenerateFood returns a uniformly random cell not covered by the snake
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, error) {
	for i := 0; i < maxSpawnAttempts; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			return food, nil
		}
	}

	// crowded board: pick among the free cells directly
	free := make([]types.Point, 0, fm.grid.Cells())
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if fm.collisionMgr.ValidateSpawnPosition(p, snake) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, ErrBoardFull
	}
	return free[fm.rng.Intn(len(free))], nil
}
