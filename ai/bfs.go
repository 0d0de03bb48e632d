package ai

import (
	"snake-autopilot/game/types"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// BFS explores level by level, so the first path found has the fewest moves.
// The tail cell counts as free when the query says it vacates, unless
// StrictTail is set.
type BFS struct {
	StrictTail bool
}

func (b BFS) FindPath(grid types.Grid, q Query) types.Path {
	if q.Start == q.Goal {
		return nil
	}

	body := q.Body
	if q.TailVacates && !b.StrictTail && len(body) > 0 {
		body = body[:len(body)-1]
	}
	blocked := occupiedSet(body, q.Blocked...)

	visited := mapset.New[types.Point]()
	visited.Put(q.Start)
	parent := make(map[types.Point]types.Point)
	frontier := queue.New[types.Point]()
	frontier.Enqueue(q.Start)

	for !frontier.Empty() {
		cur := frontier.Dequeue()
		if cur == q.Goal {
			return walkBack(parent, q.Start, q.Goal)
		}
		for _, next := range grid.Neighbors(cur) {
			if !grid.InBounds(next) || blocked.Has(next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			parent[next] = cur
			frontier.Enqueue(next)
		}
	}
	return nil
}
