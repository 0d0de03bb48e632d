package ai

import (
	"snake-autopilot/game/types"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// AStar is a best-first search on g + manhattan distance.
// Every body cell is a wall, the tail included.
type AStar struct{}

type frontierEntry struct {
	cell types.Point
	f, g int
	seq  int // insertion order, breaks (f, g) ties
}

func frontierLess(a, b frontierEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.seq < b.seq
}

func (AStar) FindPath(grid types.Grid, q Query) types.Path {
	if q.Start == q.Goal {
		return nil
	}

	blocked := occupiedSet(q.Body, q.Blocked...)
	open := heap.New[frontierEntry](frontierLess)
	seq := 0
	open.Push(frontierEntry{cell: q.Start, f: q.Start.Manhattan(q.Goal), seq: seq})

	cameFrom := make(map[types.Point]types.Point)
	gScore := map[types.Point]int{q.Start: 0}
	closed := mapset.New[types.Point]()

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if cur.cell == q.Goal {
			return walkBack(cameFrom, q.Start, q.Goal)
		}
		// a cell is finalized once; later, stale entries are dropped
		if closed.Has(cur.cell) {
			continue
		}
		closed.Put(cur.cell)

		for _, next := range grid.Neighbors(cur.cell) {
			if !grid.InBounds(next) || blocked.Has(next) || closed.Has(next) {
				continue
			}
			tentative := gScore[cur.cell] + 1
			if g, seen := gScore[next]; seen && tentative >= g {
				continue
			}
			cameFrom[next] = cur.cell
			gScore[next] = tentative
			seq++
			open.Push(frontierEntry{
				cell: next,
				f:    tentative + next.Manhattan(q.Goal),
				g:    tentative,
				seq:  seq,
			})
		}
	}
	return nil
}
