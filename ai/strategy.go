// Package ai decides where the snake goes next: shortest-path search
// towards the food, with a Hamiltonian cycle as the safe fallback.
package ai

import (
	"errors"
	"fmt"
	"strings"

	"snake-autopilot/game/types"

	"github.com/zyedidia/generic/mapset"
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

// Query is a single path request.
// Body is ordered head first; the head is Start.
type Query struct {
	Start types.Point
	Goal  types.Point
	Body  []types.Point
	// TailVacates is set when the tail moves off its cell on the next tick
	TailVacates bool
	// Blocked lists extra impassable cells outside the body
	Blocked []types.Point
}

// Strategy finds a path from Start to Goal avoiding the body.
// An empty path means no path.
type Strategy interface {
	FindPath(grid types.Grid, q Query) types.Path
}

// Kind selects a Strategy
type Kind int

const (
	KindAStar Kind = iota
	KindBFS
)

func (k Kind) String() string {
	switch k {
	case KindAStar:
		return "A*"
	case KindBFS:
		return "BFS"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Next cycles A* -> BFS -> A*
func (k Kind) Next() Kind {
	if k == KindAStar {
		return KindBFS
	}
	return KindAStar
}

// ParseKind accepts "astar", "a*" and "bfs", case-insensitively
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*", "a-star":
		return KindAStar, nil
	case "bfs":
		return KindBFS, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func NewStrategy(k Kind) (Strategy, error) {
	switch k {
	case KindAStar:
		return AStar{}, nil
	case KindBFS:
		return BFS{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, k)
}

func occupiedSet(body []types.Point, extra ...types.Point) mapset.Set[types.Point] {
	set := mapset.New[types.Point]()
	for _, p := range body {
		set.Put(p)
	}
	for _, p := range extra {
		set.Put(p)
	}
	return set
}

// walkBack rebuilds the path ending at goal from back-pointers
func walkBack(parent map[types.Point]types.Point, start, goal types.Point) types.Path {
	var path types.Path
	for cur := goal; cur != start; cur = parent[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
