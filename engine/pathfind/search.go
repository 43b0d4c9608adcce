// Package pathfind provides an 8-directional informed search over an
// implicit grid. The search returns only the first step toward the goal and
// is meant to be re-invoked every tick as the target and obstacles shift,
// not to produce a full plan once.
package pathfind

import "math"

// Point is a grid coordinate in world units.
type Point struct {
	X, Y int
}

// FirstStep searches the implicit grid of step size delta and returns the
// first move of a path from from toward to. The search succeeds as soon as
// a frontier node lies within delta units of the goal; if from itself is
// already that close, the returned step is the single grid step toward the
// goal. ok is false only if the frontier empties, which cannot happen on an
// unobstructed grid.
func FirstStep(from, to Point, delta int) (Point, bool) {
	return FirstStepAvoiding(from, to, delta, nil)
}

// FirstStepAvoiding is FirstStep with an impassability predicate: grid
// points for which blocked returns true are never entered. With obstacles
// the frontier can genuinely empty; callers must fall back (typically to
// standing still) when ok is false.
func FirstStepAvoiding(from, to Point, delta int, blocked func(Point) bool) (Point, bool) {
	tree := NewTree(from)

	var queue frontier
	queue.push(node{tree: 0, cost: 0, x: from.X, y: from.Y})

	visited := make(map[Point]struct{})

	for {
		n, ok := queue.pop()
		if !ok {
			return Point{}, false
		}
		visited[Point{n.x, n.y}] = struct{}{}

		if dist(n.x, n.y, to.X, to.Y) < float64(delta) {
			path := tree.PathTo(n.tree)
			if len(path) > 1 {
				return path[1], true
			}
			return stepToward(from, to, delta), true
		}

		// Expand the eight neighbors. The cost model is a fixed per-step
		// cost plus the full heuristic to the goal re-added at every node.
		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				if i == 0 && j == 0 {
					continue
				}
				next := Point{X: n.x + delta*i, Y: n.y + delta*j}
				if _, seen := visited[next]; seen {
					continue
				}
				if blocked != nil && blocked(next) {
					continue
				}
				cost := n.cost + 1 + dist(next.X, next.Y, to.X, to.Y)
				id := tree.Insert(n.tree, next)
				queue.insertOrReplace(node{tree: id, cost: cost, x: next.X, y: next.Y})
			}
		}
	}
}

// stepToward returns the single grid step of size delta that reduces the
// distance to the goal on each axis.
func stepToward(from, to Point, delta int) Point {
	step := from
	switch {
	case to.X > from.X:
		step.X += delta
	case to.X < from.X:
		step.X -= delta
	}
	switch {
	case to.Y > from.Y:
		step.Y += delta
	case to.Y < from.Y:
		step.Y -= delta
	}
	return step
}

func dist(x0, y0, x1, y1 int) float64 {
	return math.Hypot(float64(x1-x0), float64(y1-y0))
}
