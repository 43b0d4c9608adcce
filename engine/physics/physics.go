// Package physics advances every positioned physical entity once per tick,
// resolving collisions axis by axis against the other entities' footprints.
package physics

import (
	"math"
	"time"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/vmath"
)

// System applies per-tick displacement and collision resolution.
//
// Collision handling is axis-separated: the tick's displacement is split
// into an x-only and a y-only speculative footprint, and a partner blocking
// one axis removes only that axis' motion, so entities slide along walls.
// When an entity touches several partners in one tick, partners are checked
// in index order and each colliding partner overwrites the adjustment of the
// previous one; the reprojection is always computed from the tick's original
// displacement. This last-write resolution is deliberate compatibility
// behavior, see DESIGN.md.
type System struct {
	lastTick time.Time
}

// New returns a physics system whose first tick measures elapsed time from
// now.
func New(now time.Time) *System {
	return &System{lastTick: now}
}

// Run advances the world by the wall time elapsed since the previous call.
// The caller supplies the current instant so time is injectable.
func (s *System) Run(w *core.World, now time.Time) {
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	entities := w.PhysicsEntities()
	for i, e := range entities {
		delta := e.Phys.Velocity.Scale(dt)

		foot := e.Footprint()
		afterX := foot.Translated(delta.X(), 0)
		afterY := foot.Translated(0, delta.Y())

		collided := false
		final := delta
		for j, other := range entities {
			if j == i {
				continue
			}
			otherFoot := other.Footprint()
			xHit := afterX.Intersects(otherFoot)
			yHit := afterY.Intersects(otherFoot)
			if !xHit && !yHit {
				continue
			}

			// Contact is reported even when nobody blocks; interaction
			// logic keys off the tag, not the physical flag.
			collided = true

			if !e.Phys.Physical || !other.Phys.Physical {
				continue
			}
			switch {
			case xHit && yHit:
				final = vmath.New(delta.Dir, 0)
			case xHit:
				// Keep only the vertical component.
				final = vmath.New(math.Pi/2, math.Abs(delta.Mag*math.Sin(delta.Dir)))
			default:
				// Keep only the horizontal component.
				final = vmath.New(0, math.Abs(delta.Mag*math.Cos(delta.Dir)))
			}
		}

		if collided {
			e.States.Add(core.TagColliding)
		} else {
			e.States.Remove(core.TagColliding)
		}

		e.Pos.X += final.X()
		e.Pos.Y += final.Y()
	}
}
