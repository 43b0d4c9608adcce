// Package effect applies the world's area effects to the entities standing
// in them: an entity whose footprint overlaps a live effect holds the
// effect's name as a tag, and loses it when it steps out or the effect
// expires.
package effect

import (
	"time"

	"github.com/tilde-games/overworld/engine/core"
)

// System prunes expired effects and keeps effect tags in sync.
type System struct{}

// New returns an effect system.
func New() *System {
	return &System{}
}

// Run drops expired effects, then grants or revokes each remaining effect
// name on every positioned physical entity depending on footprint overlap.
func (s *System) Run(w *core.World, now time.Time) {
	// Track every name seen this tick, expired ones included, so a tag
	// granted by an effect that just timed out is revoked below.
	live := w.Effects[:0]
	names := make(map[string]struct{})
	for _, e := range w.Effects {
		names[e.Name] = struct{}{}
		if e.Expired(now) {
			continue
		}
		live = append(live, e)
	}
	w.Effects = live

	for _, entity := range w.PhysicsEntities() {
		foot := entity.Footprint()
		inside := make(map[string]struct{})
		for _, e := range w.Effects {
			if e.Area.Intersects(foot) {
				inside[e.Name] = struct{}{}
			}
		}
		for name := range names {
			if _, ok := inside[name]; ok {
				entity.States.Add(name)
			} else {
				entity.States.Remove(name)
			}
		}
	}
}
