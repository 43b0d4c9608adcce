// Package anim selects and advances entity animations from tags: the first
// held tag (in sorted order) that maps to an animation drives the entity's
// current frame.
package anim

import (
	"time"

	"github.com/tilde-games/overworld/engine/core"
)

// System writes the current animation frame into graphics components.
type System struct{}

// New returns an animation system.
func New() *System {
	return &System{}
}

// Run picks each animated entity's animation by tag and advances it.
func (s *System) Run(w *core.World, now time.Time) {
	for _, entity := range w.AnimationEntities() {
		anim := s.selected(entity)
		if anim == nil {
			entity.Gfx.Frame = ""
			continue
		}
		entity.Gfx.Frame = anim.Tick(now)
	}
}

func (s *System) selected(entity core.AnimationEntry) *core.Animation {
	for _, tag := range entity.States.List() {
		if a, ok := entity.Anim.Animations[tag]; ok {
			return a
		}
	}
	return nil
}
