// Package action runs tag-triggered scripted sequences. An entity with an
// action table plays, for every tag it currently holds that maps to a
// sequence, that sequence's current op each tick; the sequence itself
// advances on its step timers. Ops are a closed set (see core.OpKind), so
// the dispatch below is an exhaustive switch rather than an open interface.
package action

import (
	"time"

	"github.com/tilde-games/overworld/engine/core"
)

// System dispatches scripted ops into the world.
type System struct {
	// ShowDialog is invoked for dialog ops; the front-end decides what
	// displaying a dialog means. May be nil.
	ShowDialog func(name string)
}

// New returns an action system with no dialog sink.
func New() *System {
	return &System{}
}

// Run plays the active step of every triggered sequence, then advances the
// sequence timers.
func (s *System) Run(w *core.World, now time.Time) {
	for _, entity := range w.ActionEntities() {
		// Tags are snapshotted first: an op may mutate the tag set while
		// we iterate.
		for _, tag := range entity.States.List() {
			seq, ok := entity.Actions.Sequences[tag]
			if !ok {
				continue
			}
			s.apply(w, entity.ID, seq.Current(), now)
			seq.Advance(now)
		}
	}
}

func (s *System) apply(w *core.World, id core.EntityID, op core.Op, now time.Time) {
	switch op.Kind {
	case core.OpAddTag:
		w.AddEntityState(id, op.Tag)
	case core.OpRemoveTag:
		w.RemoveEntityState(id, op.Tag)
	case core.OpSpawnEffect:
		// The op fires every tick while its step is active; respawning a
		// live same-name effect would flood the world, so the op is
		// idempotent against it.
		for _, e := range w.Effects {
			if e.Name == op.Effect.Name {
				return
			}
		}
		w.AddEffect(op.Effect, now)
	case core.OpShowDialog:
		if s.ShowDialog != nil {
			s.ShowDialog(op.Dialog)
		}
	}
}
