package core

import "time"

// The scripted-action vocabulary is a closed set of operations: tags move
// through the tag set, effects are spawned into the world, and dialog is
// handed to the front-end. Keeping the set closed (a kind switch rather than
// an open interface) lets consumers exhaustively handle every op.

// OpKind discriminates the scripted operations.
type OpKind uint8

const (
	OpAddTag OpKind = iota
	OpRemoveTag
	OpSpawnEffect
	OpShowDialog
)

// Op is one scripted operation. Only the field matching Kind is meaningful.
type Op struct {
	Kind   OpKind
	Tag    string // OpAddTag, OpRemoveTag
	Effect Effect // OpSpawnEffect; Created is stamped at spawn time
	Dialog string // OpShowDialog
}

// AddTag returns an op that inserts the tag into the entity's tag set.
func AddTag(tag string) Op {
	return Op{Kind: OpAddTag, Tag: tag}
}

// RemoveTag returns an op that removes the tag from the entity's tag set.
func RemoveTag(tag string) Op {
	return Op{Kind: OpRemoveTag, Tag: tag}
}

// SpawnEffect returns an op that places the effect into the world.
func SpawnEffect(e Effect) Op {
	return Op{Kind: OpSpawnEffect, Effect: e}
}

// ShowDialog returns an op that asks the front-end to display the named
// dialog.
func ShowDialog(name string) Op {
	return Op{Kind: OpShowDialog, Dialog: name}
}

// Step is an op held for a duration within a sequence.
type Step struct {
	Duration float64 // seconds before the sequence moves on
	Op       Op
}

// Sequence cycles through timed steps. The current step's op is applied
// every tick until its duration elapses; the sequence then advances and
// wraps at the end.
type Sequence struct {
	Steps []Step

	idx        int
	lastSwitch time.Time
}

// NewSequence returns a sequence over the given steps.
func NewSequence(steps []Step) *Sequence {
	return &Sequence{Steps: steps}
}

// Current returns the op of the active step.
func (s *Sequence) Current() Op {
	return s.Steps[s.idx].Op
}

// Advance moves to the next step once the active step's duration has
// elapsed, wrapping to the first step after the last.
func (s *Sequence) Advance(now time.Time) {
	if s.lastSwitch.IsZero() {
		s.lastSwitch = now
	}
	if now.Sub(s.lastSwitch).Seconds() >= s.Steps[s.idx].Duration {
		s.idx = (s.idx + 1) % len(s.Steps)
		s.lastSwitch = now
	}
}

// ActionTable maps a tag to the sequence that runs while an entity holds
// that tag.
type ActionTable struct {
	Sequences map[string]*Sequence
}

// NewActionTable returns an action table over the given tag-keyed sequences.
func NewActionTable(sequences map[string]*Sequence) *ActionTable {
	return &ActionTable{Sequences: sequences}
}
