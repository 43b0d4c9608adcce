// Package core holds the entity-component world store: parallel containers
// of optional components indexed by entity id, plus the per-entity tag sets
// the systems communicate through.
package core

import (
	"sort"
	"time"

	"github.com/tilde-games/overworld/engine/geom"
)

// EntityID is an index into every parallel component container of a World.
// Ids are only ever produced by AddEntity; holding any other value is a
// programming error and accessors will panic on it.
type EntityID int

// NoEntity marks an id that currently refers to nothing, e.g. a monster
// that is not materialized in the loaded scene.
const NoEntity EntityID = -1

// Tags published by the core systems. Tag membership is the only channel
// by which physics and AI report behavioral facts to the rest of the engine.
const (
	TagColliding = "colliding"
	TagWalking   = "walking"
	TagIdle      = "idle"
	TagAggro     = "aggro"
	TagLost      = "lost"
)

// StateSet is an entity's tag set. Insertion order is irrelevant and
// membership is unique; Add and Remove are idempotent.
type StateSet map[string]struct{}

// Add inserts the tag.
func (s StateSet) Add(tag string) {
	s[tag] = struct{}{}
}

// Remove deletes the tag.
func (s StateSet) Remove(tag string) {
	delete(s, tag)
}

// Has reports whether the tag is present.
func (s StateSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// List returns the tags sorted, for deterministic display.
func (s StateSet) List() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Refs names the distinguished entities of a loaded scene. Scene loaders
// fill it in so systems never assume fixed array positions.
type Refs struct {
	Player  EntityID
	Monster EntityID
}

// World is a struct-of-arrays store. Every container always has the same
// length; index i across all of them denotes the i-th entity. Components
// are optional (nil), and iterators skip entities missing a required one.
type World struct {
	states     []StateSet
	positions  []*Position
	physics    []*Physics
	graphics   []*Graphics
	actions    []*ActionTable
	animations []*AnimationSet

	// Effects are spawned by scripted actions and consumed by the effect
	// system; they are world state, not entity components.
	Effects []*Effect
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}

// AddEntity appends a fresh tag set and the given optional components to
// every container simultaneously and returns the new entity's id.
func (w *World) AddEntity(pos *Position, phys *Physics, gfx *Graphics, act *ActionTable, anim *AnimationSet) EntityID {
	w.states = append(w.states, StateSet{})
	w.positions = append(w.positions, pos)
	w.physics = append(w.physics, phys)
	w.graphics = append(w.graphics, gfx)
	w.actions = append(w.actions, act)
	w.animations = append(w.animations, anim)
	return EntityID(len(w.states) - 1)
}

// Len returns the number of entities.
func (w *World) Len() int {
	return len(w.states)
}

// Reset truncates every container back to the first keep entities and drops
// all effects. Scene reload calls this; entities are never removed one at a
// time.
func (w *World) Reset(keep int) {
	w.states = w.states[:keep]
	w.positions = w.positions[:keep]
	w.physics = w.physics[:keep]
	w.graphics = w.graphics[:keep]
	w.actions = w.actions[:keep]
	w.animations = w.animations[:keep]
	w.Effects = nil
}

// ---- Per-entity accessors ----
//
// All accessors panic on an out-of-range id: callers only ever hold ids
// returned by AddEntity, so a bad index is a bug, not a recoverable error.

// StatesOf returns the entity's tag set.
func (w *World) StatesOf(id EntityID) StateSet {
	return w.states[id]
}

// PositionOf returns the entity's position component, or nil.
func (w *World) PositionOf(id EntityID) *Position {
	return w.positions[id]
}

// PhysicsOf returns the entity's physics component, or nil.
func (w *World) PhysicsOf(id EntityID) *Physics {
	return w.physics[id]
}

// GraphicsOf returns the entity's graphics component, or nil.
func (w *World) GraphicsOf(id EntityID) *Graphics {
	return w.graphics[id]
}

// ActionsOf returns the entity's action table, or nil.
func (w *World) ActionsOf(id EntityID) *ActionTable {
	return w.actions[id]
}

// AnimationsOf returns the entity's animation set, or nil.
func (w *World) AnimationsOf(id EntityID) *AnimationSet {
	return w.animations[id]
}

// AddEntityState inserts a tag into the entity's tag set. Idempotent.
func (w *World) AddEntityState(id EntityID, tag string) {
	w.states[id].Add(tag)
}

// RemoveEntityState removes a tag from the entity's tag set. Idempotent.
func (w *World) RemoveEntityState(id EntityID, tag string) {
	w.states[id].Remove(tag)
}

// HasEntityState reports whether the entity holds the tag.
func (w *World) HasEntityState(id EntityID, tag string) bool {
	return w.states[id].Has(tag)
}

// AddEffect stamps the effect's creation time and places it in the world.
func (w *World) AddEffect(e Effect, now time.Time) {
	e.Created = now
	w.Effects = append(w.Effects, &e)
}

// ---- Filtered iteration ----
//
// Each entry bundles the entity id, its tag set and pointers to the
// components the caller filtered on. Component pointers make reading and
// mutating the same API, and let a system mutate the tag set and one
// component for the same index without touching the other containers.

// PositionEntry is an entity that has a position.
type PositionEntry struct {
	ID     EntityID
	States StateSet
	Pos    *Position
}

// PositionEntities returns every entity with a Position, in index order.
func (w *World) PositionEntities() []PositionEntry {
	entries := make([]PositionEntry, 0, len(w.states))
	for i, pos := range w.positions {
		if pos == nil {
			continue
		}
		entries = append(entries, PositionEntry{EntityID(i), w.states[i], pos})
	}
	return entries
}

// PhysicsEntry is an entity that has both a position and physics.
type PhysicsEntry struct {
	ID     EntityID
	States StateSet
	Pos    *Position
	Phys   *Physics
}

// Footprint returns the entity's current footprint rectangle.
func (e PhysicsEntry) Footprint() geom.Rect {
	return e.Phys.FootprintAt(e.Pos)
}

// PhysicsEntities returns every entity with Position and Physics, in index
// order. Physics without a position is legal and simply not yielded.
func (w *World) PhysicsEntities() []PhysicsEntry {
	entries := make([]PhysicsEntry, 0, len(w.states))
	for i, phys := range w.physics {
		if phys == nil || w.positions[i] == nil {
			continue
		}
		entries = append(entries, PhysicsEntry{EntityID(i), w.states[i], w.positions[i], phys})
	}
	return entries
}

// GraphicsEntry is an entity that has a position and graphics.
type GraphicsEntry struct {
	ID     EntityID
	States StateSet
	Pos    *Position
	Gfx    *Graphics
}

// GraphicsEntities returns every entity with Position and Graphics, in
// index order.
func (w *World) GraphicsEntities() []GraphicsEntry {
	entries := make([]GraphicsEntry, 0, len(w.states))
	for i, gfx := range w.graphics {
		if gfx == nil || w.positions[i] == nil {
			continue
		}
		entries = append(entries, GraphicsEntry{EntityID(i), w.states[i], w.positions[i], gfx})
	}
	return entries
}

// AnimationEntry is an entity that has graphics and animations.
type AnimationEntry struct {
	ID     EntityID
	States StateSet
	Gfx    *Graphics
	Anim   *AnimationSet
}

// AnimationEntities returns every entity with Graphics and an AnimationSet,
// in index order.
func (w *World) AnimationEntities() []AnimationEntry {
	entries := make([]AnimationEntry, 0, len(w.states))
	for i, anim := range w.animations {
		if anim == nil || w.graphics[i] == nil {
			continue
		}
		entries = append(entries, AnimationEntry{EntityID(i), w.states[i], w.graphics[i], anim})
	}
	return entries
}

// ActionEntry is an entity that has an action table.
type ActionEntry struct {
	ID      EntityID
	States  StateSet
	Actions *ActionTable
}

// ActionEntities returns every entity with an ActionTable, in index order.
func (w *World) ActionEntities() []ActionEntry {
	entries := make([]ActionEntry, 0, len(w.states))
	for i, act := range w.actions {
		if act == nil {
			continue
		}
		entries = append(entries, ActionEntry{EntityID(i), w.states[i], act})
	}
	return entries
}
