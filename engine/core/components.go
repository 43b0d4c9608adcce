package core

import (
	"time"

	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/vmath"
)

// ---- Position ----

// Position is a point in world units. It is mutated only by the physics
// system (applied displacement) and by scene load / teleport logic.
type Position struct {
	X, Y float64
}

// NewPosition returns a position component at (x, y).
func NewPosition(x, y float64) *Position {
	return &Position{X: x, Y: y}
}

// ---- Physics ----

// Physics carries the collision geometry and motion state of an entity.
// It only has an effect when the entity also has a Position.
type Physics struct {
	// Hitbox is the entity's full rectangle, relative to its Position.
	Hitbox geom.Rect
	// Depth substitutes for the hitbox height when computing the footprint:
	// only the bottom Depth units of the hitbox collide. This is the 2.5-D
	// "standing point" of a sprite that is visually taller than it is deep.
	Depth int
	// Physical entities block and are blocked. Non-physical entities still
	// report the colliding tag but are never displaced and never block.
	Physical bool
	// Velocity is set by input and AI; physics only reads and projects it.
	Velocity vmath.Vector
}

// NewPhysics returns a physics component with the given hitbox, depth and
// physicality, at rest.
func NewPhysics(hitbox geom.Rect, depth int, physical bool) *Physics {
	return &Physics{Hitbox: hitbox, Depth: depth, Physical: physical}
}

// FootprintAt returns the footprint rectangle for the given position:
// the hitbox translated to the position, reduced to its bottom Depth units.
func (p *Physics) FootprintAt(pos *Position) geom.Rect {
	return p.Hitbox.Translated(pos.X, pos.Y).Footprint(float64(p.Depth))
}

// ---- Graphics ----

// Graphics is the render state of an entity. The simulation core writes
// Flipped (facing) and Frame (animation selection); rendering reads it.
type Graphics struct {
	// Sprite names the texture or glyph the front-end should draw.
	Sprite string
	// RenderBox is the on-screen rectangle, relative to Position.
	RenderBox geom.Rect
	// Flipped mirrors the sprite horizontally (entity facing -x).
	Flipped bool
	// Frame is the current animation frame name, or "" for the base sprite.
	Frame string
}

// NewGraphics returns a graphics component drawing the named sprite in the
// given box.
func NewGraphics(sprite string, renderBox geom.Rect) *Graphics {
	return &Graphics{Sprite: sprite, RenderBox: renderBox}
}

// ---- Animation ----

// Animation is a cyclic list of frame names advanced on a fixed period.
type Animation struct {
	Frames []string
	Period float64 // seconds between frame switches

	frame      int
	lastSwitch time.Time
}

// NewAnimation returns an animation cycling the given frames. At least one
// frame is required; an empty animation is a programming error.
func NewAnimation(frames []string, period float64) *Animation {
	if len(frames) == 0 {
		panic("core: animation with no frames")
	}
	return &Animation{Frames: frames, Period: period}
}

// Tick advances to the next frame if the period has elapsed and returns the
// current frame name.
func (a *Animation) Tick(now time.Time) string {
	if a.lastSwitch.IsZero() {
		a.lastSwitch = now
	}
	if now.Sub(a.lastSwitch).Seconds() > a.Period {
		a.frame = (a.frame + 1) % len(a.Frames)
		a.lastSwitch = now
	}
	return a.Frames[a.frame]
}

// AnimationSet maps a tag to the animation shown while the tag is held.
type AnimationSet struct {
	Animations map[string]*Animation
}

// NewAnimationSet returns an animation set over the given tag-keyed
// animations.
func NewAnimationSet(animations map[string]*Animation) *AnimationSet {
	return &AnimationSet{Animations: animations}
}

// ---- Effects ----

// Effect is an area of the world that grants its name as a tag to every
// entity whose footprint overlaps it.
type Effect struct {
	Name string
	Area geom.Rect
	// TTL is the effect lifetime in seconds; zero means the effect never
	// expires on its own.
	TTL     float64
	Created time.Time
}

// Expired reports whether the effect's lifetime has passed.
func (e *Effect) Expired(now time.Time) bool {
	if e.TTL == 0 {
		return false
	}
	return now.Sub(e.Created).Seconds() > e.TTL
}
