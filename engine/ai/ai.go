// Package ai drives one monster entity against one player entity through a
// three-state behavior machine: patrol a waypoint loop while idle, pursue
// the player while it is visible and close, stand down after losing sight.
// Visibility is a footprint-center line-of-sight test against every other
// entity's footprint.
package ai

import (
	"math"
	"time"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/vmath"
)

// State is the monster's current behavior.
type State uint8

const (
	Idle State = iota
	Aggro
	Lost
)

// String returns the tag name published for the state.
func (s State) String() string {
	switch s {
	case Aggro:
		return core.TagAggro
	case Lost:
		return core.TagLost
	default:
		return core.TagIdle
	}
}

// Waypoint is one stop on the idle patrol loop.
type Waypoint struct {
	X, Y float64
	// Wait is the dwell budget in seconds; off-scene idle simulation also
	// uses it as the travel time toward this waypoint.
	Wait float64
}

// Config are the behavior thresholds of one monster.
type Config struct {
	// IdlePath is the cyclic patrol route walked while no player is in
	// sight.
	IdlePath []Waypoint
	// AggroDistance is the pursuit trigger radius in world units.
	AggroDistance float64
	// LostDelay is how long the monster searches after losing sight before
	// returning to its patrol, in seconds.
	LostDelay float64
}

const (
	idleSpeed      = 60.0
	waypointRadius = 2.0

	// Pursuit pace wobbles around its base instead of replanning a path
	// every tick; the constants come straight from the tuned original.
	pursuitBase   = 57.0
	pursuitAmp    = 20.0
	pursuitWobble = 5.0

	// Facing only flips once the horizontal velocity leaves this dead band,
	// so a vertically walking monster keeps its facing.
	facingDeadBand = 0.1
)

// System is the finite-state controller for one monster chasing one player.
// It is not a world component: it survives scene resets.
type System struct {
	cfg  Config
	refs core.Refs

	state      State
	nextIdle   int
	lastAggro  time.Time
	lastIdle   time.Time
	lastReplan time.Time

	// published is set once the state tag has been mirrored into the
	// monster's tag set; setState only fires on transitions, so the
	// initial state is published explicitly on the first Run.
	published bool
}

// New returns a controller for the entities named by refs, starting idle
// toward the first waypoint.
func New(cfg Config, refs core.Refs, now time.Time) *System {
	return &System{
		cfg:        cfg,
		refs:       refs,
		state:      Idle,
		lastAggro:  now,
		lastIdle:   now,
		lastReplan: now,
	}
}

// State returns the current behavior state.
func (s *System) State() State {
	return s.state
}

// NextIdle returns the index of the waypoint currently walked toward.
func (s *System) NextIdle() int {
	return s.nextIdle
}

// Run evaluates transitions and then the per-state behavior, once. Must be
// called after the physics pass so it sees post-collision positions.
func (s *System) Run(w *core.World, now time.Time) {
	monster := s.refs.Monster
	player := s.refs.Player

	if !s.published {
		w.AddEntityState(monster, s.state.String())
		s.published = true
	}

	if s.Visible(w, monster, player) {
		pos := w.PositionOf(player)
		if s.distFrom(w, monster, pos.X, pos.Y) < s.cfg.AggroDistance {
			s.markAggro(now)
			s.setState(w, monster, Aggro)
		}
	} else if s.state == Aggro {
		s.lastAggro = now
		s.setState(w, monster, Lost)
	}

	switch s.state {
	case Idle:
		if len(s.cfg.IdlePath) == 0 {
			return
		}
		wp := s.cfg.IdlePath[s.nextIdle]
		if s.distFrom(w, monster, wp.X, wp.Y) < waypointRadius {
			s.nextIdle = (s.nextIdle + 1) % len(s.cfg.IdlePath)
			s.lastIdle = now
			return
		}
		s.goTo(w, monster, wp.X, wp.Y, idleSpeed)

	case Aggro:
		foot := footprintOf(w, player)
		speed := pursuitBase + pursuitAmp*math.Sin(pursuitWobble*now.Sub(s.lastReplan).Seconds())
		s.goTo(w, monster, foot.X, foot.Y, speed)

	case Lost:
		s.stop(w, monster)
		if now.Sub(s.lastAggro).Seconds() > s.cfg.LostDelay {
			s.setState(w, monster, Idle)
			foot := footprintOf(w, monster)
			s.nextIdle = nearestWaypoint(s.cfg.IdlePath, foot.X, foot.Y)
		}
	}
}

// Visible reports whether the straight segment between the two entities'
// footprint centers crosses no other entity's footprint. Every other entity
// is opaque, physical or not.
func (s *System) Visible(w *core.World, monster, player core.EntityID) bool {
	mFoot := footprintOf(w, monster)
	pFoot := footprintOf(w, player)

	mx, my := mFoot.CenterX(), mFoot.CenterY()
	px, py := pFoot.CenterX(), pFoot.CenterY()

	for _, e := range w.PhysicsEntities() {
		if e.ID == monster || e.ID == player {
			continue
		}
		if e.Footprint().IntersectsLine(mx, my, px, py) {
			return false
		}
	}
	return true
}

// setState switches the behavior state and mirrors it into the monster's
// tag set for animation and action consumers.
func (s *System) setState(w *core.World, monster core.EntityID, next State) {
	if next == s.state {
		return
	}
	states := w.StatesOf(monster)
	states.Remove(s.state.String())
	states.Add(next.String())
	s.state = next
}

// markAggro stamps the pursuit start so the pace wobble's phase begins at
// zero when the chase does.
func (s *System) markAggro(now time.Time) {
	if s.state != Aggro {
		s.lastReplan = now
	}
}

// goTo steers the monster's velocity toward (x, y) at the given speed,
// starting from its footprint origin, and updates walking/facing state.
func (s *System) goTo(w *core.World, monster core.EntityID, x, y, speed float64) {
	foot := footprintOf(w, monster)
	angle := math.Atan2(y-foot.Y, x-foot.X)

	phys := w.PhysicsOf(monster)
	phys.Velocity = vmath.New(angle, speed)
	w.AddEntityState(monster, core.TagWalking)

	if gfx := w.GraphicsOf(monster); gfx != nil {
		vx := phys.Velocity.X()
		switch {
		case vx >= facingDeadBand:
			gfx.Flipped = false
		case vx <= -facingDeadBand:
			gfx.Flipped = true
		}
	}
}

// stop zeroes the monster's speed, keeping its direction.
func (s *System) stop(w *core.World, monster core.EntityID) {
	w.PhysicsOf(monster).Velocity.Mag = 0
	w.RemoveEntityState(monster, core.TagWalking)
}

// distFrom measures from the monster's footprint origin to (x, y).
func (s *System) distFrom(w *core.World, monster core.EntityID, x, y float64) float64 {
	foot := footprintOf(w, monster)
	return math.Hypot(foot.X-x, foot.Y-y)
}

func footprintOf(w *core.World, id core.EntityID) geom.Rect {
	return w.PhysicsOf(id).FootprintAt(w.PositionOf(id))
}

// nearestWaypoint returns the index of the waypoint closest to (x, y) by
// Euclidean distance, ties broken by array order.
func nearestWaypoint(path []Waypoint, x, y float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, wp := range path {
		d := math.Hypot(wp.X-x, wp.Y-y)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
