package ai

import (
	"time"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/scene"
)

// teleportDelay is how long an aggroed monster takes to follow the player
// through a scene transition.
const teleportDelay = 5 * time.Second

// Blueprint is everything needed to materialize the monster in a world.
// Scene loaders never spawn the roaming monster; the roamer does, so the
// monster exists in at most one scene's entity array at a time.
type Blueprint struct {
	Hitbox    geom.Rect
	Depth     int
	Physical  bool
	Sprite    string
	RenderBox geom.Rect
}

func (b Blueprint) spawn(w *core.World, x, y float64) core.EntityID {
	id := w.AddEntity(
		core.NewPosition(x, y),
		core.NewPhysics(b.Hitbox, b.Depth, b.Physical),
		core.NewGraphics(b.Sprite, b.RenderBox),
		nil, nil,
	)
	w.AddEntityState(id, core.TagIdle)
	return id
}

// Roamer runs a monster controller across scene boundaries. The monster
// logically belongs to one scene at a time; while the player is elsewhere
// its patrol is simulated on this side without a real entity, and an
// aggroed monster follows the player into the new scene after a delay.
type Roamer struct {
	sys       *System
	blueprint Blueprint

	// homeScene is the scene the monster logically belongs to right now.
	homeScene string
	// loadedScene is the scene seen on the previous tick, for detecting
	// transitions.
	loadedScene string
	// monster is the live entity id, or NoEntity while off-scene.
	monster core.EntityID

	// Simulated absolute position, mirrored every tick while materialized.
	simX, simY float64
	// lastWaypointAt anchors the off-scene patrol interpolation.
	lastWaypointAt time.Time

	teleportPending      bool
	teleportAt           time.Time
	teleportX, teleportY float64
}

// NewRoamer returns a roamer whose monster starts parked at the first
// waypoint of its home scene.
func NewRoamer(cfg Config, blueprint Blueprint, homeScene string, now time.Time) *Roamer {
	r := &Roamer{
		sys:            New(cfg, core.Refs{Player: core.NoEntity, Monster: core.NoEntity}, now),
		blueprint:      blueprint,
		homeScene:      homeScene,
		monster:        core.NoEntity,
		lastWaypointAt: now,
	}
	if len(cfg.IdlePath) > 0 {
		r.simX, r.simY = cfg.IdlePath[0].X, cfg.IdlePath[0].Y
		r.sys.nextIdle = 1 % len(cfg.IdlePath)
	}
	return r
}

// State returns the behavior state of the underlying controller.
func (r *Roamer) State() State {
	return r.sys.State()
}

// Monster returns the live entity id, or NoEntity while the monster is not
// materialized in the loaded scene.
func (r *Roamer) Monster() core.EntityID {
	return r.monster
}

// Scene returns the scene the monster logically belongs to.
func (r *Roamer) Scene() string {
	return r.homeScene
}

// Run advances the monster for one tick against the loaded scene.
func (r *Roamer) Run(m *scene.Manager, now time.Time) {
	cur := m.Current()

	if cur.Name != r.loadedScene {
		r.onSceneSwitch(cur, now)
		r.loadedScene = cur.Name
	}

	if r.homeScene != cur.Name {
		// The monster lives elsewhere: keep its patrol moving on paper.
		r.simulateIdle(now)
		return
	}

	if r.monster == core.NoEntity {
		if r.teleportPending {
			if now.Before(r.teleportAt) {
				return
			}
			r.monster = r.blueprint.spawn(cur.World, r.teleportX, r.teleportY)
			r.simX, r.simY = r.teleportX, r.teleportY
			r.teleportPending = false
		} else {
			// Home scene re-entered: restore the tracked/simulated position.
			r.simulateIdle(now)
			r.monster = r.blueprint.spawn(cur.World, r.simX, r.simY)
		}
		r.publishState(cur.World)
	}

	r.sys.refs = core.Refs{Player: cur.Refs.Player, Monster: r.monster}
	r.sys.Run(cur.World, now)

	pos := cur.World.PositionOf(r.monster)
	r.simX, r.simY = pos.X, pos.Y
}

// onSceneSwitch handles the loaded scene changing away from wherever the
// monster was materialized.
func (r *Roamer) onSceneSwitch(cur *scene.Scene, now time.Time) {
	if r.monster == core.NoEntity {
		return
	}
	// The scene that held the monster was just unloaded; its entity array
	// is gone with it. simX/simY still hold the last materialized position.
	r.monster = core.NoEntity

	if r.sys.State() == Aggro {
		// Chase through the boundary: arrive at the player's footprint
		// after a fixed delay. The monster now belongs to the new scene.
		pFoot := footprintOf(cur.World, cur.Refs.Player)
		r.teleportPending = true
		r.teleportAt = now.Add(teleportDelay)
		r.teleportX, r.teleportY = pFoot.X, pFoot.Y
		r.homeScene = cur.Name
		return
	}

	// Not aggroed: park at the nearest waypoint and patrol on paper toward
	// the following one.
	path := r.sys.cfg.IdlePath
	if len(path) > 0 {
		idx := nearestWaypoint(path, r.simX, r.simY)
		r.simX, r.simY = path[idx].X, path[idx].Y
		r.sys.nextIdle = (idx + 1) % len(path)
	}
	r.sys.state = Idle
	r.lastWaypointAt = now
}

// simulateIdle advances the off-scene patrol: the position interpolates
// linearly from the previously reached waypoint to the next one over the
// next waypoint's wait duration, then moves on.
func (r *Roamer) simulateIdle(now time.Time) {
	path := r.sys.cfg.IdlePath
	if len(path) == 0 {
		return
	}

	for {
		next := path[r.sys.nextIdle]
		if next.Wait <= 0 {
			r.simX, r.simY = next.X, next.Y
			return
		}
		frac := now.Sub(r.lastWaypointAt).Seconds() / next.Wait
		if frac < 1 {
			prev := path[(r.sys.nextIdle+len(path)-1)%len(path)]
			r.simX = prev.X + (next.X-prev.X)*frac
			r.simY = prev.Y + (next.Y-prev.Y)*frac
			return
		}
		// Waypoint reached on paper; continue into the following leg.
		r.simX, r.simY = next.X, next.Y
		r.sys.nextIdle = (r.sys.nextIdle + 1) % len(path)
		r.lastWaypointAt = r.lastWaypointAt.Add(time.Duration(next.Wait * float64(time.Second)))
	}
}

// publishState mirrors the controller state into the freshly spawned
// monster's tag set.
func (r *Roamer) publishState(w *core.World) {
	if r.monster == core.NoEntity {
		return
	}
	states := w.StatesOf(r.monster)
	states.Remove(core.TagIdle)
	states.Add(r.sys.State().String())
}
