// Profiling:
// go build ./cmd/simbench
// go tool pprof -http=":8000" -nodefraction=0.001 ./simbench cpu.pprof

package main

import (
	"flag"
	"log"
	"time"

	"github.com/pkg/profile"

	"github.com/tilde-games/overworld/engine/ai"
	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/effect"
	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/pathfind"
	"github.com/tilde-games/overworld/engine/physics"
	"github.com/tilde-games/overworld/engine/scene"
	"github.com/tilde-games/overworld/engine/vmath"
)

func main() {
	ticks := flag.Int("ticks", 100000, "simulation ticks to run")
	walls := flag.Int("walls", 200, "wall entities per scene")
	mem := flag.Bool("mem", false, "profile allocations instead of CPU")
	flag.Parse()

	mode := profile.CPUProfile
	if *mem {
		mode = profile.MemProfileAllocs
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
	run(*ticks, *walls)
	p.Stop()
}

// run drives a headless field scene at a fixed 60Hz virtual clock: one
// player circling the patrol area, one roaming monster, a grid of walls.
func run(ticks, walls int) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	scenes := scene.NewManager()
	scenes.Add("field", func() (*core.World, core.Refs) {
		return buildField(walls)
	})

	phys := physics.New(now)
	effects := effect.New()
	roamer := ai.NewRoamer(ai.Config{
		IdlePath: []ai.Waypoint{
			{X: 100, Y: 100, Wait: 1},
			{X: 900, Y: 100, Wait: 1},
			{X: 900, Y: 900, Wait: 1},
			{X: 100, Y: 900, Wait: 1},
		},
		AggroDistance: 250,
		LostDelay:     3,
	}, ai.Blueprint{
		Hitbox:   geom.NewRect(0, 0, 24, 32),
		Depth:    8,
		Physical: true,
	}, "field", now)

	const dt = time.Second / 60
	start := time.Now()
	for i := 0; i < ticks; i++ {
		now = now.Add(dt)
		cur := scenes.Current()

		// Swing the player around so the monster keeps flipping between
		// idle, aggro and lost.
		if p := cur.World.PhysicsOf(cur.Refs.Player); p != nil {
			p.Velocity = vmath.New(float64(i%628)/100.0, 90)
		}

		phys.Run(cur.World, now)
		roamer.Run(scenes, now)
		effects.Run(cur.World, now)

		// Route planning load: replan a step through the wall grid each
		// tick, the way a pursuit controller re-invokes the search.
		if roamer.Monster() != core.NoEntity {
			mPos := cur.World.PositionOf(roamer.Monster())
			pPos := cur.World.PositionOf(cur.Refs.Player)
			pathfind.FirstStepAvoiding(
				pathfind.Point{X: int(mPos.X), Y: int(mPos.Y)},
				pathfind.Point{X: int(pPos.X), Y: int(pPos.Y)},
				20,
				func(pt pathfind.Point) bool { return blockedAt(cur.World, pt) },
			)
		}
	}
	elapsed := time.Since(start)

	cur := scenes.Current()
	log.Printf("%d ticks, %d entities: %v (%v/tick)",
		ticks, cur.World.Len(), elapsed, elapsed/time.Duration(ticks))
}

// blockedAt reports whether a grid point lies inside any physical footprint.
func blockedAt(w *core.World, pt pathfind.Point) bool {
	probe := geom.NewRect(float64(pt.X), float64(pt.Y), 1, 1)
	for _, e := range w.PhysicsEntities() {
		if e.Phys.Physical && e.Footprint().Intersects(probe) {
			return true
		}
	}
	return false
}

func buildField(walls int) (*core.World, core.Refs) {
	w := core.NewWorld()

	player := w.AddEntity(
		core.NewPosition(500, 500),
		core.NewPhysics(geom.NewRect(0, 0, 20, 28), 8, true),
		nil, nil, nil,
	)

	// Scatter walls on a grid, leaving lanes between them
	for i := 0; i < walls; i++ {
		x := float64(150 + (i%20)*40)
		y := float64(150 + (i/20)*60)
		w.AddEntity(
			core.NewPosition(x, y),
			core.NewPhysics(geom.NewRect(0, 0, 20, 20), 20, true),
			nil, nil, nil,
		)
	}

	w.AddEffect(core.Effect{Name: "warm", Area: geom.NewRect(400, 400, 200, 200)}, time.Time{})

	return w, core.Refs{Player: player, Monster: core.NoEntity}
}
