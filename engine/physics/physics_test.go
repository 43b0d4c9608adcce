package physics

import (
	"math"
	"testing"
	"time"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/vmath"
)

func baseTime() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func addBox(w *core.World, x, y float64, physical bool) core.EntityID {
	return w.AddEntity(
		core.NewPosition(x, y),
		core.NewPhysics(geom.NewRect(0, 0, 10, 10), 10, physical),
		nil, nil, nil,
	)
}

func TestFreeMovement(t *testing.T) {
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	w.PhysicsOf(a).Velocity = vmath.New(0, 10) // east, 10 units/s

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(500*time.Millisecond))

	pos := w.PositionOf(a)
	if math.Abs(pos.X-5) > 1e-9 || math.Abs(pos.Y) > 1e-9 {
		t.Fatalf("position = (%v, %v), want (5, 0)", pos.X, pos.Y)
	}
	if w.HasEntityState(a, core.TagColliding) {
		t.Fatal("colliding tag set with nothing around")
	}
}

func TestHeadOnBlockStopsBlockedAxis(t *testing.T) {
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	addBox(w, 15, 0, true)
	w.PhysicsOf(a).Velocity = vmath.New(0, 10) // toward B

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(time.Second)) // delta.x = 10, enough to reach B

	pos := w.PositionOf(a)
	if pos.X > 15-10 {
		t.Fatalf("A.x = %v, must not exceed B.x - A.w = 5", pos.X)
	}
	if !w.HasEntityState(a, core.TagColliding) {
		t.Fatal("colliding tag missing after block")
	}
}

func TestSlideAlongWall(t *testing.T) {
	// A moves diagonally down-right into a wall on its right: the x axis is
	// blocked, motion reprojects onto y.
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	addBox(w, 12, 0, true)
	w.PhysicsOf(a).Velocity = vmath.New(math.Pi/4, 10)

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(time.Second))

	pos := w.PositionOf(a)
	if pos.X != 0 {
		t.Fatalf("A.x = %v, want 0 (x axis blocked)", pos.X)
	}
	wantY := math.Abs(10 * math.Sin(math.Pi/4))
	if math.Abs(pos.Y-wantY) > 1e-9 {
		t.Fatalf("A.y = %v, want %v (vertical component kept)", pos.Y, wantY)
	}
}

func TestBothAxesBlockedFullStop(t *testing.T) {
	// B overlaps A's speculative footprints on both axes.
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	addBox(w, 8, 8, true)
	w.PhysicsOf(a).Velocity = vmath.New(math.Pi/4, 10)

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(time.Second))

	pos := w.PositionOf(a)
	if pos.X != 0 || pos.Y != 0 {
		t.Fatalf("position = (%v, %v), want (0, 0)", pos.X, pos.Y)
	}
}

func TestNonPhysicalReportsButNeverBlocks(t *testing.T) {
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	ghost := addBox(w, 12, 0, false)
	w.PhysicsOf(a).Velocity = vmath.New(0, 10)

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(time.Second))

	pos := w.PositionOf(a)
	if math.Abs(pos.X-10) > 1e-9 {
		t.Fatalf("A.x = %v, want 10 (ghost must not block)", pos.X)
	}
	if !w.HasEntityState(a, core.TagColliding) {
		t.Fatal("colliding tag missing against non-physical entity")
	}
	_ = ghost
}

func TestCollidingTagClearsWhenApart(t *testing.T) {
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	addBox(w, 12, 0, true)
	w.PhysicsOf(a).Velocity = vmath.New(0, 10)

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(time.Second))
	if !w.HasEntityState(a, core.TagColliding) {
		t.Fatal("expected colliding after first tick")
	}

	// Walk away from the wall.
	w.PhysicsOf(a).Velocity = vmath.New(math.Pi, 10)
	sys.Run(w, t0.Add(2*time.Second))
	if w.HasEntityState(a, core.TagColliding) {
		t.Fatal("colliding tag not cleared after separating")
	}
}

func TestLastPartnerWins(t *testing.T) {
	// A collides with two partners in one tick: one blocks only x, the later
	// one (by index) blocks both axes. The later partner's adjustment must
	// be the one applied.
	w := core.NewWorld()
	a := addBox(w, 0, 0, true)
	addBox(w, 12, -2, true) // blocks x only (y-shifted foot still overlaps afterX)
	addBox(w, 8, 8, true)   // blocks both axes
	w.PhysicsOf(a).Velocity = vmath.New(math.Pi/4, 10)

	t0 := baseTime()
	sys := New(t0)
	sys.Run(w, t0.Add(time.Second))

	pos := w.PositionOf(a)
	if pos.X != 0 || pos.Y != 0 {
		t.Fatalf("position = (%v, %v), want full stop from last partner", pos.X, pos.Y)
	}
}

func TestEntitiesWithoutPositionAreSkipped(t *testing.T) {
	w := core.NewWorld()
	w.AddEntity(nil, core.NewPhysics(geom.NewRect(0, 0, 10, 10), 10, true), nil, nil, nil)

	t0 := baseTime()
	sys := New(t0)
	// Must simply not panic or move anything.
	sys.Run(w, t0.Add(time.Second))
}
