package effect

import (
	"testing"
	"time"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/geom"
)

func baseTime() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func addBox(w *core.World, x, y float64) core.EntityID {
	return w.AddEntity(core.NewPosition(x, y),
		core.NewPhysics(geom.NewRect(0, 0, 4, 4), 4, true), nil, nil, nil)
}

func TestEffectGrantsAndRevokesTag(t *testing.T) {
	w := core.NewWorld()
	inside := addBox(w, 10, 10)
	outside := addBox(w, 100, 100)

	now := baseTime()
	w.AddEffect(core.Effect{Name: "burning", Area: geom.NewRect(8, 8, 10, 10)}, now)

	sys := New()
	sys.Run(w, now)

	if !w.HasEntityState(inside, "burning") {
		t.Fatal("entity inside effect not tagged")
	}
	if w.HasEntityState(outside, "burning") {
		t.Fatal("entity outside effect tagged")
	}

	// Step out: the tag goes away.
	pos := w.PositionOf(inside)
	pos.X, pos.Y = 100, 0
	sys.Run(w, now.Add(time.Second))
	if w.HasEntityState(inside, "burning") {
		t.Fatal("tag kept after leaving the effect")
	}
}

func TestExpiredEffectIsPrunedAndRevoked(t *testing.T) {
	w := core.NewWorld()
	id := addBox(w, 10, 10)

	now := baseTime()
	w.AddEffect(core.Effect{Name: "blessed", Area: geom.NewRect(0, 0, 50, 50), TTL: 2}, now)

	sys := New()
	sys.Run(w, now)
	if !w.HasEntityState(id, "blessed") {
		t.Fatal("tag not granted")
	}

	sys.Run(w, now.Add(3*time.Second))
	if len(w.Effects) != 0 {
		t.Fatalf("effects = %d after expiry, want 0", len(w.Effects))
	}
	if w.HasEntityState(id, "blessed") {
		t.Fatal("tag survived effect expiry")
	}
}

func TestOverlappingSameNameEffects(t *testing.T) {
	// Two effects with the same name: the tag holds while the entity is
	// inside either one.
	w := core.NewWorld()
	id := addBox(w, 0, 0)

	now := baseTime()
	w.AddEffect(core.Effect{Name: "zone", Area: geom.NewRect(-5, -5, 10, 10), TTL: 1}, now)
	w.AddEffect(core.Effect{Name: "zone", Area: geom.NewRect(-5, -5, 20, 20)}, now)

	sys := New()
	sys.Run(w, now.Add(2*time.Second)) // first effect expired
	if !w.HasEntityState(id, "zone") {
		t.Fatal("tag lost although a live same-name effect still covers the entity")
	}
}
