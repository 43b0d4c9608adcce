package core

import (
	"testing"

	"github.com/tilde-games/overworld/engine/geom"
)

func containerLengths(w *World) []int {
	return []int{
		len(w.states), len(w.positions), len(w.physics),
		len(w.graphics), len(w.actions), len(w.animations),
	}
}

func TestAddEntityKeepsContainersParallel(t *testing.T) {
	w := NewWorld()

	ids := []EntityID{
		w.AddEntity(NewPosition(0, 0), nil, nil, nil, nil),
		w.AddEntity(nil, NewPhysics(geom.NewRect(0, 0, 1, 1), 1, true), nil, nil, nil),
		w.AddEntity(nil, nil, nil, nil, nil),
	}

	for i, id := range ids {
		if id != EntityID(i) {
			t.Errorf("entity %d got id %d", i, id)
		}
	}
	for _, n := range containerLengths(w) {
		if n != 3 {
			t.Fatalf("container lengths = %v, want all 3", containerLengths(w))
		}
	}
}

func TestStateMutationIsIdempotent(t *testing.T) {
	w := NewWorld()
	id := w.AddEntity(nil, nil, nil, nil, nil)

	w.AddEntityState(id, TagWalking)
	w.AddEntityState(id, TagWalking)
	if !w.HasEntityState(id, TagWalking) {
		t.Fatal("tag missing after double add")
	}
	if n := len(w.StatesOf(id)); n != 1 {
		t.Fatalf("tag set size = %d, want 1", n)
	}

	w.RemoveEntityState(id, TagWalking)
	w.RemoveEntityState(id, TagWalking)
	if w.HasEntityState(id, TagWalking) {
		t.Fatal("tag present after double remove")
	}
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range id")
		}
	}()
	w := NewWorld()
	w.StatesOf(0)
}

func TestIteratorsSkipIncompleteEntities(t *testing.T) {
	w := NewWorld()
	full := w.AddEntity(NewPosition(1, 2), NewPhysics(geom.NewRect(0, 0, 4, 4), 4, true), nil, nil, nil)
	w.AddEntity(nil, NewPhysics(geom.NewRect(0, 0, 4, 4), 4, true), nil, nil, nil) // physics, no position
	posOnly := w.AddEntity(NewPosition(3, 4), nil, nil, nil, nil)

	phys := w.PhysicsEntities()
	if len(phys) != 1 || phys[0].ID != full {
		t.Fatalf("PhysicsEntities = %+v, want only entity %d", phys, full)
	}

	positions := w.PositionEntities()
	if len(positions) != 2 {
		t.Fatalf("PositionEntities = %d entries, want 2", len(positions))
	}
	if positions[0].ID != full || positions[1].ID != posOnly {
		t.Fatalf("PositionEntities order = %d, %d", positions[0].ID, positions[1].ID)
	}
}

func TestIterationEntriesAliasStore(t *testing.T) {
	w := NewWorld()
	id := w.AddEntity(NewPosition(0, 0), NewPhysics(geom.NewRect(0, 0, 2, 2), 2, true), nil, nil, nil)

	for _, e := range w.PhysicsEntities() {
		e.Pos.X = 42
		e.States.Add(TagColliding)
	}

	if w.PositionOf(id).X != 42 {
		t.Error("position mutation through entry did not reach the store")
	}
	if !w.HasEntityState(id, TagColliding) {
		t.Error("tag mutation through entry did not reach the store")
	}
}

func TestFootprint(t *testing.T) {
	w := NewWorld()
	w.AddEntity(NewPosition(100, 200), NewPhysics(geom.NewRect(0, 0, 10, 20), 5, true), nil, nil, nil)

	e := w.PhysicsEntities()[0]
	want := geom.NewRect(100, 215, 10, 5)
	if got := e.Footprint(); got != want {
		t.Errorf("Footprint = %+v, want %+v", got, want)
	}
}

func TestResetTruncatesToPrefix(t *testing.T) {
	w := NewWorld()
	w.AddEntity(NewPosition(0, 0), nil, nil, nil, nil)
	w.AddEntity(NewPosition(1, 1), nil, nil, nil, nil)
	w.AddEntity(NewPosition(2, 2), nil, nil, nil, nil)
	w.AddEffect(Effect{Name: "burning", Area: geom.NewRect(0, 0, 5, 5)}, testTime())

	w.Reset(1)

	if w.Len() != 1 {
		t.Fatalf("Len = %d, want 1", w.Len())
	}
	for _, n := range containerLengths(w) {
		if n != 1 {
			t.Fatalf("container lengths after reset = %v, want all 1", containerLengths(w))
		}
	}
	if len(w.Effects) != 0 {
		t.Fatal("effects survived reset")
	}

	// The store must stay append-consistent after a reset.
	if id := w.AddEntity(nil, nil, nil, nil, nil); id != 1 {
		t.Fatalf("post-reset id = %d, want 1", id)
	}
}

func TestStateSetList(t *testing.T) {
	s := StateSet{}
	s.Add("walking")
	s.Add("aggro")
	s.Add("colliding")
	got := s.List()
	want := []string{"aggro", "colliding", "walking"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List = %v, want %v", got, want)
		}
	}
}
