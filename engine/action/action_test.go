package action

import (
	"testing"
	"time"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/geom"
)

func baseTime() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestTagOpsApplyWhileTriggered(t *testing.T) {
	w := core.NewWorld()
	table := core.NewActionTable(map[string]*core.Sequence{
		"pressure-plate": core.NewSequence([]core.Step{
			{Duration: 1.0, Op: core.AddTag("door-open")},
			{Duration: 1.0, Op: core.RemoveTag("door-open")},
		}),
	})
	id := w.AddEntity(nil, nil, nil, table, nil)

	sys := New()
	now := baseTime()

	// Untriggered: nothing happens.
	sys.Run(w, now)
	if w.HasEntityState(id, "door-open") {
		t.Fatal("sequence ran without its trigger tag")
	}

	// Triggered: step one adds the tag.
	w.AddEntityState(id, "pressure-plate")
	sys.Run(w, now)
	if !w.HasEntityState(id, "door-open") {
		t.Fatal("add-tag op did not apply")
	}

	// Past step one's duration: step two removes it again.
	sys.Run(w, now.Add(1500*time.Millisecond))
	if !w.HasEntityState(id, "door-open") {
		t.Fatal("tag removed before the remove step actually played")
	}
	sys.Run(w, now.Add(1600*time.Millisecond))
	if w.HasEntityState(id, "door-open") {
		t.Fatal("remove-tag op did not apply")
	}
}

func TestSpawnEffectOpIsIdempotentWhileLive(t *testing.T) {
	w := core.NewWorld()
	table := core.NewActionTable(map[string]*core.Sequence{
		"torch": core.NewSequence([]core.Step{
			{Duration: 10, Op: core.SpawnEffect(core.Effect{
				Name: "lit", Area: geom.NewRect(0, 0, 20, 20),
			})},
		}),
	})
	id := w.AddEntity(nil, nil, nil, table, nil)
	w.AddEntityState(id, "torch")

	sys := New()
	now := baseTime()
	sys.Run(w, now)
	sys.Run(w, now.Add(time.Second))
	sys.Run(w, now.Add(2*time.Second))

	if len(w.Effects) != 1 {
		t.Fatalf("effects = %d, want 1 (respawn while live must be a no-op)", len(w.Effects))
	}
}

func TestShowDialogReachesSink(t *testing.T) {
	w := core.NewWorld()
	table := core.NewActionTable(map[string]*core.Sequence{
		"talked-to": core.NewSequence([]core.Step{
			{Duration: 1, Op: core.ShowDialog("greeting")},
		}),
	})
	id := w.AddEntity(nil, nil, nil, table, nil)
	w.AddEntityState(id, "talked-to")

	var shown []string
	sys := New()
	sys.ShowDialog = func(name string) { shown = append(shown, name) }

	sys.Run(w, baseTime())
	if len(shown) != 1 || shown[0] != "greeting" {
		t.Fatalf("shown = %v, want [greeting]", shown)
	}
}

func TestNilDialogSinkIsSafe(t *testing.T) {
	w := core.NewWorld()
	table := core.NewActionTable(map[string]*core.Sequence{
		"talked-to": core.NewSequence([]core.Step{
			{Duration: 1, Op: core.ShowDialog("greeting")},
		}),
	})
	id := w.AddEntity(nil, nil, nil, table, nil)
	w.AddEntityState(id, "talked-to")

	New().Run(w, baseTime()) // must not panic
}
