// Package scene owns the table of named scenes and which one is loaded.
// A scene is rebuilt from its loader every time the player enters it, so
// per-scene entity state never leaks across visits; anything that must
// survive (the monster's whereabouts) lives in the AI controller instead.
package scene

import "github.com/tilde-games/overworld/engine/core"

// Loader builds a scene's world from scratch and names its distinguished
// entities. Loaders are plain code here; parsing scene files into loader
// calls is the job of an external producer.
type Loader func() (*core.World, core.Refs)

// Scene is one named world.
type Scene struct {
	Name  string
	World *core.World
	Refs  core.Refs

	load Loader
}

// Manager holds every known scene and tracks the loaded one.
type Manager struct {
	scenes  map[string]*Scene
	current *Scene
}

// NewManager returns a manager with no scenes.
func NewManager() *Manager {
	return &Manager{scenes: make(map[string]*Scene)}
}

// Add registers a scene under name. The first scene added becomes current
// and is loaded immediately.
func (m *Manager) Add(name string, load Loader) *Scene {
	s := &Scene{Name: name, load: load}
	m.scenes[name] = s
	if m.current == nil {
		s.reload()
		m.current = s
	}
	return s
}

// Switch makes the named scene current, rebuilding its world from the
// loader. Switching to the already-current scene reloads it (scene reset).
// An unknown name is a programming error and panics.
func (m *Manager) Switch(name string) *Scene {
	s, ok := m.scenes[name]
	if !ok {
		panic("scene: unknown scene " + name)
	}
	s.reload()
	m.current = s
	return s
}

// Current returns the loaded scene.
func (m *Manager) Current() *Scene {
	return m.current
}

func (s *Scene) reload() {
	s.World, s.Refs = s.load()
}
