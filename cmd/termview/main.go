// Command termview runs the field scene headlessly and renders a top-down
// ASCII view of it in the terminal. It exists to watch the monster patrol,
// aggro and lose the player without a graphical front-end.
package main

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tilde-games/overworld/engine/ai"
	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/effect"
	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/physics"
	"github.com/tilde-games/overworld/engine/scene"
	"github.com/tilde-games/overworld/engine/vmath"
)

const (
	playerSpeed = 80.0
	// World units per terminal cell; rows cover more ground because cells
	// are taller than they are wide.
	cellW = 8.0
	cellH = 16.0
)

var (
	wallStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	playerStyle  = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	monsterStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	effectStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

type viewer struct {
	screen tcell.Screen
	scenes *scene.Manager

	physics *physics.System
	effects *effect.System
	roamer  *ai.Roamer
}

func newViewer() (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	now := time.Now()
	v := &viewer{
		screen:  screen,
		scenes:  scene.NewManager(),
		physics: physics.New(now),
		effects: effect.New(),
	}

	v.scenes.Add("field", fieldScene)
	v.scenes.Add("cave", caveScene)

	v.roamer = ai.NewRoamer(ai.Config{
		IdlePath: []ai.Waypoint{
			{X: 160, Y: 120, Wait: 2},
			{X: 420, Y: 120, Wait: 2},
			{X: 420, Y: 320, Wait: 2},
			{X: 160, Y: 320, Wait: 2},
		},
		AggroDistance: 180,
		LostDelay:     4,
	}, ai.Blueprint{
		Hitbox:   geom.NewRect(0, 0, 24, 32),
		Depth:    8,
		Physical: true,
		Sprite:   "ogre",
	}, "field", now)

	return v, nil
}

func fieldScene() (*core.World, core.Refs) {
	w := core.NewWorld()
	refs := core.Refs{Player: spawnPlayer(w, 80, 400), Monster: core.NoEntity}

	addWall(w, 300, 200, 40, 40)
	addWall(w, 520, 380, 60, 30)
	w.AddEffect(core.Effect{Name: "warm", Area: geom.NewRect(700, 380, 100, 100)}, time.Now())

	return w, refs
}

func caveScene() (*core.World, core.Refs) {
	w := core.NewWorld()
	refs := core.Refs{Player: spawnPlayer(w, 400, 240), Monster: core.NoEntity}

	addWall(w, 300, 100, 30, 250)
	addWall(w, 520, 200, 30, 250)

	return w, refs
}

func spawnPlayer(w *core.World, x, y float64) core.EntityID {
	return w.AddEntity(
		core.NewPosition(x, y),
		core.NewPhysics(geom.NewRect(0, 0, 20, 28), 8, true),
		nil, nil, nil,
	)
}

func addWall(w *core.World, x, y, width, height float64) {
	w.AddEntity(
		core.NewPosition(x, y),
		core.NewPhysics(geom.NewRect(0, 0, width, height), int(height), true),
		nil, nil, nil,
	)
}

func main() {
	v, err := newViewer()
	if err != nil {
		log.Fatal(err)
	}
	defer v.screen.Fini()
	v.run()
}

func (v *viewer) run() {
	// Dedicated input goroutine
	eventCh := make(chan tcell.Event, 16)
	go func() {
		for {
			eventCh <- v.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventCh:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			now := time.Now()
			cur := v.scenes.Current()
			v.physics.Run(cur.World, now)
			v.roamer.Run(v.scenes, now)
			v.effects.Run(cur.World, now)
			v.draw()
		}
	}
}

// handleEvent returns false when the viewer should exit.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}

	cur := v.scenes.Current()
	switch {
	case key.Key() == tcell.KeyCtrlC || key.Key() == tcell.KeyEscape || key.Rune() == 'q':
		return false
	case key.Key() == tcell.KeyTab:
		if cur.Name == "field" {
			v.scenes.Switch("cave")
		} else {
			v.scenes.Switch("field")
		}
	case key.Rune() == 'h' || key.Key() == tcell.KeyLeft:
		v.steer(cur, math.Pi)
	case key.Rune() == 'l' || key.Key() == tcell.KeyRight:
		v.steer(cur, 0)
	case key.Rune() == 'k' || key.Key() == tcell.KeyUp:
		v.steer(cur, -math.Pi/2)
	case key.Rune() == 'j' || key.Key() == tcell.KeyDown:
		v.steer(cur, math.Pi/2)
	case key.Rune() == ' ':
		if phys := cur.World.PhysicsOf(cur.Refs.Player); phys != nil {
			phys.Velocity.Mag = 0
			cur.World.RemoveEntityState(cur.Refs.Player, core.TagWalking)
		}
	}
	return true
}

// steer sets the player walking in the given direction until the next
// steer or stop. Terminals report key presses, not key holds, so movement
// here is persistent rather than held.
func (v *viewer) steer(cur *scene.Scene, dir float64) {
	phys := cur.World.PhysicsOf(cur.Refs.Player)
	if phys == nil {
		return
	}
	phys.Velocity = vmath.New(dir, playerSpeed)
	cur.World.AddEntityState(cur.Refs.Player, core.TagWalking)
}

func (v *viewer) draw() {
	v.screen.Clear()
	cur := v.scenes.Current()

	for _, fx := range cur.World.Effects {
		v.fillRect(fx.Area, '~', effectStyle)
	}
	// The roamer owns the monster entity; scene loaders never name it.
	monster := v.roamer.Monster()
	for _, e := range cur.World.PhysicsEntities() {
		switch e.ID {
		case cur.Refs.Player:
			v.fillRect(e.Footprint(), '@', playerStyle)
		case monster:
			v.fillRect(e.Footprint(), 'M', monsterStyle)
		default:
			v.fillRect(e.Footprint(), '#', wallStyle)
		}
	}

	status := fmt.Sprintf("[%s] monster=%s  hjkl/arrows move, space stop, tab scene, q quit",
		cur.Name, v.monsterStatus(cur))
	for i, r := range status {
		v.screen.SetContent(i, 0, r, nil, statusStyle)
	}

	v.screen.Show()
}

func (v *viewer) monsterStatus(cur *scene.Scene) string {
	if v.roamer.Scene() != cur.Name {
		return "away(" + v.roamer.Scene() + ")"
	}
	if v.roamer.Monster() == core.NoEntity {
		return "incoming"
	}
	tags := cur.World.StatesOf(v.roamer.Monster()).List()
	return strings.Join(tags, ",")
}

func (v *viewer) fillRect(r geom.Rect, ch rune, style tcell.Style) {
	x0, y0 := int(r.X/cellW), int(r.Y/cellH)
	x1, y1 := int((r.X+r.W)/cellW), int((r.Y+r.H)/cellH)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			// Row 0 is the status line
			v.screen.SetContent(x, y+1, ch, nil, style)
		}
	}
}
