package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tilde-games/overworld/engine/action"
	"github.com/tilde-games/overworld/engine/ai"
	"github.com/tilde-games/overworld/engine/anim"
	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/dialog"
	"github.com/tilde-games/overworld/engine/effect"
	"github.com/tilde-games/overworld/engine/geom"
	"github.com/tilde-games/overworld/engine/input"
	"github.com/tilde-games/overworld/engine/physics"
	"github.com/tilde-games/overworld/engine/render"
	"github.com/tilde-games/overworld/engine/scene"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	PlayerSpeed  = 80.0
)

// Game implements ebiten.Game interface
type Game struct {
	scenes   *scene.Manager
	renderer *render.Renderer

	controller *input.Controller
	physics    *physics.System
	roamer     *ai.Roamer
	effects    *effect.System
	actions    *action.System
	anims      *anim.System

	dialogs     map[string]*dialog.Dialog
	dialogName  string
	dialogMsg   string
	dialogUntil time.Time
}

func NewGame() *Game {
	now := time.Now()

	g := &Game{
		scenes:     scene.NewManager(),
		renderer:   render.NewRenderer(ScreenWidth, ScreenHeight),
		controller: input.NewController(PlayerSpeed),
		physics:    physics.New(now),
		effects:    effect.New(),
		actions:    action.New(),
		anims:      anim.New(),
		dialogs: map[string]*dialog.Dialog{
			"signpost": dialog.New([]string{
				"The cave to the east smells of sulfur.",
				"Turn back while you still can.",
			}),
		},
	}

	g.actions.ShowDialog = g.showDialog

	g.scenes.Add("field", fieldScene)
	g.scenes.Add("cave", caveScene)

	g.roamer = ai.NewRoamer(ai.Config{
		IdlePath: []ai.Waypoint{
			{X: 200, Y: 120, Wait: 2},
			{X: 420, Y: 120, Wait: 2},
			{X: 420, Y: 320, Wait: 2},
			{X: 200, Y: 320, Wait: 2},
		},
		AggroDistance: 180,
		LostDelay:     4,
	}, ai.Blueprint{
		Hitbox:    geom.NewRect(0, 0, 24, 32),
		Depth:     8,
		Physical:  true,
		Sprite:    "ogre",
		RenderBox: geom.NewRect(-4, -8, 32, 40),
	}, "field", now)

	return g
}

// ---- Scene loaders ----

func fieldScene() (*core.World, core.Refs) {
	w := core.NewWorld()
	refs := core.Refs{Player: core.NoEntity, Monster: core.NoEntity}

	refs.Player = spawnPlayer(w, 100, 400)

	// Boulders the monster has to path around
	addWall(w, 300, 200, 40, 40)
	addWall(w, 500, 380, 60, 30)

	// A signpost that chats when the player stands next to it
	sign := w.AddEntity(
		core.NewPosition(620, 160),
		core.NewPhysics(geom.NewRect(0, 0, 16, 24), 6, true),
		core.NewGraphics("signpost", geom.NewRect(0, 0, 16, 24)),
		core.NewActionTable(map[string]*core.Sequence{
			core.TagIdle: core.NewSequence([]core.Step{
				{Duration: 6, Op: core.ShowDialog("signpost")},
				{Duration: 6, Op: core.AddTag("glowing")},
				{Duration: 6, Op: core.RemoveTag("glowing")},
			}),
		}),
		nil,
	)
	w.AddEntityState(sign, core.TagIdle)

	// A campfire that projects a warm zone around itself
	fire := w.AddEntity(
		core.NewPosition(760, 420),
		core.NewPhysics(geom.NewRect(0, 0, 20, 20), 20, true),
		core.NewGraphics("campfire", geom.NewRect(0, 0, 20, 20)),
		core.NewActionTable(map[string]*core.Sequence{
			core.TagIdle: core.NewSequence([]core.Step{
				{Duration: 1, Op: core.SpawnEffect(core.Effect{
					Name: "warm",
					Area: geom.NewRect(720, 380, 100, 100),
					TTL:  2,
				})},
			}),
		}),
		nil,
	)
	w.AddEntityState(fire, core.TagIdle)

	return w, refs
}

func caveScene() (*core.World, core.Refs) {
	w := core.NewWorld()
	refs := core.Refs{Player: core.NoEntity, Monster: core.NoEntity}

	refs.Player = spawnPlayer(w, 640, 360)

	addWall(w, 400, 100, 30, 300)
	addWall(w, 800, 300, 30, 300)

	return w, refs
}

func spawnPlayer(w *core.World, x, y float64) core.EntityID {
	id := w.AddEntity(
		core.NewPosition(x, y),
		core.NewPhysics(geom.NewRect(0, 0, 20, 28), 8, true),
		core.NewGraphics("hero", geom.NewRect(-2, -6, 24, 34)),
		nil,
		core.NewAnimationSet(map[string]*core.Animation{
			core.TagWalking: core.NewAnimation([]string{"walk0", "walk1", "walk2", "walk1"}, 0.15),
			core.TagIdle:    core.NewAnimation([]string{"stand"}, 1),
		}),
	)
	w.AddEntityState(id, core.TagIdle)
	return id
}

func addWall(w *core.World, x, y, width, height float64) {
	w.AddEntity(
		core.NewPosition(x, y),
		core.NewPhysics(geom.NewRect(0, 0, width, height), int(height), true),
		core.NewGraphics("rock", geom.NewRect(0, 0, width, height)),
		nil, nil,
	)
}

// ---- Loop ----

func (g *Game) Update() error {
	now := time.Now()
	cur := g.scenes.Current()

	g.controller.Update(cur.World, cur.Refs)
	g.physics.Run(cur.World, now)
	g.roamer.Run(g.scenes, now)
	g.effects.Run(cur.World, now)
	g.actions.Run(cur.World, now)
	g.anims.Run(cur.World, now)

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if cur.Name == "field" {
			g.scenes.Switch("cave")
		} else {
			g.scenes.Switch("field")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.renderer.Debug = !g.renderer.Debug
	}
	if g.controller.InteractJustPressed() && g.dialogMsg != "" {
		g.dialogMsg = g.dialogs[g.dialogName].Next()
		g.dialogUntil = now.Add(3 * time.Second)
	}

	if now.After(g.dialogUntil) {
		g.dialogMsg = ""
	}

	// Follow the player
	if pos := cur.World.PositionOf(cur.Refs.Player); pos != nil {
		g.renderer.Camera.CenterOn(pos.X, pos.Y)
	}

	return nil
}

func (g *Game) showDialog(name string) {
	d, ok := g.dialogs[name]
	if !ok {
		log.Printf("no dialog %q", name)
		return
	}
	// The op fires every tick while its step runs; advance only when the
	// box is not already showing this dialog.
	if g.dialogName != name || g.dialogMsg == "" {
		g.dialogMsg = d.Next()
		g.dialogName = name
	}
	g.dialogUntil = time.Now().Add(3 * time.Second)
}

func (g *Game) Draw(screen *ebiten.Image) {
	cur := g.scenes.Current()
	// The roamer owns the monster entity; scene loaders never name it.
	refs := core.Refs{Player: cur.Refs.Player, Monster: g.roamer.Monster()}
	g.renderer.Draw(screen, cur.World, refs)
	g.renderer.DrawDialog(screen, g.dialogMsg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Overworld - demo field")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
