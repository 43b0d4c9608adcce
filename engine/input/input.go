package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/vmath"
)

// Controller samples the keyboard each frame and drives the player entity's
// velocity. Movement keys are WASD plus the arrow keys.
type Controller struct {
	// Speed is the player's walk speed in world units per second.
	Speed float64
}

func NewController(speed float64) *Controller {
	return &Controller{Speed: speed}
}

// Update reads the keyboard and applies the resulting movement intent to
// the player.
func (c *Controller) Update(w *core.World, refs core.Refs) {
	if refs.Player == core.NoEntity {
		return
	}

	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		dx += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		dy -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		dy += 1
	}

	c.steer(w, refs.Player, dx, dy)
}

// steer writes the player's velocity, facing and movement tags for the
// given intent. The idle and walking tags are mutually exclusive: whichever
// applies replaces the other, so tag-keyed animation picks the right one.
// A no-op when the player has no physics component.
func (c *Controller) steer(w *core.World, player core.EntityID, dx, dy float64) {
	phys := w.PhysicsOf(player)
	if phys == nil {
		return
	}

	if dx == 0 && dy == 0 {
		phys.Velocity.Mag = 0
		w.RemoveEntityState(player, core.TagWalking)
		w.AddEntityState(player, core.TagIdle)
		return
	}

	phys.Velocity = vmath.New(math.Atan2(dy, dx), c.Speed)
	w.RemoveEntityState(player, core.TagIdle)
	w.AddEntityState(player, core.TagWalking)

	if gfx := w.GraphicsOf(player); gfx != nil {
		if dx < 0 {
			gfx.Flipped = true
		} else if dx > 0 {
			gfx.Flipped = false
		}
	}
}

// InteractJustPressed reports whether the interact key went down this frame.
func (c *Controller) InteractJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}
