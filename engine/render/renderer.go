package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tilde-games/overworld/engine/core"
	"github.com/tilde-games/overworld/engine/geom"
)

// ---- Palette ----

var (
	bgColor        = color.RGBA{24, 28, 34, 255}
	playerColor    = color.RGBA{90, 180, 255, 255}
	monsterColor   = color.RGBA{220, 90, 90, 255}
	entityColor    = color.RGBA{160, 160, 160, 255}
	footprintColor = color.RGBA{80, 220, 120, 200}
	hitboxColor    = color.RGBA{255, 255, 255, 60}
	effectColor    = color.RGBA{230, 200, 60, 50}
	dialogBG       = color.RGBA{0, 0, 0, 200}
)

// Renderer draws a scene's world top-down. Entities are drawn as colored
// boxes with their frame label; the debug overlay adds hitboxes, footprints
// and tags.
type Renderer struct {
	Camera *Camera
	Debug  bool

	face font.Face
}

func NewRenderer(screenW, screenH int) *Renderer {
	return &Renderer{
		Camera: NewCamera(screenW, screenH),
		face:   basicfont.Face7x13,
	}
}

// Draw renders the whole world onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, w *core.World, refs core.Refs) {
	screen.Fill(bgColor)

	for _, fx := range w.Effects {
		r.fillRect(screen, fx.Area, effectColor)
	}

	// Painter's order: lower footprints draw later so they overlap upper ones
	ents := w.PhysicsEntities()
	sort.SliceStable(ents, func(i, j int) bool {
		return ents[i].Footprint().Y < ents[j].Footprint().Y
	})

	for _, e := range ents {
		box := r.renderBoxOf(w, e)
		clr := entityColor
		switch e.ID {
		case refs.Player:
			clr = playerColor
		case refs.Monster:
			clr = monsterColor
		}
		r.fillRect(screen, box, clr)

		if gfx := w.GraphicsOf(e.ID); gfx != nil && gfx.Frame != "" {
			sx, sy := r.Camera.WorldToScreen(box.X, box.Y)
			ebitenutil.DebugPrintAt(screen, gfx.Frame, int(sx), int(sy)-14)
		}

		if r.Debug {
			r.strokeRect(screen, box, hitboxColor)
			r.strokeRect(screen, e.Footprint(), footprintColor)
			tags := w.StatesOf(e.ID).List()
			if len(tags) > 0 {
				sx, sy := r.Camera.WorldToScreen(box.X, box.Y+box.H)
				ebitenutil.DebugPrintAt(screen, strings.Join(tags, ","), int(sx), int(sy)+2)
			}
		}
	}

	if r.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("entities: %d  effects: %d", w.Len(), len(w.Effects)), 10, 8)
	}
}

// DrawDialog renders a message box at the bottom of the screen.
func (r *Renderer) DrawDialog(screen *ebiten.Image, msg string) {
	if msg == "" {
		return
	}
	h := 60
	y := r.Camera.ScreenH - h - 10
	vector.DrawFilledRect(screen, 10, float32(y), float32(r.Camera.ScreenW-20), float32(h), dialogBG, false)
	text.Draw(screen, msg, r.face, 24, y+26, color.White)
}

// renderBoxOf prefers an entity's graphics render box and falls back to its
// hitbox.
func (r *Renderer) renderBoxOf(w *core.World, e core.PhysicsEntry) geom.Rect {
	if gfx := w.GraphicsOf(e.ID); gfx != nil && (gfx.RenderBox.W > 0 || gfx.RenderBox.H > 0) {
		return gfx.RenderBox.Translated(e.Pos.X, e.Pos.Y)
	}
	return e.Phys.Hitbox.Translated(e.Pos.X, e.Pos.Y)
}

func (r *Renderer) fillRect(screen *ebiten.Image, rect geom.Rect, clr color.Color) {
	sx, sy := r.Camera.WorldToScreen(rect.X, rect.Y)
	vector.DrawFilledRect(screen, float32(sx), float32(sy),
		float32(rect.W*r.Camera.Zoom), float32(rect.H*r.Camera.Zoom), clr, false)
}

func (r *Renderer) strokeRect(screen *ebiten.Image, rect geom.Rect, clr color.Color) {
	x1, y1 := r.Camera.WorldToScreen(rect.X, rect.Y)
	x2, y2 := r.Camera.WorldToScreen(rect.X+rect.W, rect.Y+rect.H)
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y1), 1, clr, false)
	vector.StrokeLine(screen, float32(x2), float32(y1), float32(x2), float32(y2), 1, clr, false)
	vector.StrokeLine(screen, float32(x2), float32(y2), float32(x1), float32(y2), 1, clr, false)
	vector.StrokeLine(screen, float32(x1), float32(y2), float32(x1), float32(y1), 1, clr, false)
}
