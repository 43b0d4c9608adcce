// Package geom provides the axis-aligned rectangle math used by collision,
// line-of-sight and area effects.
package geom

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y float64 // top-left corner
	W, H float64
}

// NewRect returns a rectangle with the given origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Translated returns the rectangle shifted by (dx, dy).
func (r Rect) Translated(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Footprint returns the bottom depth units of the rectangle: the top edge
// moves down by (h - depth) and the height becomes depth. A sprite's
// footprint is the only geometry collision and visibility consider; the rest
// of the hitbox is visual. A depth taller than the rect is clipped to it.
func (r Rect) Footprint(depth float64) Rect {
	if depth > r.H {
		depth = r.H
	}
	return Rect{X: r.X, Y: r.Y + r.H - depth, W: r.W, H: depth}
}

// Intersects reports whether the two rectangles strictly overlap.
// Rectangles that merely share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CenterX returns the x coordinate of the rectangle's center.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the y coordinate of the rectangle's center.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// IntersectsLine reports whether the segment (x1,y1)-(x2,y2) passes through
// the rectangle. Uses Liang-Barsky clipping: the segment is parameterized
// as p + t*d for t in [0,1] and clipped against each slab in turn.
func (r Rect) IntersectsLine(x1, y1, x2, y2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1

	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0 // parallel: inside iff on the inner side
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	return clip(-dx, x1-r.X) &&
		clip(dx, r.X+r.W-x1) &&
		clip(-dy, y1-r.Y) &&
		clip(dy, r.Y+r.H-y1)
}
