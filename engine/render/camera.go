package render

import "math"

// Camera represents the viewport into the world
type Camera struct {
	X, Y    float64 // camera center position (world coords)
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X = wx
	c.Y = wy
}

// WorldToScreen converts a world position to screen pixel position
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts a screen pixel to world coords
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	wy := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return wx, wy
}
