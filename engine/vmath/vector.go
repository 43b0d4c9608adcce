// Package vmath provides polar vector arithmetic for the simulation core.
//
// Velocities and per-tick displacements are stored in polar form (direction
// in radians, magnitude in world units per second) because that is how the
// physics and AI systems reason about motion: the AI steers by setting a
// direction while the physics scales and reprojects magnitudes.
package vmath

import "math"

// Vector is a direction+magnitude pair. Direction 0 points along +x,
// pi/2 along +y (screen-down in world space).
type Vector struct {
	Dir float64 // radians
	Mag float64 // world units per second (or per tick once scaled)
}

// New returns a vector with the given direction and magnitude.
func New(dir, mag float64) Vector {
	return Vector{Dir: dir, Mag: mag}
}

// Zero returns the zero vector.
func Zero() Vector {
	return Vector{}
}

// FromComponents builds a polar vector from cartesian components.
func FromComponents(x, y float64) Vector {
	return Vector{
		Dir: math.Atan2(y, x),
		Mag: math.Sqrt(x*x + y*y),
	}
}

// X returns the cartesian x component.
func (v Vector) X() float64 {
	return v.Mag * math.Cos(v.Dir)
}

// Y returns the cartesian y component.
func (v Vector) Y() float64 {
	return v.Mag * math.Sin(v.Dir)
}

// Add returns the cartesian sum, re-normalized to polar form.
func (v Vector) Add(o Vector) Vector {
	return FromComponents(v.X()+o.X(), v.Y()+o.Y())
}

// Sub returns v + (-o).
func (v Vector) Sub(o Vector) Vector {
	return v.Add(o.Neg())
}

// Neg returns the vector rotated half a turn, magnitude unchanged.
func (v Vector) Neg() Vector {
	return Vector{Dir: v.Dir - math.Pi, Mag: v.Mag}
}

// Scale returns the vector with its magnitude multiplied by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{Dir: v.Dir, Mag: v.Mag * f}
}

// Div returns the vector with its magnitude divided by f.
func (v Vector) Div(f float64) Vector {
	return Vector{Dir: v.Dir, Mag: v.Mag / f}
}

// Clamp snaps near-zero magnitudes to exactly zero so friction-like decay
// terminates instead of jittering.
func (v *Vector) Clamp() {
	if v.Mag < 0.5 {
		v.Mag = 0
	}
}
