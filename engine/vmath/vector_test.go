package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestComponents(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
		x, y float64
	}{
		{"east", New(0, 10), 10, 0},
		{"south", New(math.Pi/2, 4), 0, 4},
		{"west", New(math.Pi, 2), -2, 0},
		{"zero", Zero(), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !near(tt.v.X(), tt.x) || !near(tt.v.Y(), tt.y) {
				t.Errorf("got (%v, %v), want (%v, %v)", tt.v.X(), tt.v.Y(), tt.x, tt.y)
			}
		})
	}
}

func TestFromComponentsRoundTrip(t *testing.T) {
	v := FromComponents(3, 4)
	if !near(v.Mag, 5) {
		t.Errorf("mag = %v, want 5", v.Mag)
	}
	if !near(v.X(), 3) || !near(v.Y(), 4) {
		t.Errorf("components = (%v, %v), want (3, 4)", v.X(), v.Y())
	}
}

func TestAddSub(t *testing.T) {
	a := FromComponents(1, 2)
	b := FromComponents(3, -1)

	sum := a.Add(b)
	if !near(sum.X(), 4) || !near(sum.Y(), 1) {
		t.Errorf("Add = (%v, %v), want (4, 1)", sum.X(), sum.Y())
	}

	diff := a.Sub(b)
	if !near(diff.X(), -2) || !near(diff.Y(), 3) {
		t.Errorf("Sub = (%v, %v), want (-2, 3)", diff.X(), diff.Y())
	}
}

func TestNegKeepsMagnitude(t *testing.T) {
	v := New(math.Pi/4, 7)
	n := v.Neg()
	if !near(n.Mag, 7) {
		t.Errorf("mag = %v, want 7", n.Mag)
	}
	if !near(n.X(), -v.X()) || !near(n.Y(), -v.Y()) {
		t.Errorf("Neg components = (%v, %v), want (%v, %v)", n.X(), n.Y(), -v.X(), -v.Y())
	}
}

func TestScaleDiv(t *testing.T) {
	v := New(1, 6)
	if got := v.Scale(0.5).Mag; !near(got, 3) {
		t.Errorf("Scale mag = %v, want 3", got)
	}
	if got := v.Div(3).Mag; !near(got, 2) {
		t.Errorf("Div mag = %v, want 2", got)
	}
	if got := v.Scale(2).Dir; !near(got, 1) {
		t.Errorf("Scale changed direction: %v", got)
	}
}

func TestClamp(t *testing.T) {
	small := New(1, 0.4)
	small.Clamp()
	if small.Mag != 0 {
		t.Errorf("mag = %v, want 0", small.Mag)
	}

	big := New(1, 0.6)
	big.Clamp()
	if big.Mag != 0.6 {
		t.Errorf("mag = %v, want 0.6", big.Mag)
	}
}
