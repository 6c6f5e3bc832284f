package game

import "math"

// Vec2 is a point or direction on the pasture's XZ plane.
// Height above the ground is tracked separately (see Sheep.height).
type Vec2 struct {
	X float64
	Z float64
}

// unitX is the fallback direction used wherever a zero-length vector
// would otherwise be normalized.
var unitX = Vec2{X: 1}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Z + o.Z} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Z - o.Z} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Z * f} }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Z*v.Z) }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Z*v.Z }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }

// NormalizeOr returns the unit vector in v's direction, or fallback when v
// is too short to carry a direction.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return fallback
	}
	return Vec2{v.X / l, v.Z / l}
}

// IsZero reports whether v has no usable direction.
func (v Vec2) IsZero() bool { return v.LenSq() < 1e-18 }

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Z, v.X} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Z} }

// Heading returns the angle of v in radians.
func (v Vec2) Heading() float64 { return math.Atan2(v.Z, v.X) }

// FromAngle returns the unit vector at the given angle.
func FromAngle(rad float64) Vec2 { return Vec2{math.Cos(rad), math.Sin(rad)} }

// Lerp interpolates between a and b by t in [0,1].
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Z + (b.Z-a.Z)*t}
}
