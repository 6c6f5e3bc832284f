package game

import "math/rand"

// Bounds is the axis-aligned rectangle the pasture lives in. Every resolved
// position in the simulation is clamped into it component-wise.
type Bounds struct {
	Min Vec2
	Max Vec2
}

// DefaultBounds matches the arena footprint of the shipped level.
func DefaultBounds() Bounds {
	return Bounds{
		Min: Vec2{X: -34.5, Z: -49.5},
		Max: Vec2{X: 34.5, Z: 9.5},
	}
}

// Clamp returns p clamped into the bounds component-wise.
func (b Bounds) Clamp(p Vec2) Vec2 {
	if p.X < b.Min.X {
		p.X = b.Min.X
	}
	if p.X > b.Max.X {
		p.X = b.Max.X
	}
	if p.Z < b.Min.Z {
		p.Z = b.Min.Z
	}
	if p.Z > b.Max.Z {
		p.Z = b.Max.Z
	}
	return p
}

// Contains reports whether p lies inside the bounds (inclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Width returns the X extent.
func (b Bounds) Width() float64 { return b.Max.X - b.Min.X }

// Depth returns the Z extent.
func (b Bounds) Depth() float64 { return b.Max.Z - b.Min.Z }

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Z + b.Max.Z) / 2}
}

// RandomPoint samples a position uniformly inside the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{
		X: b.Min.X + rng.Float64()*b.Width(),
		Z: b.Min.Z + rng.Float64()*b.Depth(),
	}
}
