// Package gmath provides the vector, matrix, color and fixed-point types
// shared by the DRM, output and scene packages.
package gmath

import (
	"fmt"
	"math"
)

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float32
}

// NewVec2 creates a new Vec2.
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Zero2 returns a zero vector.
func Zero2() Vec2 {
	return Vec2{0, 0}
}

// One2 returns the vector with every component set to 1.
func One2() Vec2 {
	return Vec2{1, 1}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Mul returns v * scalar.
func (v Vec2) Mul(scalar float32) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Div returns v / scalar.
func (v Vec2) Div(scalar float32) Vec2 {
	return Vec2{v.X / scalar, v.Y / scalar}
}

// Dot returns the dot product of v and other.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// LengthSquared returns the squared magnitude, cheaper than Length
// when only a comparison is needed (e.g. culling by distance).
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns v scaled to unit length, or the zero vector if v
// is the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp returns the linear interpolation between v and other at t,
// where t=0 yields v and t=1 yields other.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
	}
}

// Distance returns the Euclidean distance between v and other.
func (v Vec2) Distance(other Vec2) float32 {
	return other.Sub(v).Length()
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	s := float32(math.Sin(float64(angle)))
	c := float32(math.Cos(float64(angle)))
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Perpendicular returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Abs returns a vector with absolute values.
func (v Vec2) Abs() Vec2 {
	return Vec2{
		X: float32(math.Abs(float64(v.X))),
		Y: float32(math.Abs(float64(v.Y))),
	}
}

// Min returns the component-wise minimum.
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{
		X: float32(math.Min(float64(v.X), float64(other.X))),
		Y: float32(math.Min(float64(v.Y), float64(other.Y))),
	}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{
		X: float32(math.Max(float64(v.X), float64(other.X))),
		Y: float32(math.Max(float64(v.Y), float64(other.Y))),
	}
}

// Clamp returns v clamped to [min, max].
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return v.Max(min).Min(max)
}

// String returns a string representation.
func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%f, %f)", v.X, v.Y)
}
