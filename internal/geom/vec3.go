package geom

import "math"

// Vec3 is a 3-component vector. STL stores single-precision floats;
// checks are done in float64 so the winding test does not lose bits
// on the subtraction.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product of a and b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// IsNaN reports whether any component of v is NaN.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// CounterClockwise reports whether the vertices v1, v2, v3 wind
// counterclockwise when viewed from the side the normal points to.
// The comparison is a strict "> 0": a degenerate facet (collinear or
// coincident vertices) yields a zero computed normal and is therefore
// not counterclockwise.
func CounterClockwise(v1, v2, v3, normal Vec3) bool {
	n := v2.Sub(v1).Cross(v3.Sub(v1))
	return n.Dot(normal) > 0
}
