// Package vmath provides the small amount of 3D vector and angle math
// the simulation needs.
package vmath

import "math"

// Vec3 is a 3D vector. X is right, Y is up, Z is forward.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len returns the vector magnitude.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// LenSq returns the squared magnitude. Use when comparing distances to
// avoid the sqrt cost.
func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

// Normalized returns v scaled to unit length, or the zero vector if v is
// (numerically) zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// RotateYaw rotates v around the Y axis by yaw radians.
func (v Vec3) RotateYaw(yaw float64) Vec3 {
	sin, cos := math.Sincos(yaw)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Lerp blends a toward b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle normalizes an angle to [-π, π].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Forward returns the unit forward vector for a yaw angle (yaw 0 looks
// down +Z, positive yaw turns toward +X).
func Forward(yaw float64) Vec3 {
	sin, cos := math.Sincos(yaw)
	return Vec3{X: sin, Y: 0, Z: cos}
}
