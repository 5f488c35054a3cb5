// Package physics provides ray casting and distance utilities for the
// combat simulation.
package physics

import (
	"math"

	"github.com/okabe/colossus/internal/vmath"
)

// Distance calculates the Euclidean distance between two points.
func Distance(a, b vmath.Vec3) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b vmath.Vec3) float64 {
	return b.Sub(a).LenSq()
}

// PointInSphere checks if a point is within radius of a center position.
func PointInSphere(p, center vmath.Vec3, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// SpheresOverlap checks if two spheres overlap.
func SpheresOverlap(c1 vmath.Vec3, r1 float64, c2 vmath.Vec3, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// RaySphere intersects a ray with a sphere and returns the distance along
// the ray to the nearest intersection within maxDist. dir must be unit
// length. A ray starting inside the sphere reports a hit at distance 0.
func RaySphere(origin, dir, center vmath.Vec3, radius, maxDist float64) (float64, bool) {
	oc := origin.Sub(center)

	// Inside the sphere: immediate contact.
	if oc.LenSq() <= radius*radius {
		return 0, true
	}

	// Solve |origin + t*dir - center|² = r² for t.
	b := oc.Dot(dir)
	c := oc.LenSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}
