package physics

import (
	"math"
	"testing"

	"github.com/okabe/colossus/internal/vmath"
)

func TestRaySphereDirectHit(t *testing.T) {
	origin := vmath.Vec3{}
	dir := vmath.Vec3{Z: 1}
	center := vmath.Vec3{Z: 10}

	dist, ok := RaySphere(origin, dir, center, 2, 100)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-8) > 1e-9 {
		t.Fatalf("hit distance = %f, want 8", dist)
	}
}

func TestRaySphereMiss(t *testing.T) {
	origin := vmath.Vec3{}
	dir := vmath.Vec3{Z: 1}

	// Sphere off to the side, beyond its radius.
	if _, ok := RaySphere(origin, dir, vmath.Vec3{X: 5, Z: 10}, 2, 100); ok {
		t.Fatal("expected miss for offset sphere")
	}

	// Sphere behind the origin.
	if _, ok := RaySphere(origin, dir, vmath.Vec3{Z: -10}, 2, 100); ok {
		t.Fatal("expected miss for sphere behind ray")
	}
}

func TestRaySphereMaxDistance(t *testing.T) {
	origin := vmath.Vec3{}
	dir := vmath.Vec3{Z: 1}
	center := vmath.Vec3{Z: 10}

	if _, ok := RaySphere(origin, dir, center, 2, 5); ok {
		t.Fatal("hit beyond maxDist should be rejected")
	}
	if _, ok := RaySphere(origin, dir, center, 2, 8.5); !ok {
		t.Fatal("hit within maxDist should be accepted")
	}
}

func TestRaySphereInside(t *testing.T) {
	center := vmath.Vec3{Z: 1}
	dist, ok := RaySphere(vmath.Vec3{Z: 1.5}, vmath.Vec3{Z: 1}, center, 2, 100)
	if !ok || dist != 0 {
		t.Fatalf("ray inside sphere: dist=%f ok=%v, want 0 true", dist, ok)
	}
}

func TestSpheresOverlap(t *testing.T) {
	a := vmath.Vec3{}
	b := vmath.Vec3{X: 3}
	if !SpheresOverlap(a, 2, b, 2) {
		t.Fatal("expected overlap")
	}
	if SpheresOverlap(a, 1, b, 1) {
		t.Fatal("expected no overlap for touching-distance spheres")
	}
}
