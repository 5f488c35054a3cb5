package vmath

import (
	"math"
	"testing"
)

func TestNormalized(t *testing.T) {
	v := Vec3{X: 3, Y: 0, Z: 4}.Normalized()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Fatalf("normalized length = %f, want 1", v.Len())
	}

	zero := Vec3{}.Normalized()
	if zero != (Vec3{}) {
		t.Fatalf("normalizing zero vector = %+v, want zero", zero)
	}
}

func TestRotateYawQuarterTurn(t *testing.T) {
	// Forward (+Z) rotated by +90° should face +X.
	v := Vec3{Z: 1}.RotateYaw(math.Pi / 2)
	if math.Abs(v.X-1) > 1e-9 || math.Abs(v.Z) > 1e-9 {
		t.Fatalf("rotated vector = %+v, want (1,0,0)", v)
	}
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Fatalf("rotation changed length: %f", v.Len())
	}
}

func TestForwardMatchesRotateYaw(t *testing.T) {
	for _, yaw := range []float64{0, 0.3, -1.2, math.Pi} {
		want := Vec3{Z: 1}.RotateYaw(yaw)
		got := Forward(yaw)
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
			t.Fatalf("Forward(%f) = %+v, want %+v", yaw, got, want)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
		{math.Pi / 2, math.Pi / 2},
	}
	for _, c := range cases {
		got := WrapAngle(c.in)
		if math.Abs(math.Abs(got)-math.Abs(c.want)) > 1e-9 {
			t.Fatalf("WrapAngle(%f) = %f, want %f", c.in, got, c.want)
		}
		if got > math.Pi || got < -math.Pi {
			t.Fatalf("WrapAngle(%f) = %f out of range", c.in, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("Clamp(5,0,1) = %f", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("Clamp(-5,0,1) = %f", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("Clamp(0.5,0,1) = %f", got)
	}
}
