package sim

import (
	"math"
	"testing"

	"github.com/okabe/colossus/internal/vmath"
)

func testShipParams() ShipParams {
	return ShipParams{
		NormalSpeed:    30,
		BoostSpeed:     60,
		Inertia:        0.92,
		BoostInertia:   0.995,
		TurnRate:       2.5,
		YawConvergence: 8,
		TiltMax:        0.5,
		TiltRate:       6,
		BoostMax:       100,
		BoostDrain:     35,
		BoostRegen:     15,
		Radius:         2,
	}
}

func TestBoostSpeedConvergence(t *testing.T) {
	p := testShipParams()
	p.BoostDrain = 0 // Keep the gauge full so boost never cuts out
	u := NewUnit(vmath.Vec3{}, 0, p)

	c := Controls{Forward: true, Boost: true}
	dt := 1.0 / 60

	for i := 0; i < 600; i++ {
		u.Update(c, dt)
		if u.Speed() > p.BoostSpeed+1e-9 {
			t.Fatalf("tick %d: speed %.4f exceeds boost cap %.4f", i, u.Speed(), p.BoostSpeed)
		}
	}
	if u.Speed() < p.BoostSpeed*0.95 {
		t.Fatalf("speed did not converge toward boost cap: %.4f", u.Speed())
	}
}

func TestBoostGaugeClamped(t *testing.T) {
	u := NewUnit(vmath.Vec3{}, 0, testShipParams())
	dt := 1.0 / 60

	// Drain far past empty.
	for i := 0; i < 600; i++ {
		u.Update(Controls{Forward: true, Boost: true}, dt)
		if u.Boost < 0 || u.Boost > 100 {
			t.Fatalf("gauge out of range while draining: %.4f", u.Boost)
		}
	}
	if u.Boost != 0 {
		t.Fatalf("gauge after sustained boost = %.4f, want 0", u.Boost)
	}

	// Regen far past full.
	for i := 0; i < 2000; i++ {
		u.Update(Controls{}, dt)
		if u.Boost < 0 || u.Boost > 100 {
			t.Fatalf("gauge out of range while regenerating: %.4f", u.Boost)
		}
	}
	if u.Boost != 100 {
		t.Fatalf("gauge after long idle = %.4f, want 100", u.Boost)
	}
}

func TestEmptyGaugeDowngradesToNormalSpeed(t *testing.T) {
	p := testShipParams()
	u := NewUnit(vmath.Vec3{}, 0, p)
	u.Boost = 0

	c := Controls{Forward: true, Boost: true}
	for i := 0; i < 600; i++ {
		u.Update(c, 1.0/60)
	}
	// Boost request with an empty gauge degrades silently, it never errors
	// and never reaches boost speed. Regen is suppressed only while
	// actually boosting, so the gauge refills a little; the speed must
	// still sit near the normal cap, not the boosted one.
	if u.Speed() > p.NormalSpeed*1.5 {
		t.Fatalf("speed with empty gauge = %.4f, want near %.4f", u.Speed(), p.NormalSpeed)
	}
}

func TestYawConvergesTowardRotationInput(t *testing.T) {
	u := NewUnit(vmath.Vec3{}, 0, testShipParams())
	dt := 1.0 / 60

	for i := 0; i < 60; i++ {
		u.Update(Controls{RotateRight: true}, dt)
	}
	if u.Yaw <= 0 {
		t.Fatalf("yaw after rotating right = %.4f, want > 0", u.Yaw)
	}

	// Release rotation: yaw settles, stays wrapped.
	for i := 0; i < 120; i++ {
		u.Update(Controls{}, dt)
	}
	if u.Yaw > math.Pi || u.Yaw < -math.Pi {
		t.Fatalf("yaw not normalized: %.4f", u.Yaw)
	}
}

func TestTiltIsCosmetic(t *testing.T) {
	u := NewUnit(vmath.Vec3{}, 0, testShipParams())
	dt := 1.0 / 60

	for i := 0; i < 120; i++ {
		u.Update(Controls{Left: true}, dt)
	}
	if u.Roll == 0 {
		t.Fatal("expected lateral movement to roll the craft")
	}
	if math.Abs(u.Roll) > testShipParams().TiltMax+1e-9 {
		t.Fatalf("roll %.4f exceeds tilt limit", u.Roll)
	}
	// Heading is untouched by tilt.
	if u.Yaw != 0 {
		t.Fatalf("strafing changed heading: yaw=%.4f", u.Yaw)
	}
}

func TestInertiaCarriesMomentum(t *testing.T) {
	u := NewUnit(vmath.Vec3{}, 0, testShipParams())
	dt := 1.0 / 60

	for i := 0; i < 120; i++ {
		u.Update(Controls{Forward: true}, dt)
	}
	movingSpeed := u.Speed()

	// One tick after releasing input the craft must still be moving.
	u.Update(Controls{}, dt)
	if u.Speed() < movingSpeed*0.5 {
		t.Fatalf("velocity dropped too sharply in one tick: %.4f -> %.4f", movingSpeed, u.Speed())
	}
}
