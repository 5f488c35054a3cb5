package sim

import (
	"math"

	"github.com/okabe/colossus/internal/vmath"
)

// refTickRate is the reference frame rate all per-frame factors are
// normalized against, so behavior is identical at any actual tick rate.
const refTickRate = 60.0

// ShipParams are the tunable flight characteristics of the strike craft.
type ShipParams struct {
	NormalSpeed float64 // Cruise speed cap (units/sec)
	BoostSpeed  float64 // Boosted speed cap (units/sec)

	// Velocity retention per reference frame. Higher retention means more
	// momentum carries over; boosting is near-frictionless.
	Inertia      float64
	BoostInertia float64

	TurnRate       float64 // Rotation input rate (radians/sec)
	YawConvergence float64 // How fast yaw chases target yaw (1/sec)

	TiltMax  float64 // Cosmetic pitch/roll limit (radians)
	TiltRate float64 // Tilt smoothing rate (1/sec)

	BoostMax   float64 // Boost gauge capacity
	BoostDrain float64 // Gauge drain per second while boosting
	BoostRegen float64 // Gauge regen per second while idle

	Radius float64 // Hull collision radius
}

// Unit is the player-controlled strike craft.
type Unit struct {
	Pos vmath.Vec3
	Vel vmath.Vec3

	Yaw   float64 // Heading (radians, 0 = +Z)
	Pitch float64 // Cosmetic only
	Roll  float64 // Cosmetic only

	Boost float64 // Remaining boost gauge

	targetYaw float64
	params    ShipParams
}

// NewUnit creates a strike craft at the given position with a full boost
// gauge, facing along yaw.
func NewUnit(pos vmath.Vec3, yaw float64, p ShipParams) *Unit {
	return &Unit{
		Pos:       pos,
		Yaw:       yaw,
		targetYaw: yaw,
		Boost:     p.BoostMax,
		params:    p,
	}
}

// Update advances the craft by dt seconds from the control sample.
// Free-flight model: the desired velocity is built from the strafe axes in
// local space, rotated into world space by the current heading, then the
// actual velocity is blended toward it. Boosting raises the speed cap and
// the momentum retention.
func (u *Unit) Update(c Controls, dt float64) {
	boosting := c.Boost && u.Boost > 0

	var local vmath.Vec3
	if c.Right {
		local.X++
	}
	if c.Left {
		local.X--
	}
	if c.Up {
		local.Y++
	}
	if c.Down {
		local.Y--
	}
	if c.Forward {
		local.Z++
	}
	if c.Backward {
		local.Z--
	}

	speed := u.params.NormalSpeed
	if boosting {
		speed = u.params.BoostSpeed
	}

	var desired vmath.Vec3
	if local.LenSq() > 0 {
		desired = local.Normalized().Scale(speed).RotateYaw(u.Yaw)
	}

	retention := u.params.Inertia
	if boosting {
		retention = u.params.BoostInertia
	}

	// Exponential blend keeps the feel identical at any tick rate.
	keep := math.Pow(retention, dt*refTickRate)
	u.Vel = u.Vel.Scale(keep).Add(desired.Scale(1 - keep))

	// Hard cap so momentum never exceeds the boosted ceiling.
	if s := u.Vel.Len(); s > u.params.BoostSpeed {
		u.Vel = u.Vel.Scale(u.params.BoostSpeed / s)
	}

	u.Pos = u.Pos.Add(u.Vel.Scale(dt))

	u.updateHeading(c, dt)
	u.updateTilt(dt)

	if boosting {
		u.Boost -= u.params.BoostDrain * dt
	} else {
		u.Boost += u.params.BoostRegen * dt
	}
	u.Boost = vmath.Clamp(u.Boost, 0, u.params.BoostMax)
}

// updateHeading accumulates rotation input into a target yaw and smooths
// the actual yaw toward it.
func (u *Unit) updateHeading(c Controls, dt float64) {
	if c.RotateLeft {
		u.targetYaw -= u.params.TurnRate * dt
	}
	if c.RotateRight {
		u.targetYaw += u.params.TurnRate * dt
	}

	diff := vmath.WrapAngle(u.targetYaw - u.Yaw)
	u.Yaw = vmath.WrapAngle(u.Yaw + diff*math.Min(1, u.params.YawConvergence*dt))
	u.targetYaw = u.Yaw + vmath.WrapAngle(u.targetYaw-u.Yaw)
}

// updateTilt derives cosmetic pitch/roll from local-space velocity. The
// tilt never feeds back into the heading math.
func (u *Unit) updateTilt(dt float64) {
	lv := u.Vel.RotateYaw(-u.Yaw)
	limit := u.params.BoostSpeed
	if limit <= 0 {
		return
	}

	wantRoll := vmath.Clamp(-lv.X/limit, -1, 1) * u.params.TiltMax
	wantPitch := vmath.Clamp(lv.Y/limit-0.3*lv.Z/limit, -1, 1) * u.params.TiltMax

	t := math.Min(1, u.params.TiltRate*dt)
	u.Roll = vmath.Lerp(u.Roll, wantRoll, t)
	u.Pitch = vmath.Lerp(u.Pitch, wantPitch, t)
}

// Forward returns the unit aim direction (heading in the horizontal plane).
func (u *Unit) Forward() vmath.Vec3 {
	return vmath.Forward(u.Yaw)
}

// Speed returns the current velocity magnitude.
func (u *Unit) Speed() float64 {
	return u.Vel.Len()
}

// BoostPercent returns the boost gauge as 0..100.
func (u *Unit) BoostPercent() float64 {
	if u.params.BoostMax <= 0 {
		return 0
	}
	return u.Boost / u.params.BoostMax * 100
}

// Radius returns the hull collision radius.
func (u *Unit) Radius() float64 {
	return u.params.Radius
}
