// Package sim implements the per-frame combat simulation: free-flight
// kinematics, the projectile and beam attack modes, the segmented
// destructible colossus, hit resolution, and combo scoring. The package
// is single-threaded and frame-driven; one Tick per rendered frame, all
// work synchronous, no shared mutable state outside the Mission.
package sim

import (
	"math"

	"github.com/okabe/colossus/internal/physics"
	"github.com/okabe/colossus/internal/vmath"
)

// Final score bonus weights.
const (
	timeBonusPerSecond   = 50
	destructionBonusRate = 100
	streakBonusPerLevel  = 100
)

// collisionGrace is the minimum time between reported hull collisions,
// so a grazing contact does not spam the collision event every tick.
const collisionGrace = 0.5

// MissionConfig assembles every tunable the simulation needs.
type MissionConfig struct {
	Ship   ShipParams
	Cannon CannonParams
	Beam   BeamParams
	Combo  ComboParams

	Duration     float64 // Mission time limit (seconds)
	WinThreshold float64 // Destruction percent required for victory

	SpawnPos vmath.Vec3
	SpawnYaw float64

	Segments   []SegmentSpec
	Categories map[Category]CategoryStats
}

// Mission is the tick orchestrator. It owns all simulation state and
// drives the fixed per-tick pipeline: integration → projectile advance →
// hit resolution (beam, then rounds) → damage and scoring → combo decay →
// hull collision → timer → win/loss evaluation.
type Mission struct {
	cfg       MissionConfig
	unit      *Unit
	structure *Structure
	launcher  *Launcher
	combo     *Combo

	caster   Caster
	listener Listener

	timeLeft     float64
	playTime     float64
	over         bool
	result       Result
	collideGrace float64

	attackBuf []attack
}

// NewMission validates the configuration and builds a ready-to-tick
// mission. listener may be nil.
func NewMission(cfg MissionConfig, listener Listener) (*Mission, error) {
	structure, err := NewStructure(cfg.Segments, cfg.Categories)
	if err != nil {
		return nil, err
	}
	if listener == nil {
		listener = NopListener{}
	}

	return &Mission{
		cfg:       cfg,
		unit:      NewUnit(cfg.SpawnPos, cfg.SpawnYaw, cfg.Ship),
		structure: structure,
		launcher:  NewLauncher(cfg.Cannon),
		combo:     NewCombo(cfg.Combo),
		caster:    structure,
		listener:  listener,
		timeLeft:  cfg.Duration,
	}, nil
}

// SetCaster replaces the ray-intersection service. The structure's own
// hit volumes are the default.
func (m *Mission) SetCaster(c Caster) {
	if c != nil {
		m.caster = c
	}
}

// Tick advances the simulation by dt seconds from one control sample.
// The phase order is load-bearing: win/loss evaluation must see this
// tick's damage, and round removal during resolution must never disturb
// segment index stability (it only touches the round collection).
func (m *Mission) Tick(c Controls, dt float64) {
	if m.over || dt <= 0 {
		return
	}
	m.playTime += dt

	m.unit.Update(c, dt)
	m.launcher.Update(dt)

	if c.Fire {
		if m.launcher.Fire(m.unit.Pos, m.unit.Forward()) {
			m.combo.Stats.ShotsFired++
		}
	}

	m.resolveAttacks(c, dt)
	m.combo.Update(dt)
	m.resolveBodyCollision(dt)

	m.timeLeft -= dt
	if m.timeLeft < 0 {
		m.timeLeft = 0
	}

	switch {
	case m.structure.DestructionPercent() >= m.cfg.WinThreshold:
		m.finish(true, "destroyed")
	case m.timeLeft <= 0:
		m.finish(false, "timeout")
	}
}

// resolveBodyCollision pushes the craft out of any live segment it has
// flown into and damps its velocity. The collision event is rate-limited
// by a short grace period.
func (m *Mission) resolveBodyCollision(dt float64) {
	if m.collideGrace > 0 {
		m.collideGrace -= dt
	}

	hull := m.unit.Radius()
	collided := false
	m.structure.EachLive(func(seg *Segment) {
		if !physics.SpheresOverlap(m.unit.Pos, hull, seg.Center, seg.Radius) {
			return
		}
		collided = true

		normal := m.unit.Pos.Sub(seg.Center).Normalized()
		if normal.LenSq() == 0 {
			normal = vmath.Vec3{Y: 1} // Dead-center overlap, push straight up
		}
		m.unit.Pos = seg.Center.Add(normal.Scale(seg.Radius + hull))
		m.unit.Vel = m.unit.Vel.Scale(0.2)
	})

	if collided && m.collideGrace <= 0 {
		m.collideGrace = collisionGrace
		m.listener.OnCollision(m.unit.Pos)
	}
}

// finish transitions to the terminal game-over state. Idempotent: only
// the first call takes effect.
func (m *Mission) finish(victory bool, reason string) {
	if m.over {
		return
	}
	m.over = true

	destruction := m.structure.DestructionPercent()
	res := Result{
		Victory:            victory,
		Reason:             reason,
		BaseScore:          m.combo.Score,
		TimeBonus:          int(math.Floor(m.timeLeft * timeBonusPerSecond)),
		DestructionBonus:   int(math.Floor(destruction * destructionBonusRate)),
		StreakBonus:        m.combo.Stats.MaxStreak * streakBonusPerLevel,
		DestructionPercent: destruction,
		TimeRemaining:      m.timeLeft,
		PlayTime:           m.playTime,
		Stats:              m.combo.Stats,
	}
	res.FinalScore = res.BaseScore + res.TimeBonus + res.DestructionBonus + res.StreakBonus

	m.result = res
	m.listener.OnMissionEnd(res)
}

// Over reports whether the mission has reached its terminal state.
func (m *Mission) Over() bool {
	return m.over
}

// Result returns the mission summary; ok is false until the mission is
// over.
func (m *Mission) Result() (Result, bool) {
	return m.result, m.over
}

// Unit exposes the craft for the display layer.
func (m *Mission) Unit() *Unit {
	return m.unit
}

// Structure exposes the colossus for the display layer.
func (m *Mission) Structure() *Structure {
	return m.structure
}

// Rounds exposes the live cannon rounds for the display layer.
func (m *Mission) Rounds() []Round {
	return m.launcher.Rounds()
}

// Snapshot is the per-tick HUD view of the simulation.
type Snapshot struct {
	Pos   vmath.Vec3
	Yaw   float64
	Pitch float64
	Roll  float64
	Speed float64

	BoostPercent        float64
	DestructionPercent  float64
	TimeRemaining       float64
	Score               int
	Streak              int
	StreakWindowPercent float64
	Over                bool
}

// Snapshot captures the current HUD state.
func (m *Mission) Snapshot() Snapshot {
	return Snapshot{
		Pos:                 m.unit.Pos,
		Yaw:                 m.unit.Yaw,
		Pitch:               m.unit.Pitch,
		Roll:                m.unit.Roll,
		Speed:               m.unit.Speed(),
		BoostPercent:        m.unit.BoostPercent(),
		DestructionPercent:  m.structure.DestructionPercent(),
		TimeRemaining:       m.timeLeft,
		Score:               m.combo.Score,
		Streak:              m.combo.Streak,
		StreakWindowPercent: m.combo.WindowPercent(),
		Over:                m.over,
	}
}
