package sim

import "github.com/okabe/colossus/internal/vmath"

// BeamParams configure the instant-hit beam.
type BeamParams struct {
	DamagePerSecond float64
	Range           float64
}

type attackKind int

const (
	attackBeam attackKind = iota
	attackRound
)

// attack is one hit-resolution request. Both attack modes flow through
// the same resolution routine; the kind only decides accuracy
// bookkeeping and whether a launcher round is consumed.
type attack struct {
	kind    attackKind
	origin  vmath.Vec3
	dir     vmath.Vec3
	maxDist float64
	damage  float64
	round   int // Launcher round index, -1 for the beam
}

// resolveAttacks builds and resolves this tick's attacks: the beam first
// (when fire is held), then every live round. Beam damage is
// Δt-normalized so effective damage per second is constant at any frame
// rate. Rounds are cast over the distance they covered this tick, so a
// fast round cannot tunnel through a thin hit volume between ticks.
func (m *Mission) resolveAttacks(c Controls, dt float64) {
	m.attackBuf = m.attackBuf[:0]

	if c.Fire {
		m.attackBuf = append(m.attackBuf, attack{
			kind:    attackBeam,
			origin:  m.unit.Pos,
			dir:     m.unit.Forward(),
			maxDist: m.cfg.Beam.Range,
			damage:  m.cfg.Beam.DamagePerSecond * dt,
			round:   -1,
		})
	}

	// Descending round order: a removal then only ever moves the current
	// last slot, so the indices still pending stay valid.
	rounds := m.launcher.Rounds()
	for i := len(rounds) - 1; i >= 0; i-- {
		r := rounds[i]
		if r.LastStep <= 0 {
			continue // Spawned this tick, resolves next tick
		}
		m.attackBuf = append(m.attackBuf, attack{
			kind:    attackRound,
			origin:  r.Pos.Sub(r.Dir.Scale(r.LastStep)),
			dir:     r.Dir,
			maxDist: r.LastStep,
			damage:  m.launcher.Damage(),
			round:   i,
		})
	}

	for _, a := range m.attackBuf {
		m.resolve(a)
	}
}

// resolve casts one attack and applies its outcome. Each beam tick
// counts as one shot for accuracy: a tick with no intersection is a
// recorded miss. A round is consumed by any intersection, whether or not
// the segment died; rounds that expire without hitting were already
// counted as shots when fired.
func (m *Mission) resolve(a attack) {
	if a.kind == attackBeam {
		m.combo.Stats.ShotsFired++
	}

	hit, ok := m.caster.Cast(a.origin, a.dir, a.maxDist)
	if !ok {
		return
	}

	if a.kind == attackRound {
		m.launcher.Remove(a.round)
	}
	m.applyHit(hit, a.damage)
}

// applyHit routes a resolved intersection into damage, scoring and
// events. A nil damage result means the hit reference went stale (the
// segment died earlier this tick); that is a silent no-op, not a fault.
func (m *Mission) applyHit(hit RayHit, damage float64) {
	res := m.structure.Damage(hit.Segment, damage)
	if res == nil {
		return
	}

	m.combo.Stats.ShotsHit++
	m.combo.Stats.TotalDamage += damage

	points := m.combo.AddScore(res.Points)
	m.listener.OnHit(hit.Point, damage, res.Destroyed, res.Category)
	m.listener.OnScoreAwarded(points, m.combo.Streak)

	if res.Destroyed {
		m.combo.Stats.SegmentsDestroyed++
		m.listener.OnSegmentDestroyed(hit.Segment)
	}
}
