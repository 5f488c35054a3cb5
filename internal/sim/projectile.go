package sim

import "github.com/okabe/colossus/internal/vmath"

// CannonParams configure the projectile launcher.
type CannonParams struct {
	FireRate     float64 // Minimum seconds between shots
	Damage       float64 // Damage per round
	Speed        float64 // Travel speed (units/sec)
	Range        float64 // Max travel distance before a round expires
	MuzzleOffset float64 // Spawn distance ahead of the craft
}

// Round is one traveling cannon round.
type Round struct {
	Pos      vmath.Vec3
	Dir      vmath.Vec3 // Unit direction
	Traveled float64
	LastStep float64 // Distance covered in the most recent tick
}

// Launcher owns the live rounds and the fire-rate gate.
type Launcher struct {
	params   CannonParams
	rounds   []Round
	cooldown float64
}

// NewLauncher creates a launcher with no live rounds and a cold cannon.
func NewLauncher(p CannonParams) *Launcher {
	return &Launcher{params: p}
}

// Fire spawns one round from pos along dir. Returns false (no spawn)
// while the fire-rate cooldown has not elapsed.
func (l *Launcher) Fire(pos, dir vmath.Vec3) bool {
	if l.cooldown > 0 {
		return false
	}
	l.cooldown = l.params.FireRate

	origin := pos.Add(dir.Scale(l.params.MuzzleOffset))
	l.rounds = append(l.rounds, Round{Pos: origin, Dir: dir})
	return true
}

// Update advances every live round and expires the ones past max range.
// Expired rounds are removed silently, without dealing damage. Iteration
// is back-to-front so in-place removal never skips an element.
func (l *Launcher) Update(dt float64) {
	l.cooldown -= dt
	if l.cooldown < 0 {
		l.cooldown = 0
	}

	for i := len(l.rounds) - 1; i >= 0; i-- {
		r := &l.rounds[i]
		step := l.params.Speed * dt
		r.Pos = r.Pos.Add(r.Dir.Scale(step))
		r.Traveled += step
		r.LastStep = step

		if r.Traveled >= l.params.Range {
			l.Remove(i)
		}
	}
}

// Remove deletes the round at index i in place.
func (l *Launcher) Remove(i int) {
	last := len(l.rounds) - 1
	l.rounds[i] = l.rounds[last]
	l.rounds = l.rounds[:last]
}

// Rounds returns the live round slice. Valid until the next Update or
// Remove call.
func (l *Launcher) Rounds() []Round {
	return l.rounds
}

// Damage returns the per-round damage value.
func (l *Launcher) Damage() float64 {
	return l.params.Damage
}
