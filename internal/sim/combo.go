package sim

import "math"

// ComboParams configure the streak engine.
type ComboParams struct {
	Window      float64 // Seconds a streak survives without a hit
	StreakBonus float64 // Score multiplier step per streak level
}

// Stats are cumulative mission statistics.
type Stats struct {
	ShotsFired        int
	ShotsHit          int
	SegmentsDestroyed int
	MaxStreak         int
	TotalDamage       float64
}

// Accuracy returns hit ratio as 0..100.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.ShotsHit) / float64(s.ShotsFired) * 100
}

// Combo converts resolved hits into score with a decaying streak
// multiplier. Streak > 0 always implies a positive remaining window;
// the two reset together.
type Combo struct {
	Streak int
	Score  int
	Stats  Stats

	params  ComboParams
	timeout float64
}

// NewCombo creates an idle combo engine.
func NewCombo(p ComboParams) *Combo {
	return &Combo{params: p}
}

// AddScore is the sole scoring mutator. It awards
// floor(base · (1 + streak·bonus)) using the streak level before this
// hit, then increments the streak and rearms the timeout window.
// Scoring and streak maintenance are inseparable.
func (c *Combo) AddScore(base int) int {
	points := int(math.Floor(float64(base) * (1 + c.params.StreakBonus*float64(c.Streak))))
	c.Score += points

	c.Streak++
	if c.Streak > c.Stats.MaxStreak {
		c.Stats.MaxStreak = c.Streak
	}
	c.timeout = c.params.Window
	return points
}

// Update decays the streak window. When it runs out with no intervening
// hit the streak resets to zero atomically with the window.
func (c *Combo) Update(dt float64) {
	if c.Streak == 0 {
		return
	}
	c.timeout -= dt
	if c.timeout <= 0 {
		c.Streak = 0
		c.timeout = 0
	}
}

// WindowPercent returns the remaining streak window as 0..100.
func (c *Combo) WindowPercent() float64 {
	if c.params.Window <= 0 || c.Streak == 0 {
		return 0
	}
	return c.timeout / c.params.Window * 100
}
