package sim

import "github.com/okabe/colossus/internal/vmath"

// Result summarizes a finished mission.
type Result struct {
	Victory bool
	Reason  string // "destroyed" or "timeout"

	BaseScore        int
	TimeBonus        int
	DestructionBonus int
	StreakBonus      int
	FinalScore       int

	DestructionPercent float64
	TimeRemaining      float64
	PlayTime           float64
	Stats              Stats
}

// Listener receives the discrete events produced by the simulation.
// Audio, particles, HUD and leaderboard collaborators hang off this;
// the core never depends on what they do with it.
type Listener interface {
	OnHit(point vmath.Vec3, damage float64, destroyed bool, category Category)
	OnSegmentDestroyed(index int)
	OnScoreAwarded(points, newStreak int)
	OnCollision(pos vmath.Vec3)
	OnMissionEnd(res Result)
}

// NopListener discards all events.
type NopListener struct{}

func (NopListener) OnHit(vmath.Vec3, float64, bool, Category) {}
func (NopListener) OnSegmentDestroyed(int)                    {}
func (NopListener) OnScoreAwarded(int, int)                   {}
func (NopListener) OnCollision(vmath.Vec3)                    {}
func (NopListener) OnMissionEnd(Result)                       {}
