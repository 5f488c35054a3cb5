package sim

import (
	"fmt"
	"math"

	"github.com/okabe/colossus/internal/physics"
	"github.com/okabe/colossus/internal/vmath"
)

// Category classifies a structure segment. The category decides max
// health and the bounty paid for destroying the segment.
type Category int

const (
	CategoryFrame Category = iota
	CategoryArmor
	CategoryTurret
	CategoryCore
)

func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "frame"
	case CategoryArmor:
		return "armor"
	case CategoryTurret:
		return "turret"
	case CategoryCore:
		return "core"
	default:
		return "unknown"
	}
}

// CategoryStats hold the per-category health pool and destruction bounty.
type CategoryStats struct {
	MaxHealth float64
	Bounty    int
}

// SegmentSpec describes one segment at structure-build time.
type SegmentSpec struct {
	Category Category
	Center   vmath.Vec3
	Radius   float64
}

// Segment is one independently-destroyable piece of the colossus. The
// index is its stable identity for the whole mission; segments are never
// added or removed at runtime. Health may go negative internally from
// overkill damage; use Health() for the exposed, clamped value.
type Segment struct {
	Index    int
	Category Category
	Center   vmath.Vec3
	Radius   float64

	MaxHealth float64
	Bounty    int
	Destroyed bool

	health float64
}

// Health returns the segment's remaining health, clamped to ≥ 0.
func (s *Segment) Health() float64 {
	if s.health < 0 {
		return 0
	}
	return s.health
}

// HitResult reports the outcome of a damage application. A non-lethal
// hit awards points proportional to the raw damage dealt; a lethal hit
// awards the segment's flat bounty instead, however much overkill was
// applied.
type HitResult struct {
	Destroyed bool
	Points    int
	Category  Category
}

// Structure is the segmented destructible colossus.
type Structure struct {
	segments []Segment
	totalMax float64
}

// NewStructure assembles the colossus from segment specs. It fails fast
// on an empty layout or a category without a positive health pool, since
// a malformed structure cannot be recovered from once play starts.
func NewStructure(specs []SegmentSpec, stats map[Category]CategoryStats) (*Structure, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("structure: no segments configured")
	}

	segments := make([]Segment, len(specs))
	totalMax := 0.0
	for i, spec := range specs {
		cs, ok := stats[spec.Category]
		if !ok || cs.MaxHealth <= 0 {
			return nil, fmt.Errorf("structure: segment %d: category %s has no health pool", i, spec.Category)
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("structure: segment %d: non-positive radius", i)
		}
		segments[i] = Segment{
			Index:     i,
			Category:  spec.Category,
			Center:    spec.Center,
			Radius:    spec.Radius,
			MaxHealth: cs.MaxHealth,
			Bounty:    cs.Bounty,
			health:    cs.MaxHealth,
		}
		totalMax += cs.MaxHealth
	}

	return &Structure{segments: segments, totalMax: totalMax}, nil
}

// Len returns the fixed segment count.
func (s *Structure) Len() int {
	return len(s.segments)
}

// Segment returns a copy of the segment at index, or false for an invalid
// index.
func (s *Structure) Segment(index int) (Segment, bool) {
	if index < 0 || index >= len(s.segments) {
		return Segment{}, false
	}
	return s.segments[index], true
}

// EachLive calls fn for every non-destroyed segment.
func (s *Structure) EachLive(fn func(seg *Segment)) {
	for i := range s.segments {
		if !s.segments[i].Destroyed {
			fn(&s.segments[i])
		}
	}
}

// Damage applies amount to the segment at index. It is a no-op returning
// nil for an invalid index or an already-destroyed segment: a stale hit
// reference (a segment killed earlier in the same tick by the other
// attack mode) is expected, not a fault.
func (s *Structure) Damage(index int, amount float64) *HitResult {
	if index < 0 || index >= len(s.segments) {
		return nil
	}
	seg := &s.segments[index]
	if seg.Destroyed {
		return nil
	}

	seg.health -= amount
	if seg.health <= 0 {
		seg.Destroyed = true
		return &HitResult{Destroyed: true, Points: seg.Bounty, Category: seg.Category}
	}
	return &HitResult{Destroyed: false, Points: int(math.Floor(amount)), Category: seg.Category}
}

// TotalMaxHealth returns the fixed structure-wide health pool.
func (s *Structure) TotalMaxHealth() float64 {
	return s.totalMax
}

// TotalHealth sums remaining (clamped) segment health. Recomputed from
// the segments rather than tracked incrementally, so overkill damage can
// never make the aggregate drift.
func (s *Structure) TotalHealth() float64 {
	total := 0.0
	for i := range s.segments {
		total += s.segments[i].Health()
	}
	return total
}

// DestructionPercent returns how much of the structure has been
// destroyed, 0..100. Exactly 100 when every segment is destroyed.
func (s *Structure) DestructionPercent() float64 {
	if s.totalMax <= 0 {
		return 0
	}
	return (s.totalMax - s.TotalHealth()) / s.totalMax * 100
}

// RayHit is the nearest intersection found by a cast.
type RayHit struct {
	Point    vmath.Vec3
	Segment  int
	Distance float64
}

// Caster answers nearest-intersection ray queries against the structure's
// hit volumes. The structure itself is the default implementation; a
// renderer-owned collider can be injected instead.
type Caster interface {
	Cast(origin, dir vmath.Vec3, maxDist float64) (RayHit, bool)
}

// Cast finds the nearest live segment intersected by the ray. Destroyed
// segments are never selectable.
func (s *Structure) Cast(origin, dir vmath.Vec3, maxDist float64) (RayHit, bool) {
	best := RayHit{Segment: -1}
	found := false
	for i := range s.segments {
		seg := &s.segments[i]
		if seg.Destroyed {
			continue
		}
		t, ok := physics.RaySphere(origin, dir, seg.Center, seg.Radius, maxDist)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = RayHit{
				Point:    origin.Add(dir.Scale(t)),
				Segment:  i,
				Distance: t,
			}
			found = true
		}
	}
	return best, found
}
