package sim

import (
	"testing"

	"github.com/okabe/colossus/internal/vmath"
)

func testCategories() map[Category]CategoryStats {
	return map[Category]CategoryStats{
		CategoryCore:   {MaxHealth: 500, Bounty: 2000},
		CategoryArmor:  {MaxHealth: 120, Bounty: 300},
		CategoryTurret: {MaxHealth: 60, Bounty: 500},
		CategoryFrame:  {MaxHealth: 50, Bounty: 100},
	}
}

func singleSegmentStructure(t *testing.T) *Structure {
	t.Helper()
	s, err := NewStructure(
		[]SegmentSpec{{Category: CategoryFrame, Center: vmath.Vec3{Z: 10}, Radius: 3}},
		testCategories(),
	)
	if err != nil {
		t.Fatalf("NewStructure: %v", err)
	}
	return s
}

func TestNewStructureRejectsEmptyLayout(t *testing.T) {
	if _, err := NewStructure(nil, testCategories()); err == nil {
		t.Fatal("expected error for zero segments")
	}
}

func TestNewStructureRejectsUnknownCategory(t *testing.T) {
	specs := []SegmentSpec{{Category: Category(99), Radius: 1}}
	if _, err := NewStructure(specs, testCategories()); err == nil {
		t.Fatal("expected error for category without stats")
	}
}

func TestDamageTwoHitScenario(t *testing.T) {
	// One segment, maxHealth=50, bounty=100; two hits of 30 damage.
	s := singleSegmentStructure(t)

	first := s.Damage(0, 30)
	if first == nil || first.Destroyed || first.Points != 30 {
		t.Fatalf("first hit = %+v, want non-lethal 30 points", first)
	}
	seg, _ := s.Segment(0)
	if seg.Health() != 20 {
		t.Fatalf("health after first hit = %.1f, want 20", seg.Health())
	}

	second := s.Damage(0, 30)
	if second == nil || !second.Destroyed || second.Points != 100 {
		t.Fatalf("second hit = %+v, want lethal bounty 100", second)
	}
	seg, _ = s.Segment(0)
	if seg.Health() != 0 {
		t.Fatalf("health after kill = %.1f, want 0", seg.Health())
	}
	if s.DestructionPercent() != 100 {
		t.Fatalf("destruction = %.2f, want 100", s.DestructionPercent())
	}
}

func TestDamageDestroyedSegmentIsIdempotent(t *testing.T) {
	s := singleSegmentStructure(t)
	s.Damage(0, 1000)

	before := s.TotalHealth()
	for i := 0; i < 3; i++ {
		if res := s.Damage(0, 50); res != nil {
			t.Fatalf("damage on destroyed segment returned %+v, want nil", res)
		}
	}
	if s.TotalHealth() != before {
		t.Fatal("repeated damage on destroyed segment changed aggregate health")
	}
}

func TestDamageInvalidIndex(t *testing.T) {
	s := singleSegmentStructure(t)
	if res := s.Damage(-1, 10); res != nil {
		t.Fatalf("negative index returned %+v, want nil", res)
	}
	if res := s.Damage(99, 10); res != nil {
		t.Fatalf("out-of-range index returned %+v, want nil", res)
	}
}

func TestDestructionPercentMonotonic(t *testing.T) {
	s, err := NewStructure([]SegmentSpec{
		{Category: CategoryFrame, Center: vmath.Vec3{X: -5}, Radius: 2},
		{Category: CategoryArmor, Center: vmath.Vec3{}, Radius: 2},
		{Category: CategoryTurret, Center: vmath.Vec3{X: 5}, Radius: 2},
	}, testCategories())
	if err != nil {
		t.Fatalf("NewStructure: %v", err)
	}

	prev := s.DestructionPercent()
	hits := []struct {
		index  int
		amount float64
	}{
		{0, 20}, {1, 60}, {0, 100 /* overkill */}, {2, 60}, {1, 60}, {1, 500},
	}
	for _, h := range hits {
		s.Damage(h.index, h.amount)
		cur := s.DestructionPercent()
		if cur < prev {
			t.Fatalf("destruction went backwards: %.2f -> %.2f", prev, cur)
		}
		prev = cur
	}
	if prev != 100 {
		t.Fatalf("destruction with all segments dead = %.2f, want exactly 100", prev)
	}
}

func TestOverkillDoesNotInflateDestruction(t *testing.T) {
	s := singleSegmentStructure(t)
	s.Damage(0, 1e6)
	if got := s.DestructionPercent(); got != 100 {
		t.Fatalf("destruction after massive overkill = %.2f, want 100", got)
	}
}

func TestCastFindsNearestLiveSegment(t *testing.T) {
	s, err := NewStructure([]SegmentSpec{
		{Category: CategoryFrame, Center: vmath.Vec3{Z: 10}, Radius: 2},
		{Category: CategoryFrame, Center: vmath.Vec3{Z: 20}, Radius: 2},
	}, testCategories())
	if err != nil {
		t.Fatalf("NewStructure: %v", err)
	}

	origin := vmath.Vec3{}
	dir := vmath.Vec3{Z: 1}

	hit, ok := s.Cast(origin, dir, 100)
	if !ok || hit.Segment != 0 {
		t.Fatalf("cast hit segment %d (ok=%v), want nearest segment 0", hit.Segment, ok)
	}

	// Destroy the near segment: it must never be selectable again.
	s.Damage(0, 1e6)
	hit, ok = s.Cast(origin, dir, 100)
	if !ok || hit.Segment != 1 {
		t.Fatalf("cast after kill hit segment %d (ok=%v), want 1", hit.Segment, ok)
	}

	s.Damage(1, 1e6)
	if _, ok := s.Cast(origin, dir, 100); ok {
		t.Fatal("cast against fully destroyed structure reported a hit")
	}
}
