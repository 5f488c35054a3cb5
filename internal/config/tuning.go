package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okabe/colossus/internal/sim"
	"github.com/okabe/colossus/internal/vmath"
)

// Tuning is the gameplay tuning file. Every field has a compiled-in
// default; a partial file overrides only what it names.
type Tuning struct {
	Mission  MissionTuning  `yaml:"mission"`
	Ship     ShipTuning     `yaml:"ship"`
	Cannon   CannonTuning   `yaml:"cannon"`
	Beam     BeamTuning     `yaml:"beam"`
	Combo    ComboTuning    `yaml:"combo"`
	Colossus ColossusTuning `yaml:"colossus"`
}

type MissionTuning struct {
	DurationSeconds     float64    `yaml:"duration_seconds"`
	WinThresholdPercent float64    `yaml:"win_threshold_percent"`
	SpawnPos            [3]float64 `yaml:"spawn_pos"`
	SpawnYaw            float64    `yaml:"spawn_yaw"`
}

type ShipTuning struct {
	NormalSpeed    float64 `yaml:"normal_speed"`
	BoostSpeed     float64 `yaml:"boost_speed"`
	Inertia        float64 `yaml:"inertia"`
	BoostInertia   float64 `yaml:"boost_inertia"`
	TurnRate       float64 `yaml:"turn_rate"`
	YawConvergence float64 `yaml:"yaw_convergence"`
	TiltMax        float64 `yaml:"tilt_max"`
	TiltRate       float64 `yaml:"tilt_rate"`
	BoostMax       float64 `yaml:"boost_max"`
	BoostDrain     float64 `yaml:"boost_drain"`
	BoostRegen     float64 `yaml:"boost_regen"`
	Radius         float64 `yaml:"radius"`
}

type CannonTuning struct {
	FireRateSeconds float64 `yaml:"fire_rate_seconds"`
	Damage          float64 `yaml:"damage"`
	Speed           float64 `yaml:"speed"`
	Range           float64 `yaml:"range"`
	MuzzleOffset    float64 `yaml:"muzzle_offset"`
}

type BeamTuning struct {
	DamagePerSecond float64 `yaml:"damage_per_second"`
	Range           float64 `yaml:"range"`
}

type ComboTuning struct {
	WindowSeconds float64 `yaml:"window_seconds"`
	StreakBonus   float64 `yaml:"streak_bonus"`
}

type ColossusTuning struct {
	Categories map[string]CategoryTuning `yaml:"categories"`
	Segments   []SegmentTuning           `yaml:"segments"`
}

type CategoryTuning struct {
	MaxHealth float64 `yaml:"max_health"`
	Bounty    int     `yaml:"bounty"`
}

type SegmentTuning struct {
	Category string     `yaml:"category"`
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
}

// Default returns the stock mission: a dreadnought built around a core
// sphere, ringed by armor plates, with turret pods and frame trusses.
func Default() Tuning {
	segments := []SegmentTuning{
		{Category: "core", Center: [3]float64{0, 12, 0}, Radius: 8},
	}
	// Armor ring around the core.
	ring := [][3]float64{
		{14, 12, 0}, {10, 12, 10}, {0, 12, 14}, {-10, 12, 10},
		{-14, 12, 0}, {-10, 12, -10}, {0, 12, -14}, {10, 12, -10},
	}
	for _, c := range ring {
		segments = append(segments, SegmentTuning{Category: "armor", Center: c, Radius: 5})
	}
	// Turret pods above and below the armor belt.
	for _, c := range [][3]float64{{12, 22, 12}, {-12, 22, 12}, {12, 22, -12}, {-12, 22, -12}} {
		segments = append(segments, SegmentTuning{Category: "turret", Center: c, Radius: 3.5})
	}
	// Frame trusses: spine and legs.
	for _, c := range [][3]float64{
		{0, 26, 0}, {0, 2, 0},
		{18, 4, 18}, {-18, 4, 18}, {18, 4, -18}, {-18, 4, -18},
	} {
		segments = append(segments, SegmentTuning{Category: "frame", Center: c, Radius: 4})
	}

	return Tuning{
		Mission: MissionTuning{
			DurationSeconds:     120,
			WinThresholdPercent: 70,
			SpawnPos:            [3]float64{0, 12, -90},
			SpawnYaw:            0,
		},
		Ship: ShipTuning{
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
		},
		Cannon: CannonTuning{
			FireRateSeconds: 0.1,
			Damage:          25,
			Speed:           150,
			Range:           60,
			MuzzleOffset:    2,
		},
		Beam: BeamTuning{
			DamagePerSecond: 40,
			Range:           120,
		},
		Combo: ComboTuning{
			WindowSeconds: 2,
			StreakBonus:   0.1,
		},
		Colossus: ColossusTuning{
			Categories: map[string]CategoryTuning{
				"core":   {MaxHealth: 500, Bounty: 2000},
				"armor":  {MaxHealth: 120, Bounty: 300},
				"turret": {MaxHealth: 60, Bounty: 500},
				"frame":  {MaxHealth: 80, Bounty: 150},
			},
			Segments: segments,
		},
	}
}

// Load reads a tuning file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// parseCategory maps the tuning-file category names onto sim categories.
func parseCategory(name string) (sim.Category, error) {
	switch name {
	case "frame":
		return sim.CategoryFrame, nil
	case "armor":
		return sim.CategoryArmor, nil
	case "turret":
		return sim.CategoryTurret, nil
	case "core":
		return sim.CategoryCore, nil
	default:
		return 0, fmt.Errorf("unknown segment category %q", name)
	}
}

// MissionConfig converts the tuning into the simulation's configuration.
func (t Tuning) MissionConfig() (sim.MissionConfig, error) {
	categories := make(map[sim.Category]sim.CategoryStats, len(t.Colossus.Categories))
	for name, cs := range t.Colossus.Categories {
		cat, err := parseCategory(name)
		if err != nil {
			return sim.MissionConfig{}, err
		}
		categories[cat] = sim.CategoryStats{MaxHealth: cs.MaxHealth, Bounty: cs.Bounty}
	}

	segments := make([]sim.SegmentSpec, len(t.Colossus.Segments))
	for i, st := range t.Colossus.Segments {
		cat, err := parseCategory(st.Category)
		if err != nil {
			return sim.MissionConfig{}, fmt.Errorf("segment %d: %w", i, err)
		}
		segments[i] = sim.SegmentSpec{
			Category: cat,
			Center:   vmath.Vec3{X: st.Center[0], Y: st.Center[1], Z: st.Center[2]},
			Radius:   st.Radius,
		}
	}

	return sim.MissionConfig{
		Ship: sim.ShipParams{
			NormalSpeed:    t.Ship.NormalSpeed,
			BoostSpeed:     t.Ship.BoostSpeed,
			Inertia:        t.Ship.Inertia,
			BoostInertia:   t.Ship.BoostInertia,
			TurnRate:       t.Ship.TurnRate,
			YawConvergence: t.Ship.YawConvergence,
			TiltMax:        t.Ship.TiltMax,
			TiltRate:       t.Ship.TiltRate,
			BoostMax:       t.Ship.BoostMax,
			BoostDrain:     t.Ship.BoostDrain,
			BoostRegen:     t.Ship.BoostRegen,
			Radius:         t.Ship.Radius,
		},
		Cannon: sim.CannonParams{
			FireRate:     t.Cannon.FireRateSeconds,
			Damage:       t.Cannon.Damage,
			Speed:        t.Cannon.Speed,
			Range:        t.Cannon.Range,
			MuzzleOffset: t.Cannon.MuzzleOffset,
		},
		Beam: sim.BeamParams{
			DamagePerSecond: t.Beam.DamagePerSecond,
			Range:           t.Beam.Range,
		},
		Combo: sim.ComboParams{
			Window:      t.Combo.WindowSeconds,
			StreakBonus: t.Combo.StreakBonus,
		},
		Duration:     t.Mission.DurationSeconds,
		WinThreshold: t.Mission.WinThresholdPercent,
		SpawnPos:     vmath.Vec3{X: t.Mission.SpawnPos[0], Y: t.Mission.SpawnPos[1], Z: t.Mission.SpawnPos[2]},
		SpawnYaw:     t.Mission.SpawnYaw,
		Segments:     segments,
		Categories:   categories,
	}, nil
}
