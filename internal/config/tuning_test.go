package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBuildsValidMission(t *testing.T) {
	cfg, err := Default().MissionConfig()
	if err != nil {
		t.Fatalf("MissionConfig: %v", err)
	}
	if len(cfg.Segments) == 0 {
		t.Fatal("default colossus has no segments")
	}
	if cfg.Duration <= 0 || cfg.WinThreshold <= 0 {
		t.Fatalf("bad mission defaults: duration=%.1f threshold=%.1f", cfg.Duration, cfg.WinThreshold)
	}
	if cfg.Cannon.FireRate != 0.1 {
		t.Fatalf("default fire rate = %.3f, want 0.1", cfg.Cannon.FireRate)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := `
mission:
  duration_seconds: 90
  win_threshold_percent: 50
beam:
  damage_per_second: 75
  range: 200
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tn, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tn.Mission.DurationSeconds != 90 || tn.Mission.WinThresholdPercent != 50 {
		t.Fatalf("mission override not applied: %+v", tn.Mission)
	}
	if tn.Beam.DamagePerSecond != 75 {
		t.Fatalf("beam override not applied: %+v", tn.Beam)
	}
	// Untouched sections keep their defaults.
	if tn.Cannon.Speed != 150 {
		t.Fatalf("cannon default lost: %+v", tn.Cannon)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	tn, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if tn.Mission.DurationSeconds != Default().Mission.DurationSeconds {
		t.Fatal("empty path should return defaults")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("mission: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestMissionConfigRejectsUnknownCategory(t *testing.T) {
	tn := Default()
	tn.Colossus.Segments[0].Category = "superweapon"
	if _, err := tn.MissionConfig(); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
