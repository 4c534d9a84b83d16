package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, expected nil", err)
	}
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default Validate() = %v, expected nil", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("initial_money: 99\ninitial_lives: 3\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.InitialMoney != 99 || cfg.InitialLives != 3 {
		t.Errorf("money/lives = %d/%d, expected 99/3", cfg.InitialMoney, cfg.InitialLives)
	}
	if len(cfg.Towers) != len(DefaultConfig().Towers) {
		t.Errorf("len(Towers) = %d, expected defaults kept", len(cfg.Towers))
	}
	if !cfg.LivesEnabled() {
		t.Error("LivesEnabled() = false, expected true")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("initial_money: 75\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.InitialMoney != 75 {
		t.Errorf("InitialMoney = %d, expected 75", cfg.InitialMoney)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("fixed_delta_time: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "fixed_delta_time") {
		t.Errorf("Load(bad) error = %v, expected fixed_delta_time complaint", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative money", func(c *Config) { c.InitialMoney = -1 }, "initial_money"},
		{"zero cell", func(c *Config) { c.Map.CellSize = 0 }, "map dimensions"},
		{"duplicate enemy", func(c *Config) { c.Enemies = append(c.Enemies, c.Enemies[0]) }, "duplicate enemy"},
		{"zero speed", func(c *Config) { c.Enemies[0].Speed = 0 }, "health and speed"},
		{"duplicate tower", func(c *Config) { c.Towers = append(c.Towers, c.Towers[0]) }, "duplicate tower"},
		{"zero cooldown", func(c *Config) { c.Towers[0].AttackCooldown = 0 }, "attack_cooldown"},
		{"shrinking waves", func(c *Config) { c.Waves.HealthGrowthFactor = 0.5 }, "growth factors"},
		{"empty wave list", func(c *Config) { c.Waves.List = nil }, "at least one wave"},
		{"unknown wave enemy", func(c *Config) {
			c.Waves.List = []WaveComposition{{"ghost": 2}}
		}, `unknown enemy type "ghost"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tt.want)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		money  int
		wantLv int
	}{
		{DifficultyNormal, 10, 40, 10},
		{DifficultyEasy, 10, 60, 15},
		{DifficultyHard, 10, 30, 5},
		{DifficultyEasy, 0, 60, 0},
		{DifficultyHard, 1, 30, 1},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.InitialMoney = 40
		cfg.InitialLives = tt.lives
		ApplyPreset(&cfg, tt.preset)
		if cfg.InitialMoney != tt.money || cfg.InitialLives != tt.wantLv {
			t.Errorf("ApplyPreset(%s, lives %d) = money %d lives %d, expected %d/%d",
				tt.preset, tt.lives, cfg.InitialMoney, cfg.InitialLives, tt.money, tt.wantLv)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		ok       bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"nightmare", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.input)
		if ok != tt.ok || (ok && got != tt.expected) {
			t.Errorf("ParsePreset(%q) = %q, %v, expected %q, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}
