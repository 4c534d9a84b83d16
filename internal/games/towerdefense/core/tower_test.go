package core

import (
	"errors"
	"testing"
)

func TestTowerBuild(t *testing.T) {
	cfg := testConfig()
	tm := NewTowerManager(mustMap(t, cfg.Map), cfg)

	towers, money, err := tm.Build(nil, "archer", Pos(75, 75), 50, 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if money != 30 {
		t.Errorf("money = %d, expected 30", money)
	}
	if len(towers) != 1 {
		t.Fatalf("len(towers) = %d, expected 1", len(towers))
	}
	if towers[0].AttackCooldown != 1 {
		t.Errorf("AttackCooldown = %v, expected base cooldown 1", towers[0].AttackCooldown)
	}
}

func TestTowerBuildFailures(t *testing.T) {
	cfg := testConfig()
	tm := NewTowerManager(mustMap(t, cfg.Map), cfg)
	existing := []*Tower{{Type: "archer", Position: Pos(75, 75), AttackCooldown: 1}}

	tests := []struct {
		name  string
		tower TowerType
		pos   Position
		money int
		wave  int
		want  error
	}{
		{"insufficient funds", "archer", Pos(125, 75), 19, 0, ErrInsufficientFunds},
		{"path cell", "archer", Pos(75, 25), 100, 0, ErrNotBuildable},
		{"not centered", "archer", Pos(100, 75), 100, 0, ErrNotBuildable},
		{"occupied", "archer", Pos(75, 75), 100, 0, ErrOccupied},
		{"unknown type", "laser", Pos(125, 75), 100, 0, ErrUnknownTowerType},
		{"locked", "cannon", Pos(125, 75), 100, 1, ErrTowerLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			towers, money, err := tm.Build(existing, tt.tower, tt.pos, tt.money, tt.wave)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build() error = %v, expected %v", err, tt.want)
			}
			if money != tt.money {
				t.Errorf("money = %d, expected unchanged %d", money, tt.money)
			}
			if len(towers) != len(existing) {
				t.Errorf("len(towers) = %d, expected unchanged %d", len(towers), len(existing))
			}
		})
	}

	// Unlocked once the wave is reached.
	if _, _, err := tm.Build(existing, "cannon", Pos(125, 75), 100, 2); err != nil {
		t.Errorf("Build(cannon, wave 2) error = %v", err)
	}
}

// A 10-damage tower with a 1s cooldown kills a 40-health enemy in four 1s
// ticks; the next enemy update removes it and pays the reward.
func TestTowerKillsEnemyInFourTicks(t *testing.T) {
	cfg := testConfig()
	m := mustMap(t, cfg.Map)
	em := NewEnemyManager(m, cfg)
	tm := NewTowerManager(m, cfg)

	enemies, _ := em.Spawn(nil, "basic", 1, 1)
	towers, money, err := tm.Build(nil, "archer", Pos(75, 75), 20, 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for i := 1; i <= 4; i++ {
		attacks := tm.Update(1, towers, enemies)
		if len(attacks) != 1 {
			t.Fatalf("tick %d: %d attacks, expected 1", i, len(attacks))
		}
		if want := 40 - 10*float64(i); enemies[0].CurrentHealth != want {
			t.Errorf("tick %d: CurrentHealth = %v, expected %v", i, enemies[0].CurrentHealth, want)
		}
	}

	enemies, report := em.Update(1, enemies)
	money += report.Reward
	if len(enemies) != 0 {
		t.Errorf("len(enemies) = %d, expected 0", len(enemies))
	}
	if money != 3 {
		t.Errorf("money = %d, expected reward 3", money)
	}
}

func TestTowerCooldown(t *testing.T) {
	cfg := testConfig()
	m := mustMap(t, cfg.Map)
	tm := NewTowerManager(m, cfg)
	towers := []*Tower{{Type: "archer", Position: Pos(75, 75), AttackCooldown: 1}}

	for i := 0; i < 5; i++ {
		tm.Update(0.3, towers, nil)
		if towers[0].AttackCooldown < 0 {
			t.Fatalf("AttackCooldown = %v, expected >= 0", towers[0].AttackCooldown)
		}
	}
	if towers[0].AttackCooldown != 0 {
		t.Errorf("AttackCooldown = %v, expected 0 without targets", towers[0].AttackCooldown)
	}
	if got := tm.CooldownFraction(towers[0]); got != 0 {
		t.Errorf("CooldownFraction() = %v, expected 0", got)
	}

	enemies := []*Enemy{{Type: "basic", CurrentHealth: 40, FullHealth: 40, Position: Pos(75, 25)}}
	if attacks := tm.Update(0.1, towers, enemies); len(attacks) != 1 {
		t.Fatalf("len(attacks) = %d, expected 1", len(attacks))
	}
	if towers[0].AttackCooldown != 1 {
		t.Errorf("AttackCooldown = %v, expected reset to 1", towers[0].AttackCooldown)
	}
	if got := tm.CooldownFraction(towers[0]); got != 1 {
		t.Errorf("CooldownFraction() = %v, expected 1", got)
	}
}

func TestTowerTargetsHighestProgress(t *testing.T) {
	cfg := testConfig()
	tm := NewTowerManager(mustMap(t, cfg.Map), cfg)

	enemies := []*Enemy{
		{Type: "basic", CurrentHealth: 40, PathProgress: 0.2, Position: Pos(25, 25)},
		{Type: "basic", CurrentHealth: 40, PathProgress: 0.5, Position: Pos(75, 25)},
		{Type: "basic", CurrentHealth: 40, PathProgress: 0.5, Position: Pos(75, 25)},
		{Type: "basic", CurrentHealth: 40, PathProgress: 0.9, Position: Pos(1000, 25)}, // out of range
	}
	towers := []*Tower{{Type: "archer", Position: Pos(75, 75)}}

	attacks := tm.Update(0, towers, enemies)
	if len(attacks) != 1 {
		t.Fatalf("len(attacks) = %d, expected 1", len(attacks))
	}
	if attacks[0].Target != enemies[1] {
		t.Errorf("target = %+v, expected the first enemy with progress 0.5", attacks[0].Target)
	}
	for i, e := range enemies {
		want := 40.0
		if i == 1 {
			want = 30
		}
		if e.CurrentHealth != want {
			t.Errorf("enemies[%d].CurrentHealth = %v, expected %v", i, e.CurrentHealth, want)
		}
	}
}

func TestTowerOutOfRange(t *testing.T) {
	cfg := testConfig()
	tm := NewTowerManager(mustMap(t, cfg.Map), cfg)

	towers := []*Tower{{Type: "archer", Position: Pos(175, 75)}}
	enemies := []*Enemy{{Type: "basic", CurrentHealth: 40, Position: Pos(25, 25)}}

	if attacks := tm.Update(1, towers, enemies); len(attacks) != 0 {
		t.Errorf("len(attacks) = %d, expected 0", len(attacks))
	}
	if enemies[0].CurrentHealth != 40 {
		t.Errorf("CurrentHealth = %v, expected 40", enemies[0].CurrentHealth)
	}
}
