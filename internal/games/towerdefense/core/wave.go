package core

import (
	"fmt"
	"math"

	"github.com/vovakirdan/towerdef/internal/config"
)

// WaveState is the state of the wave machine.
type WaveState int

const (
	WaveWaiting  WaveState = iota // Counting down to the next wave
	WaveSpawning                  // Releasing the current wave one enemy at a time
)

func (s WaveState) String() string {
	switch s {
	case WaveWaiting:
		return "WAITING"
	case WaveSpawning:
		return "SPAWNING"
	default:
		return fmt.Sprintf("WaveState(%d)", int(s))
	}
}

// Wave is a generated wave: its composition and the stat multipliers applied
// to every enemy it spawns.
type Wave struct {
	Number           int                    `json:"number"`
	Composition      config.WaveComposition `json:"composition"`
	HealthMultiplier float64                `json:"healthMultiplier"`
	SpeedMultiplier  float64                `json:"speedMultiplier"`
}

// WaveEvents reports what a wave update did.
type WaveEvents struct {
	Started int      // Number of the wave that started, 0 if none
	Spawned []*Enemy // Enemies spawned this tick
}

// WaveManager drives timed wave escalation and metered spawning.
type WaveManager struct {
	enemies *EnemyManager
	cfg     config.WavesConfig
	order   []EnemyType

	state      WaveState
	number     int
	current    Wave
	remaining  map[EnemyType]int
	waveTimer  float64
	spawnTimer float64
}

// NewWaveManager creates a wave manager in the WAITING state. Every enemy
// type named by the authored waves must be configured.
func NewWaveManager(em *EnemyManager, cfg config.Config) (*WaveManager, error) {
	if len(cfg.Waves.List) == 0 {
		return nil, invalid(CodeEmptyWaveList, "at least one authored wave is required")
	}
	for i, w := range cfg.Waves.List {
		for t := range w {
			if _, ok := cfg.Enemy(t); !ok {
				return nil, invalid(CodeUnknownEnemyType, "wave %d names unknown enemy type %q", i+1, t)
			}
		}
	}
	wm := &WaveManager{
		enemies: em,
		cfg:     cfg.Waves,
		order:   cfg.EnemyOrder(),
	}
	wm.Reset()
	return wm, nil
}

// Reset returns the machine to WAITING before wave 1 with fresh timers.
func (wm *WaveManager) Reset() {
	wm.state = WaveWaiting
	wm.number = 0
	wm.current = Wave{HealthMultiplier: 1, SpeedMultiplier: 1}
	wm.remaining = make(map[EnemyType]int, len(wm.order))
	wm.waveTimer = wm.cfg.WaveDelay
	wm.spawnTimer = wm.cfg.SpawnDelay
}

// Update advances the timers by dt. At most one wave starts or one enemy
// spawns per call.
func (wm *WaveManager) Update(dt float64, enemies []*Enemy) ([]*Enemy, WaveEvents) {
	var ev WaveEvents

	switch wm.state {
	case WaveWaiting:
		wm.waveTimer -= dt
		if wm.waveTimer <= 0 {
			wm.number++
			wm.current = wm.GenerateWave(wm.number)
			wm.remaining = make(map[EnemyType]int, len(wm.current.Composition))
			for t, n := range wm.current.Composition {
				wm.remaining[t] = n
			}
			wm.waveTimer = wm.cfg.WaveDelay
			wm.state = WaveSpawning
			ev.Started = wm.number
		}

	case WaveSpawning:
		wm.spawnTimer -= dt
		if wm.spawnTimer > 0 {
			break
		}
		t, ok := wm.nextType()
		if !ok {
			// Wave exhausted. The spawn timer is left as is, so the first
			// enemy of the next wave may appear on its first spawning tick.
			wm.state = WaveWaiting
			break
		}
		var err error
		enemies, err = wm.enemies.Spawn(enemies, t, wm.current.HealthMultiplier, wm.current.SpeedMultiplier)
		if err != nil {
			panic(fmt.Sprintf("wave %d: %v", wm.number, err))
		}
		wm.remaining[t]--
		wm.spawnTimer = wm.cfg.SpawnDelay
		ev.Spawned = append(ev.Spawned, enemies[len(enemies)-1])

	default:
		panic(fmt.Sprintf("wave manager reached undefined state %v", wm.state))
	}

	return enemies, ev
}

// nextType returns the first type in priority order with enemies left.
func (wm *WaveManager) nextType() (EnemyType, bool) {
	for _, t := range wm.order {
		if wm.remaining[t] > 0 {
			return t, true
		}
	}
	return "", false
}

// GenerateWave returns the composition and multipliers of wave n (n >= 1).
// Authored waves are used verbatim with unit multipliers. Later waves grow
// the last authored wave exponentially: counts by growth_factor^k rounded up,
// health by health_growth_factor^k and speed by speed_growth_factor^k, where
// k is the distance past the authored list.
func (wm *WaveManager) GenerateWave(n int) Wave {
	list := wm.cfg.List
	if n <= len(list) {
		idx := max(n, 1) - 1
		return Wave{
			Number:           n,
			Composition:      copyComposition(list[idx]),
			HealthMultiplier: 1,
			SpeedMultiplier:  1,
		}
	}

	k := float64(n - len(list))
	growth := math.Pow(growthOrOne(wm.cfg.GrowthFactor), k)
	last := list[len(list)-1]
	comp := make(config.WaveComposition, len(last))
	for t, count := range last {
		// The epsilon absorbs float error such as 10*1.1 = 11.000000000000002.
		comp[t] = int(math.Ceil(float64(count)*growth - 1e-9))
	}

	return Wave{
		Number:           n,
		Composition:      comp,
		HealthMultiplier: math.Pow(growthOrOne(wm.cfg.HealthGrowthFactor), k),
		SpeedMultiplier:  math.Pow(growthOrOne(wm.cfg.SpeedGrowthFactor), k),
	}
}

func growthOrOne(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

func copyComposition(w config.WaveComposition) config.WaveComposition {
	out := make(config.WaveComposition, len(w))
	for t, n := range w {
		out[t] = n
	}
	return out
}

// WaveNumber returns the number of the latest started wave, 0 before wave 1.
func (wm *WaveManager) WaveNumber() int {
	return wm.number
}

// State returns the current machine state.
func (wm *WaveManager) State() WaveState {
	return wm.state
}

// Current returns the latest generated wave.
func (wm *WaveManager) Current() Wave {
	return wm.current
}

// Remaining returns the number of enemies of the current wave not yet spawned.
func (wm *WaveManager) Remaining() int {
	total := 0
	for _, n := range wm.remaining {
		total += n
	}
	return total
}

// TimeToNextWave returns the seconds left on the wave countdown.
func (wm *WaveManager) TimeToNextWave() float64 {
	return math.Max(0, wm.waveTimer)
}
