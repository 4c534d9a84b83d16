package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/towerdef/internal/config"
)

// Timing selects how a step's delta time is obtained. It is fixed when the
// engine is constructed.
type Timing int

const (
	// TimingWallClock uses the real time elapsed since the previous step.
	TimingWallClock Timing = iota
	// TimingFixedStep uses the configured fixed delta time on every step,
	// making runs reproducible regardless of call timing.
	TimingFixedStep
)

func (t Timing) String() string {
	if t == TimingFixedStep {
		return "fixed"
	}
	return "wallclock"
}

// Option configures an Engine.
type Option func(*Engine)

// WithTiming selects the delta time source.
func WithTiming(t Timing) Option {
	return func(e *Engine) { e.timing = t }
}

// WithClock replaces the wall clock used in TimingWallClock mode.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine orchestrates the managers and owns the GameState.
// It is not safe for concurrent use; callers serialize Step calls.
type Engine struct {
	cfg     config.Config
	gameMap *Map
	timing  Timing
	now     func() time.Time

	enemies *EnemyManager
	towers  *TowerManager
	waves   *WaveManager

	state      *GameState
	lastUpdate time.Time
	breaches   int
	built      int
}

// NewEngine wires the managers around a shared map. The map must have been
// built from cfg.Map or a compatible custom map.
func NewEngine(cfg config.Config, m *Map, opts ...Option) (*Engine, error) {
	if m == nil {
		return nil, errors.New("engine requires a map")
	}
	e := &Engine{
		cfg:     cfg,
		gameMap: m,
		timing:  TimingWallClock,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.timing == TimingFixedStep && cfg.FixedDeltaTime <= 0 {
		return nil, fmt.Errorf("fixed-step timing requires a positive fixed_delta_time, got %g", cfg.FixedDeltaTime)
	}

	e.enemies = NewEnemyManager(m, cfg)
	e.towers = NewTowerManager(m, cfg)
	waves, err := NewWaveManager(e.enemies, cfg)
	if err != nil {
		return nil, err
	}
	e.waves = waves
	e.Reset()
	return e, nil
}

// Reset restores the construction-time state and restarts the wave machine.
// The map is kept.
func (e *Engine) Reset() {
	lives := 0
	if e.cfg.LivesEnabled() {
		lives = e.cfg.InitialLives
	}
	e.state = newGameState(e.cfg.InitialMoney, lives)
	e.waves.Reset()
	e.breaches = 0
	e.built = 0
	e.lastUpdate = e.now()
}

// ResetClock moves the wall-clock baseline to now, so time spent outside
// Step (for example while paused) is not simulated.
func (e *Engine) ResetClock() {
	e.lastUpdate = e.now()
}

// Step applies the action and advances the simulation by one tick.
//
// An invalid action rejects the whole step: no manager runs, no state
// changes and the wall-clock baseline stays put, so the elapsed time is
// simulated by the next successful step.
func (e *Engine) Step(a Action) (StepResult, error) {
	if e.state.GameOver {
		return StepResult{}, ErrGameOver
	}
	if err := a.Validate(); err != nil {
		return StepResult{}, err
	}

	now, dt := e.deltaTime()
	var res StepResult
	res.DeltaTime = dt
	s := e.state

	if a.Type == ActionBuildTower {
		towers, money, err := e.towers.Build(s.Towers, a.TowerType, *a.Position, s.Money, s.WaveNumber)
		if err != nil {
			return StepResult{}, err
		}
		s.Towers, s.Money = towers, money
		e.built++
		pos := *a.Position
		res.Events = append(res.Events, Event{Type: EventTowerBuilt, TowerType: a.TowerType, Position: &pos})
	}
	e.lastUpdate = now

	var wev WaveEvents
	s.Enemies, wev = e.waves.Update(dt, s.Enemies)
	if wev.Started > 0 {
		res.Events = append(res.Events, Event{Type: EventWaveStarted, Wave: wev.Started})
	}
	for _, en := range wev.Spawned {
		res.Events = append(res.Events, Event{Type: EventEnemySpawned, EnemyType: en.Type, Wave: e.waves.WaveNumber()})
	}

	var report EnemyReport
	s.Enemies, report = e.enemies.Update(dt, s.Enemies)
	s.Money += report.Reward
	for _, en := range report.Killed {
		res.Events = append(res.Events, Event{Type: EventEnemyKilled, EnemyType: en.Type, Reward: e.enemies.Reward(en.Type)})
	}
	for _, en := range report.Breached {
		res.Events = append(res.Events, Event{Type: EventEnemyBreached, EnemyType: en.Type})
	}
	e.breaches += len(report.Breached)

	e.towers.Update(dt, s.Towers, s.Enemies)

	s.WaveNumber = e.waves.WaveNumber()
	s.GameTime += dt
	s.GameOver = e.checkGameOver(len(report.Breached))
	if s.GameOver {
		res.Events = append(res.Events, Event{Type: EventGameOver, Wave: s.WaveNumber})
	}

	return res, nil
}

func (e *Engine) deltaTime() (time.Time, float64) {
	if e.timing == TimingFixedStep {
		return e.lastUpdate, e.cfg.FixedDeltaTime
	}
	now := e.now()
	dt := now.Sub(e.lastUpdate).Seconds()
	if dt < 0 {
		dt = 0
	}
	return now, dt
}

// checkGameOver applies the classic rule (any enemy at the end of the path)
// or, with lives enabled, charges one life per breach.
func (e *Engine) checkGameOver(breached int) bool {
	s := e.state
	if e.cfg.LivesEnabled() {
		s.Lives = max(0, s.Lives-breached)
		return s.Lives <= 0
	}
	if breached > 0 {
		return true
	}
	for _, en := range s.Enemies {
		if en.Finished() {
			return true
		}
	}
	return false
}

// State returns the live state. It is mutated by subsequent steps.
func (e *Engine) State() *GameState {
	return e.state
}

// Map returns the shared immutable map.
func (e *Engine) Map() *Map {
	return e.gameMap
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Timing returns the delta time source.
func (e *Engine) Timing() Timing {
	return e.timing
}

// Waves exposes the wave manager for inspection.
func (e *Engine) Waves() *WaveManager {
	return e.waves
}

// Towers exposes the tower manager for placement checks and cooldowns.
func (e *Engine) Towers() *TowerManager {
	return e.towers
}

// Breaches returns how many enemies reached the end since the last reset.
func (e *Engine) Breaches() int {
	return e.breaches
}

// TowersBuilt returns how many towers were built since the last reset.
func (e *Engine) TowersBuilt() int {
	return e.built
}

// CanBuild reports whether a BUILD_TOWER action would currently succeed.
func (e *Engine) CanBuild(t TowerType, p Position) error {
	if e.state.GameOver {
		return ErrGameOver
	}
	s := e.state
	return e.towers.CanBuild(s.Towers, t, p, s.Money, s.WaveNumber)
}
