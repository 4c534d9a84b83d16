package core

import "github.com/vovakirdan/towerdef/internal/config"

// Info describes a game setup for automated agents building their action
// and observation spaces.
type Info struct {
	GlobalInfo  GlobalInfo  `json:"global_info"`
	Actions     []Action    `json:"actions"`
	Map         MapInfo     `json:"map"`
	Towers      []TowerInfo `json:"towers"`
	TowerSample Tower       `json:"tower_sample"`
	Waves       WavesInfo   `json:"waves"`
}

// GlobalInfo is the initial value of the scalar state fields.
type GlobalInfo struct {
	GameTime   float64 `json:"game_time"`
	WaveNumber int     `json:"wave_number"`
	Money      int     `json:"money"`
	Lives      int     `json:"lives"`
	GameOver   bool    `json:"game_over"`
}

// MapInfo summarizes the map.
type MapInfo struct {
	Name           string     `json:"name"`
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	CellSize       float64    `json:"cell_size"`
	PathLength     float64    `json:"path_length"`
	PathCells      []Position `json:"path_cells"`
	BuildableCells []Position `json:"buildable_cells"`
}

// TowerInfo is one entry of the tower catalogue.
type TowerInfo struct {
	Type           TowerType `json:"type"`
	Cost           int       `json:"cost"`
	UnlockWave     int       `json:"unlock_wave"`
	Range          float64   `json:"range"`
	Damage         float64   `json:"damage"`
	AttackCooldown float64   `json:"attack_cooldown"`
}

// WavesInfo summarizes wave timing and composition.
type WavesInfo struct {
	WaveDelay         float64     `json:"wave_delay"`
	SpawnDelay        float64     `json:"spawn_delay"`
	AuthoredWaves     int         `json:"authored_waves"`
	AvgEnemies        float64     `json:"avg_enemies"`
	EnemyTypes        []EnemyType `json:"enemy_types"`
	SlowerEnemySample Enemy       `json:"slower_enemy_sample"`
}

// Describe builds the info summary for cfg played on m.
func Describe(cfg config.Config, m *Map) Info {
	lives := 0
	if cfg.LivesEnabled() {
		lives = cfg.InitialLives
	}

	info := Info{
		GlobalInfo: GlobalInfo{Money: cfg.InitialMoney, Lives: lives},
		Map: MapInfo{
			Name:           m.Name,
			Width:          m.Width,
			Height:         m.Height,
			CellSize:       m.CellSize,
			PathLength:     m.Path.Length,
			PathCells:      m.Path.AllCells,
			BuildableCells: m.BuildableCells,
		},
		Towers: make([]TowerInfo, 0, len(cfg.Towers)),
	}

	for _, t := range cfg.Towers {
		info.Towers = append(info.Towers, TowerInfo{
			Type:           t.Type,
			Cost:           t.Cost,
			UnlockWave:     t.UnlockWave,
			Range:          t.Range,
			Damage:         t.Damage,
			AttackCooldown: t.AttackCooldown,
		})
	}
	if len(cfg.Towers) > 0 {
		first := cfg.Towers[0]
		info.Actions = []Action{BuildTower(first.Type, Position{}), NoAction()}
		info.TowerSample = Tower{Type: first.Type, AttackCooldown: first.AttackCooldown}
	} else {
		info.Actions = []Action{NoAction()}
	}

	total := 0
	for _, w := range cfg.Waves.List {
		total += w.Total()
	}
	info.Waves = WavesInfo{
		WaveDelay:     cfg.Waves.WaveDelay,
		SpawnDelay:    cfg.Waves.SpawnDelay,
		AuthoredWaves: len(cfg.Waves.List),
		EnemyTypes:    cfg.EnemyOrder(),
	}
	if n := len(cfg.Waves.List); n > 0 {
		info.Waves.AvgEnemies = float64(total) / float64(n)
	}

	if len(cfg.Enemies) > 0 {
		slower := cfg.Enemies[0]
		for _, e := range cfg.Enemies[1:] {
			if e.Speed < slower.Speed {
				slower = e
			}
		}
		info.Waves.SlowerEnemySample = Enemy{
			Type:                 slower.Type,
			FullHealth:           slower.Health,
			CurrentHealth:        slower.Health,
			CurrentSpeed:         slower.Speed,
			CurrentWaypointIndex: 1,
		}
	}

	return info
}
