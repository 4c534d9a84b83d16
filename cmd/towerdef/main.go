// towerdef is a deterministic tower defense simulation with a terminal
// front-end, an HTTP API and an SSH server.
//
// Usage:
//
//	towerdef menu            - Pick a mode and map interactively
//	towerdef play            - Play a mode directly
//	towerdef run             - Headless fixed-step run
//	towerdef serve           - Start the HTTP API
//	towerdef ssh             - Start the SSH server for remote play
//	towerdef modes           - List game modes
//	towerdef maps            - List loadable maps
//	towerdef info            - Print the game info summary as JSON
//	towerdef scores [mode]   - Show recorded results
//	towerdef config          - Print the default game config
//
// Global flags:
//
//	--config <path>      - Game config YAML (default: search path, then embedded)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--map <id>           - Map ID (default: the config's own map)
//	--maps-dir <dir>     - Directory with custom map files
//	--db <dsn>           - Results database: SQLite path or postgres:// DSN
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/maps"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMap        string
	flagMapsDir    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "towerdef",
	Short: "Tower defense in your terminal",
	Long: `towerdef is a tower defense game built on a deterministic simulation.
Enemies walk a fixed path in escalating waves; spend money on towers to stop
them before they reach the end.

Available commands:
  menu     - Interactive mode and map picker
  play     - Play a mode directly
  run      - Headless deterministic run
  serve    - HTTP API (reset/step/info, sessions, websocket)
  ssh      - SSH server for remote play
  modes    - Show all game modes
  maps     - Show loadable maps
  info     - Print the game info summary
  scores   - View recorded results
  config   - Print the default game config

Examples:
  towerdef menu
  towerdef play --mode lives --map spiral
  towerdef run --steps 600 --build archer@125,175@0
  towerdef serve --addr :3000
  towerdef scores classic`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate for interactive play")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.towerdef/results.db", "Results database (SQLite path or postgres:// DSN)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Map ID (built-in or from --maps-dir)")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps-dir", "", "Directory with custom map files")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns the CLI logger.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadBaseConfig loads the config. The difficulty preset is applied per
// mode, once the mode has settled its lives.
func loadBaseConfig() (config.Config, error) {
	if _, err := difficulty(); err != nil {
		return config.Config{}, err
	}
	return config.Load(flagConfig)
}

// difficulty parses the --difficulty flag.
func difficulty() (config.DifficultyPreset, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return preset, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	return preset, nil
}

// modeConfig is loadGameConfig with the mode rules and the preset applied.
func modeConfig(mode string) (config.Config, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return cfg, err
	}
	preset, err := difficulty()
	if err != nil {
		return cfg, err
	}
	return towerdefense.Configure(mode, cfg, preset)
}

// loadGameConfig is loadBaseConfig with the selected map swapped in.
func loadGameConfig() (config.Config, error) {
	cfg, err := loadBaseConfig()
	if err != nil {
		return cfg, err
	}

	mapCfg, err := maps.Resolve(flagMap, flagMapsDir, cfg.Map)
	if err != nil {
		return cfg, fmt.Errorf("map %q: %w", flagMap, err)
	}
	cfg.Map = mapCfg
	return cfg, nil
}
