package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/platform/tui"
	"github.com/vovakirdan/towerdef/internal/registry"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a mode directly",
	Long: `Start playing the selected mode on the selected map.

The simulation runs on the wall clock: time keeps moving while you plan.

Controls:
  Arrows/WASD  - Move the build cursor
  1-9          - Select tower type
  Enter/Space  - Build the selected tower at the cursor
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot to ~/.towerdef/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More starting money and lives
  normal - Config values unchanged
  hard   - Less starting money and lives

Examples:
  towerdef play
  towerdef play --mode lives --difficulty easy
  towerdef play --map zigzag
  towerdef play --config ./my-towerdef.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Game mode (see 'towerdef modes')")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !registry.Exists(flagMode) {
		return fmt.Errorf("unknown mode %q, run 'towerdef modes' to see available modes", flagMode)
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	preset, err := difficulty()
	if err != nil {
		return err
	}

	game, err := registry.Create(flagMode, registry.Setup{Config: cfg, Difficulty: preset})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
