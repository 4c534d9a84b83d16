package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/towerdef/internal/core"
	"github.com/vovakirdan/towerdef/internal/platform/tui"
	"github.com/vovakirdan/towerdef/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and map interactively",
	Long: `Start in interactive menu mode.

Use Up/Down to pick a mode, Left/Right to pick a map and Enter to play.
After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k     - Select mode
  Left/Right/h/l  - Select map
  Enter/Space     - Play
  Tab             - Results board
  Q               - Quit

Examples:
  towerdef menu
  towerdef menu --maps-dir ./maps
  towerdef menu --db ./results.db`,
	RunE: runMenu,
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// openStore opens the results database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}

func runMenu(_ *cobra.Command, _ []string) error {
	base, err := loadBaseConfig()
	if err != nil {
		return err
	}
	catalog := tui.NewCatalog(base, flagMapsDir)
	catalog.Difficulty, _ = difficulty()
	mapIndex := catalog.Index(flagMap)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(catalog, store, cfg, mapIndex)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		mapIndex = menuResult.MapIndex

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := catalog.NewGame(menuResult.Mode, mapIndex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
