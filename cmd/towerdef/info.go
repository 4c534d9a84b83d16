package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the game info summary as JSON",
	Long: `Prints the same summary as GET /info: initial state, action samples,
map geometry, tower catalogue and wave timing for the selected config and map.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	m, err := core.NewMap(cfg.Map)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(core.Describe(cfg, m))
}
