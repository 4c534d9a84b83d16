package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/config"
)

var flagConfigOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the default game config",
	Long: `Prints the built-in game configuration as YAML. Use it as a starting
point for a custom config passed with --config.

Examples:
  towerdef config
  towerdef config --out ~/.towerdef/configs/towerdef.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&flagConfigOut, "out", "o", "", "Write to this file instead of stdout")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	data := config.DefaultYAML()
	if flagConfigOut == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := expandHome(flagConfigOut)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
