package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List loadable maps",
	Long: `Shows the built-in maps and every map file found under --maps-dir.
Invalid files are listed with the reason they were rejected.

Examples:
  towerdef maps
  towerdef maps --maps-dir ./maps`,
	Args: cobra.NoArgs,
	RunE: runMaps,
}

func runMaps(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	builtin, err := maps.Builtin().Scan()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Built-in maps:")
	printEntries(out, builtin)

	if flagMapsDir == "" {
		return nil
	}
	custom, err := maps.NewLoader(flagMapsDir).Scan()
	if err != nil {
		return fmt.Errorf("scanning %s: %w", flagMapsDir, err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Maps in %s:\n", flagMapsDir)
	printEntries(out, custom)
	return nil
}

func printEntries(w io.Writer, entries []maps.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(w, "  %-12s  invalid: %v\n", e.Path, e.Err)
			continue
		}
		m, err := core.NewMap(e.Map.Config)
		if err != nil {
			fmt.Fprintf(w, "  %-12s  invalid: %v\n", e.Map.ID, err)
			continue
		}
		fmt.Fprintf(w, "  %-12s  %-12s  %gx%g  path %g px, %d buildable cells\n",
			e.Map.ID, m.Name, m.Width, m.Height, m.Path.Length, len(m.BuildableCells))
	}
}
