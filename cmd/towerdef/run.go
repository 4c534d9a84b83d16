package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/towerdef/internal/config"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense"
	"github.com/vovakirdan/towerdef/internal/games/towerdefense/core"
	"github.com/vovakirdan/towerdef/internal/storage"
)

var (
	flagRunMode  string
	flagSteps    int
	flagBuilds   []string
	flagRunJSON  bool
	flagRunSave  bool
	flagRunQuiet bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless fixed-step game",
	Long: `Run the simulation without a terminal UI. Every step advances the
fixed time step from the config, so identical flags give identical results.

Builds are written as type@x,y@step: the tower is built at pixel center
(x,y) on the given step. A rejected build is reported and the step runs
with no action instead.

Examples:
  towerdef run --steps 600
  towerdef run --steps 900 --build archer@125,175@0 --build archer@275,225@150
  towerdef run --map spiral --mode lives --json`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunMode, "mode", towerdefense.ModeClassic, "Game mode (see 'towerdef modes')")
	runCmd.Flags().IntVar(&flagSteps, "steps", 600, "Maximum number of steps")
	runCmd.Flags().StringArrayVar(&flagBuilds, "build", nil, "Planned build: type@x,y@step (repeatable)")
	runCmd.Flags().BoolVar(&flagRunJSON, "json", false, "Print the final state as JSON")
	runCmd.Flags().BoolVar(&flagRunSave, "save", false, "Save the result to the results database")
	runCmd.Flags().BoolVarP(&flagRunQuiet, "quiet", "q", false, "Only print the summary")
}

// plannedBuild is a tower build scheduled for a step.
type plannedBuild struct {
	step   int
	action core.Action
}

// parseBuild parses "type@x,y@step".
func parseBuild(s string) (plannedBuild, error) {
	parts := strings.Split(s, "@")
	if len(parts) != 3 {
		return plannedBuild{}, fmt.Errorf("build %q: want type@x,y@step", s)
	}
	xy := strings.Split(parts[1], ",")
	if len(xy) != 2 {
		return plannedBuild{}, fmt.Errorf("build %q: position must be x,y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
	if err := errors.Join(errX, errY); err != nil {
		return plannedBuild{}, fmt.Errorf("build %q: %w", s, err)
	}
	step, err := strconv.Atoi(parts[2])
	if err != nil || step < 0 {
		return plannedBuild{}, fmt.Errorf("build %q: step must be a non-negative integer", s)
	}
	tower := core.TowerType(strings.TrimSpace(parts[0]))
	return plannedBuild{step: step, action: core.BuildTower(tower, core.Position{X: x, Y: y})}, nil
}

// runReport summarizes a headless run.
type runReport struct {
	Steps       int
	State       core.GameState
	TowersBuilt int
	Kills       int
	Breaches    int
	Rejected    []string
}

// headlessRun steps a fixed-step engine until game over or maxSteps.
// log receives one line per notable event; it may be io.Discard.
func headlessRun(cfg config.Config, maxSteps int, builds []plannedBuild, log io.Writer) (runReport, error) {
	m, err := core.NewMap(cfg.Map)
	if err != nil {
		return runReport{}, err
	}
	engine, err := core.NewEngine(cfg, m, core.WithTiming(core.TimingFixedStep))
	if err != nil {
		return runReport{}, err
	}

	byStep := make(map[int][]core.Action)
	for _, b := range builds {
		byStep[b.step] = append(byStep[b.step], b.action)
	}

	var report runReport
	for step := 0; step < maxSteps && !engine.State().GameOver; step++ {
		actions := byStep[step]
		// One action per step; extra builds move to the next step.
		if len(actions) > 1 {
			byStep[step+1] = append(actions[1:], byStep[step+1]...)
		}
		action := core.NoAction()
		if len(actions) > 0 {
			action = actions[0]
		}

		res, err := engine.Step(action)
		if err != nil {
			report.Rejected = append(report.Rejected, fmt.Sprintf("step %d: %v", step, err))
			fmt.Fprintf(log, "step %4d  build rejected: %v\n", step, err)
			if res, err = engine.Step(core.NoAction()); err != nil {
				return report, err
			}
		}
		report.Steps++

		for _, ev := range res.Events {
			switch ev.Type {
			case core.EventWaveStarted:
				fmt.Fprintf(log, "step %4d  t=%7.1fs  wave %d started\n", step, engine.State().GameTime, ev.Wave)
			case core.EventTowerBuilt:
				fmt.Fprintf(log, "step %4d  t=%7.1fs  built %s at (%g,%g)\n", step, engine.State().GameTime, ev.TowerType, ev.Position.X, ev.Position.Y)
			case core.EventEnemyKilled:
				report.Kills++
			case core.EventEnemyBreached:
				report.Breaches++
				fmt.Fprintf(log, "step %4d  t=%7.1fs  %s breached\n", step, engine.State().GameTime, ev.EnemyType)
			case core.EventGameOver:
				fmt.Fprintf(log, "step %4d  t=%7.1fs  game over\n", step, engine.State().GameTime)
			}
		}
	}

	report.State = engine.State().Snapshot()
	report.TowersBuilt = engine.TowersBuilt()
	return report, nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := modeConfig(flagRunMode)
	if err != nil {
		return err
	}

	builds := make([]plannedBuild, 0, len(flagBuilds))
	for _, s := range flagBuilds {
		b, err := parseBuild(s)
		if err != nil {
			return err
		}
		builds = append(builds, b)
	}

	var eventLog io.Writer = cmd.OutOrStdout()
	if flagRunQuiet || flagRunJSON {
		eventLog = io.Discard
	}
	report, err := headlessRun(cfg, flagSteps, builds, eventLog)
	if err != nil {
		return err
	}

	if flagRunSave && report.State.WaveNumber > 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.SaveResult(storage.Result{
			Mode:        flagRunMode,
			Map:         cfg.Map.Name,
			Wave:        report.State.WaveNumber,
			GameTime:    report.State.GameTime,
			TowersBuilt: report.TowersBuilt,
		}); err != nil {
			return err
		}
	}

	if flagRunJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report.State)
	}
	printReport(cmd.OutOrStdout(), cfg, report)
	return nil
}

func printReport(w io.Writer, cfg config.Config, r runReport) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Map:          %s\n", cfg.Map.Name)
	fmt.Fprintf(w, "Steps:        %d\n", r.Steps)
	fmt.Fprintf(w, "Game time:    %.1fs\n", r.State.GameTime)
	fmt.Fprintf(w, "Wave:         %d\n", r.State.WaveNumber)
	fmt.Fprintf(w, "Money:        %d\n", r.State.Money)
	if cfg.LivesEnabled() {
		fmt.Fprintf(w, "Lives:        %d\n", r.State.Lives)
	}
	fmt.Fprintf(w, "Towers built: %d\n", r.TowersBuilt)
	fmt.Fprintf(w, "Kills:        %d\n", r.Kills)
	fmt.Fprintf(w, "Breaches:     %d\n", r.Breaches)
	fmt.Fprintf(w, "Game over:    %v\n", r.State.GameOver)
	if len(r.Rejected) > 0 {
		fmt.Fprintf(w, "Rejected:     %d build(s)\n", len(r.Rejected))
	}
	if !r.State.GameOver {
		fmt.Fprintln(os.Stderr, "note: step limit reached before game over")
	}
}
