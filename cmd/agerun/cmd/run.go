package cmd

import (
	"fmt"
	"os"

	"github.com/quenio/agerun-go/internal/config"
	"github.com/quenio/agerun-go/internal/eval"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	configPath string
	stateDir   string
	maxSteps   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a bootstrap manifest, drain messages, and persist",
	Long: `Load the preload methods and bootstrap agent named in --config,
process messages until the queues drain (or --steps messages have run),
then shut down and persist methodology.agerun/agency.agerun into --dir.`,
	RunE: runAgerun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&configPath, "config", "agerun.yaml", "bootstrap manifest path")
	runCmd.Flags().StringVar(&stateDir, "dir", ".", "directory for methodology.agerun/agency.agerun")
	runCmd.Flags().IntVar(&maxSteps, "steps", 0, "maximum messages to process (0 = until queues drain)")
}

func runAgerun(_ *cobra.Command, _ []string) error {
	manifest, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sys := runtime.New(stateDir)

	// Init resets the methodology/agency first, so it runs with an empty
	// bootstrap name; preloading and bootstrap-agent creation happen after,
	// per SPEC_FULL.md §4.7.
	sys.Init("", method.Semver{})

	for _, pre := range manifest.Preload {
		if err := preloadMethod(sys, pre); err != nil {
			return err
		}
	}

	if manifest.Bootstrap.Method != "" {
		bootstrapVersion, _ := method.ParseSemver(manifest.Bootstrap.Version)
		sys.CreateBootstrapAgent(manifest.Bootstrap.Method, bootstrapVersion)
	}

	var processed int
	if maxSteps > 0 {
		for processed < maxSteps && sys.ProcessNextMessage() {
			processed++
		}
	} else {
		processed = sys.ProcessAllMessages()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "processed %d message(s)\n", processed)
		if !sys.Log.Empty() {
			fmt.Fprint(os.Stderr, sys.Log.Format())
		}
	}

	return sys.Shutdown()
}

func preloadMethod(sys *runtime.System, pre config.PreloadMethod) error {
	source, err := os.ReadFile(pre.File)
	if err != nil {
		return fmt.Errorf("run: read %s: %w", pre.File, err)
	}
	version, ok := method.ParseSemver(pre.Version)
	if !ok {
		return fmt.Errorf("run: invalid version %q for method %q", pre.Version, pre.Name)
	}
	body, ok := eval.ParseMethodBody(string(source), sys.Log)
	if !ok {
		return fmt.Errorf("run: failed to parse method %q from %s", pre.Name, pre.File)
	}
	sys.Methodology.Register(&method.Method{Name: pre.Name, Version: version, Body: body, Source: string(source)})
	return nil
}
