package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulsecheck/pulsecheck/pkg/config"
	"github.com/pulsecheck/pulsecheck/pkg/health"
	"github.com/pulsecheck/pulsecheck/pkg/surface"
)

func newScoreCmd() *cobra.Command {
	var (
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "score <snapshot.json>",
		Short: "Score a single activity snapshot",
		Long: `Reads a JSON activity snapshot from a file (or - for stdin), runs the
scoring engine, and renders the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args[0], configPath, outputFmt)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "pulsecheck.yaml", "Path to config file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runScore(snapshotPath, configPath, outputFmt string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	engine, err := health.NewEngine(cfg.EngineConfig())
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	var data []byte
	if snapshotPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(snapshotPath)
	}
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var snap health.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	result, err := engine.Score(&snap)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	var renderer surface.Renderer
	switch outputFmt {
	case "json":
		renderer = &surface.JSONRenderer{}
	default:
		renderer = &surface.TerminalRenderer{}
	}
	return renderer.Render(os.Stdout, result)
}
