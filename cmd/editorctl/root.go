package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"editor-backend/application/changelist"
	"editor-backend/infrastructure/config"
	"editor-backend/infrastructure/di"
)

// app carries what the subcommands share once flags are parsed
type app struct {
	cfgFile   string
	cfg       *config.Config
	container *di.Container
}

func newApp() *app {
	return &app{}
}

// init loads configuration and wires the container. lookup resolves node
// summaries during collection replay and may be nil.
func (a *app) init(lookup changelist.ExplorationSummaryLookup) error {
	cfg, err := config.LoadConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	container, err := di.InitializeContainer(cfg, lookup)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	a.cfg = cfg
	a.container = container
	a.container.Start()
	return nil
}

// close releases what init started
func (a *app) close() {
	if a.container != nil {
		a.container.Close()
	}
}

func (a *app) logger() *zap.Logger {
	if a.container == nil {
		return zap.NewNop()
	}
	return a.container.Logger
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "editorctl",
		Short:         "Inspect and replay editor change lists",
		Long:          `editorctl decodes the change lists the collection and skill editors commit and replays them onto backend dicts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file path (YAML)")

	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newReplayCmd(a))

	return rootCmd
}

// readInput reads a file, or stdin for "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
