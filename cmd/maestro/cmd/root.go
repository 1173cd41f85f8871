// Package cmd provides the CLI commands for Maestro.
package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/config"
	"github.com/Viniciuscarvalho/maestro/pkg/version"
)

// defaultConfigPath is the config file resolved relative to the current
// working directory, falling back to config.Default() when absent.
const defaultConfigPath = "maestro.yaml"

var configPath string

// NewRootCmd creates the root command for the maestro CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "maestro",
		Short:   "One-shot skill knowledge retrieval",
		Long:    "Maestro indexes markdown skill directories and answers natural-language queries with a hybrid BM25 + semantic search pipeline.",
		Version: version.Version,
	}
	cmd.SetVersionTemplate("maestro version {{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to maestro.yaml")

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newContextCmd())
	cmd.AddCommand(newExplainCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newClearCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
	}
	return config.Load(path)
}
