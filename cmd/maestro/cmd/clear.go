package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/output"
)

func newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("pass --yes to confirm clearing the index")
			}
			return runClear(cmd)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all indexed data")
	return cmd
}

func runClear(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e, cleanup, err := engine.Build(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer cleanup()

	if err := e.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	output.New(cmd.OutOrStdout()).Success("Index cleared.")
	return nil
}
