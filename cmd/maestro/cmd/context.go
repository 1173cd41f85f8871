package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
)

func newContextCmd() *cobra.Command {
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "context <query>",
		Short: "Get an LLM-ready context block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, strings.Join(args, " "), maxTokens)
		},
	}
	cmd.Flags().IntVarP(&maxTokens, "max-tokens", "t", 3000, "context token budget")
	return cmd
}

func runContext(cmd *cobra.Command, query string, maxTokens int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e, cleanup, err := engine.Build(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer cleanup()

	block, err := e.GetContext(cmd.Context(), query, maxTokens)
	if err != nil {
		return fmt.Errorf("get context: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), block)
	return nil
}
