package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/output"
)

func newIndexCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index [paths...]",
		Short: "Index skill directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "clear the existing index before indexing")
	return cmd
}

func runIndex(cmd *cobra.Command, paths []string, force bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e, cleanup, err := engine.Build(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer cleanup()

	out := output.New(cmd.OutOrStdout())
	stats, err := e.Index(cmd.Context(), paths, force)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}

	out.Successf("Indexed %d skill(s), %d file(s), %d chunk(s) in %s",
		stats.SkillCount, stats.FileCount, stats.ChunkCount, stats.Duration.Round(time.Millisecond))
	out.Status("", fmt.Sprintf("Fingerprints: %d", stats.FingerprintCount))
	for _, msg := range stats.Errors {
		out.Warning(msg)
	}
	return nil
}
