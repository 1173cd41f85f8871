package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/output"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show index statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e, cleanup, err := engine.Build(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer cleanup()

	status := e.Status()
	out := output.New(cmd.OutOrStdout())
	out.Status("", fmt.Sprintf("Skills:       %d", status.SkillCount))
	out.Status("", fmt.Sprintf("Chunks:       %d", status.ChunkCount))
	out.Status("", fmt.Sprintf("Fingerprints: %d", status.FingerprintCount))
	if status.Indexed {
		out.Success("Indexed")
	} else {
		out.Warning("Not indexed — run `maestro index`")
	}
	return nil
}
