package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/mcpserver"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	e, cleanup, err := engine.Build(cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer cleanup()

	srv := mcpserver.New(e, nil)
	return srv.Serve(cmd.Context())
}
