package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/output"
	"github.com/Viniciuscarvalho/maestro/internal/search"
)

func newSearchCmd() *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed skills with the full pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), topK)
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 7, "number of results")
	return cmd
}

func runSearch(cmd *cobra.Command, query string, topK int) error {
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
	if !e.Status().Indexed {
		out.Error("No index found. Run `maestro index` first.")
		os.Exit(1)
	}

	resp, err := e.Search(cmd.Context(), query, topK)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	printSearchResults(out, resp)
	return nil
}

func printSearchResults(out *output.Writer, resp search.Response) {
	if len(resp.Results) == 0 {
		out.Status("", fmt.Sprintf("No results found for %q", resp.Query))
		return
	}

	out.Statusf("", "Found %d result(s) for %q:", len(resp.Results), resp.Query)
	out.Newline()
	for i, r := range resp.Results {
		out.Statusf("", "%d. [%s/%s] %s (score: %.3f)", i+1, r.Skill, r.File, r.Section, r.FinalScore)
		for _, line := range firstLines(r.Text, 3) {
			out.Status("", "   "+line)
		}
		out.Newline()
	}
}

func firstLines(text string, n int) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
