package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/output"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <query>",
		Short: "Show how the search pipeline answered a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, strings.Join(args, " "))
		},
	}
}

func runExplain(cmd *cobra.Command, query string) error {
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
	out.Statusf("", "Query: %q", query)
	out.Newline()

	resp, err := e.Search(cmd.Context(), query, cfg.TopK)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out.Status("", "Concept Expansion:")
	if len(resp.ExpandedTerms) > 0 {
		out.Status("", "  Added: "+strings.Join(resp.ExpandedTerms, ", "))
	} else {
		out.Status("", "  No expansions (query already specific)")
	}
	out.Newline()

	out.Status("", "Hybrid Search + RRF + Reranking:")
	for _, r := range resp.Results {
		sem := "sem=∅"
		if r.SemanticRank != nil {
			sem = fmt.Sprintf("sem=%d", *r.SemanticRank)
		}
		bm := "bm25=∅"
		if r.BM25Rank != nil {
			bm = fmt.Sprintf("bm25=%d", *r.BM25Rank)
		}
		rr := ""
		if r.RerankScore != nil {
			rr = fmt.Sprintf(" rerank=%.3f", *r.RerankScore)
		}
		out.Status("", fmt.Sprintf("  [%s/%s] %-40s score=%.3f %s %s%s",
			r.Skill, r.File, truncate(r.Section, 40), r.FinalScore, sem, bm, rr))
	}
	out.Newline()

	out.Status("", "Summary:")
	out.Status("", "  Skills used: "+strings.Join(resp.SkillsUsed, ", "))
	out.Status("", fmt.Sprintf("  Time:        %dms", resp.TimeMS))
	cache := "MISS"
	if resp.FromCache {
		cache = "HIT"
	}
	out.Status("", "  Cache:       "+cache)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
