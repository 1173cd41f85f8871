// Package mcpserver exposes the Maestro engine over the Model Context
// Protocol: a stdio JSON-RPC tool server AI clients can call to search
// skills, reindex them, and check index status.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Viniciuscarvalho/maestro/internal/engine"
	"github.com/Viniciuscarvalho/maestro/internal/search"
	"github.com/Viniciuscarvalho/maestro/pkg/version"
)

// maxTopK is the tool-server surface's result cap. It is enforced only
// at this boundary: the CLI's --top-k has no such ceiling.
const maxTopK = 15

// Server bridges an Engine to MCP clients over stdio.
type Server struct {
	mcp    *mcpsdk.Server
	engine *engine.Engine
	logger *slog.Logger
}

// New wires a Server around engine, registering its three tools.
func New(eng *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine: eng,
		logger: logger,
		mcp: mcpsdk.NewServer(&mcpsdk.Implementation{
			Name:    "maestro",
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// SearchSkillsInput is the search_skills tool's input schema.
type SearchSkillsInput struct {
	Query string `json:"query" jsonschema:"the natural-language query to search skills for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of results to return, default 7, capped at 15"`
	Max   int    `json:"max,omitempty" jsonschema:"alias for top_k's cap, default 15"`
}

// SearchSkillsOutput is the search_skills tool's output: a context
// block plus a one-line meta header, per the tool-server contract.
type SearchSkillsOutput struct {
	Meta    string `json:"meta" jsonschema:"one-line summary: skills used, timing, cache state"`
	Context string `json:"context" jsonschema:"markdown context block ready to paste into a prompt"`
}

// ReindexSkillsInput is the reindex_skills tool's input schema.
type ReindexSkillsInput struct {
	Paths []string `json:"paths,omitempty" jsonschema:"explicit skill directories to index; defaults to the configured skill_paths"`
}

// ReindexSkillsOutput is the reindex_skills tool's output.
type ReindexSkillsOutput struct {
	SkillCount       int    `json:"skill_count"`
	FileCount        int    `json:"file_count"`
	ChunkCount       int    `json:"chunk_count"`
	FingerprintCount int    `json:"fingerprint_count"`
	DurationMS       int64  `json:"duration_ms"`
	Errors           []string `json:"errors,omitempty"`
}

// SkillStatusInput is the (empty) skill_status tool input schema.
type SkillStatusInput struct{}

// SkillStatusOutput is the skill_status tool's output.
type SkillStatusOutput struct {
	Indexed          bool `json:"indexed"`
	SkillCount       int  `json:"skill_count"`
	ChunkCount       int  `json:"chunk_count"`
	FingerprintCount int  `json:"fingerprint_count"`
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "search_skills",
		Description: "Search indexed markdown skills with hybrid BM25 + semantic retrieval, RRF fusion, and optional reranking. Returns an LLM-ready markdown context block.",
	}, s.handleSearchSkills)

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "reindex_skills",
		Description: "Rebuild the BM25 index, vector store, and skill fingerprints from the configured (or given) skill directories.",
	}, s.handleReindexSkills)

	mcpsdk.AddTool(s.mcp, &mcpsdk.Tool{
		Name:        "skill_status",
		Description: "Report whether the engine has been indexed and current skill/chunk/fingerprint counts.",
	}, s.handleSkillStatus)
}

func (s *Server) handleSearchSkills(ctx context.Context, _ *mcpsdk.CallToolRequest, input SearchSkillsInput) (
	*mcpsdk.CallToolResult, SearchSkillsOutput, error,
) {
	if input.Query == "" {
		return nil, SearchSkillsOutput{}, fmt.Errorf("query is required")
	}

	topK := input.TopK
	if topK <= 0 {
		topK = 7
	}
	limit := input.Max
	if limit <= 0 {
		limit = maxTopK
	}
	if limit > maxTopK {
		limit = maxTopK
	}
	if topK > limit {
		topK = limit
	}

	resp, err := s.engine.Search(ctx, input.Query, topK)
	if err != nil {
		return nil, SearchSkillsOutput{}, err
	}

	block, err := s.engine.GetContext(ctx, input.Query, 3000)
	if err != nil {
		return nil, SearchSkillsOutput{}, err
	}

	return nil, SearchSkillsOutput{
		Meta:    formatMeta(resp),
		Context: block,
	}, nil
}

func (s *Server) handleReindexSkills(ctx context.Context, _ *mcpsdk.CallToolRequest, input ReindexSkillsInput) (
	*mcpsdk.CallToolResult, ReindexSkillsOutput, error,
) {
	stats, err := s.engine.Index(ctx, input.Paths, false)
	if err != nil {
		return nil, ReindexSkillsOutput{}, err
	}

	return nil, ReindexSkillsOutput{
		SkillCount:       stats.SkillCount,
		FileCount:        stats.FileCount,
		ChunkCount:       stats.ChunkCount,
		FingerprintCount: stats.FingerprintCount,
		DurationMS:       stats.Duration.Milliseconds(),
		Errors:           stats.Errors,
	}, nil
}

func (s *Server) handleSkillStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ SkillStatusInput) (
	*mcpsdk.CallToolResult, SkillStatusOutput, error,
) {
	status := s.engine.Status()
	return nil, SkillStatusOutput{
		Indexed:          status.Indexed,
		SkillCount:       status.SkillCount,
		ChunkCount:       status.ChunkCount,
		FingerprintCount: status.FingerprintCount,
	}, nil
}

func formatMeta(resp search.Response) string {
	cache := "MISS"
	if resp.FromCache {
		cache = "HIT"
	}
	return fmt.Sprintf("skills=[%s] results=%d time=%dms cache=%s",
		joinSkills(resp.SkillsUsed), len(resp.Results), resp.TimeMS, cache)
}

func joinSkills(skills []string) string {
	out := ""
	for i, s := range skills {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

// Serve runs the MCP server over stdio until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	err := s.mcp.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("MCP server stopped with error", "error", err)
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}
