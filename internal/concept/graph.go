// Package concept implements a weighted, bidirectional concept graph used to
// expand natural-language queries with related domain terms before they are
// handed to the hybrid search pipeline.
package concept

import (
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches query tokens, preserving leading @ and # sigils so
// that decorator- and macro-style concepts (@MainActor, #expect) survive
// tokenization intact.
var tokenPattern = regexp.MustCompile(`[@#]?\w+`)

// edge is one weighted, directed step out of a concept node. Graph.AddRelation
// always inserts both directions, so the graph is undirected in practice.
type edge struct {
	neighbor string
	weight   float64
}

// Graph is a weighted undirected graph of domain concepts plus an alias
// table mapping surface tokens (abbreviations, shorthand) onto canonical
// concept ids.
type Graph struct {
	edges   map[string][]edge
	aliases map[string]string
}

// New returns an empty concept graph.
func New() *Graph {
	return &Graph{
		edges:   make(map[string][]edge),
		aliases: make(map[string]string),
	}
}

// AddRelation records a weighted relationship between two concepts in both
// directions. Weight must be in (0, 1].
func (g *Graph) AddRelation(a, b string, weight float64) {
	a, b = strings.ToLower(a), strings.ToLower(b)
	g.edges[a] = append(g.edges[a], edge{neighbor: b, weight: weight})
	g.edges[b] = append(g.edges[b], edge{neighbor: a, weight: weight})
}

// AddAlias maps a surface token onto its canonical concept id.
func (g *Graph) AddAlias(alias, canonical string) {
	g.aliases[strings.ToLower(alias)] = strings.ToLower(canonical)
}

// ExpandOptions configures Expand. Zero values fall back to the documented
// defaults.
type ExpandOptions struct {
	MaxExpansions int
	MinWeight     float64
	Depth         int
}

// DefaultExpandOptions returns the spec defaults: up to 6 expansions, a
// minimum edge weight of 0.5, and a single hop.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{MaxExpansions: 6, MinWeight: 0.5, Depth: 1}
}

// Expand tokenizes query, resolves each token through the alias table, walks
// the graph from the resolved seed set, and returns up to MaxExpansions new
// terms ordered by recorded weight (descending), ties broken by the order in
// which a term was first reached.
func (g *Graph) Expand(query string, opts ExpandOptions) []string {
	if opts.MaxExpansions <= 0 {
		opts.MaxExpansions = 6
	}
	if opts.MinWeight <= 0 {
		opts.MinWeight = 0.5
	}
	if opts.Depth <= 0 {
		opts.Depth = 1
	}

	queryLower := strings.ToLower(query)
	queryTokens := tokenPattern.FindAllString(queryLower, -1)

	seen := make(map[string]bool, len(queryTokens))
	resolved := make(map[string]bool, len(queryTokens))
	for _, tok := range queryTokens {
		seen[tok] = true
		canonical := tok
		if c, ok := g.aliases[tok]; ok {
			canonical = c
		}
		resolved[canonical] = true
	}

	type candidate struct {
		term   string
		weight float64
		order  int
	}
	candidates := make(map[string]*candidate)
	order := 0

	record := func(term string, weight float64) {
		if c, ok := candidates[term]; ok {
			if weight > c.weight {
				c.weight = weight
			}
			return
		}
		candidates[term] = &candidate{term: term, weight: weight, order: order}
		order++
	}

	for seed := range resolved {
		g.walk(seed, opts.Depth, opts.MinWeight, make(map[string]bool), record)
	}

	for term := range resolved {
		delete(candidates, term)
	}
	for term := range seen {
		delete(candidates, term)
	}

	ranked := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].order < ranked[j].order
	})

	if len(ranked) > opts.MaxExpansions {
		ranked = ranked[:opts.MaxExpansions]
	}

	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.term
	}
	return out
}

// walk performs a depth-bounded DFS from concept, recording every reached
// neighbour at its maximum observed weight. The weight threshold shrinks by
// 0.7x per additional hop, per spec.
func (g *Graph) walk(concept string, depth int, minWeight float64, visited map[string]bool, record func(string, float64)) {
	if depth <= 0 || visited[concept] {
		return
	}
	visited[concept] = true

	for _, e := range g.edges[concept] {
		if e.weight < minWeight {
			continue
		}
		record(e.neighbor, e.weight)
		if depth > 1 {
			g.walk(e.neighbor, depth-1, minWeight*0.7, visited, record)
		}
	}
}
