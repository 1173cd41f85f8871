// Package search holds the building blocks of the hybrid retrieval
// pipeline: Reciprocal Rank Fusion over BM25 and vector results, the
// semantic query cache, and the result types. The pipeline itself is run
// by engine.Engine.
package search

// Result is a chunk plus its scores from the pipeline that produced it.
type Result struct {
	ChunkID       string
	Skill         string
	File          string
	FilePath      string
	Section       string
	Text          string
	Domains       []string
	FinalScore    float64
	SemanticRank  *int
	BM25Rank      *int
	RerankScore   *float64
}

// Response is the complete output of Engine.Search.
type Response struct {
	Query         string
	Results       []Result
	SkillsUsed    []string
	TimeMS        int64
	FromCache     bool
	ExpandedTerms []string
}
