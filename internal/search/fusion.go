package search

import "sort"

// RRFConstant is the Reciprocal Rank Fusion smoothing constant (k=60).
const RRFConstant = 60

// RankedID is one entry of a ranked result list going into Fuse: a chunk
// id at its zero-based rank in that list.
type RankedID struct {
	ID   string
	Rank int
}

// Fused is one chunk's combined score coming out of Fuse.
type Fused struct {
	ChunkID      string
	RRFScore     float64
	InSemantic   bool
	InBM25       bool
	SemanticRank *int
	BM25Rank     *int
}

// Fuse combines a semantic ranking and a lexical (BM25) ranking with
// Reciprocal Rank Fusion. For every id appearing in either list, it sums
// 1/(k+rank+1) over the lists that id actually appears in — there is no
// synthetic contribution for the list it's absent from. Results are
// ordered by descending RRF score, ties broken by chunk id for
// determinism.
func Fuse(semantic, bm25 []RankedID) []Fused {
	scores := make(map[string]*Fused)
	order := make([]string, 0, len(semantic)+len(bm25))

	get := func(id string) *Fused {
		if f, ok := scores[id]; ok {
			return f
		}
		f := &Fused{ChunkID: id}
		scores[id] = f
		order = append(order, id)
		return f
	}

	for _, r := range semantic {
		f := get(r.ID)
		f.InSemantic = true
		rank := r.Rank
		f.SemanticRank = &rank
		f.RRFScore += 1.0 / float64(RRFConstant+r.Rank+1)
	}
	for _, r := range bm25 {
		f := get(r.ID)
		f.InBM25 = true
		rank := r.Rank
		f.BM25Rank = &rank
		f.RRFScore += 1.0 / float64(RRFConstant+r.Rank+1)
	}

	out := make([]Fused, len(order))
	for i, id := range order {
		out[i] = *scores[id]
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RRFScore != out[j].RRFScore {
			return out[i].RRFScore > out[j].RRFScore
		}
		return out[i].ChunkID < out[j].ChunkID
	})
	return out
}
