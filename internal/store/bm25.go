package store

import (
	"bufio"
	"encoding/gob"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
)

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// tokenPattern is the case-folded \w+ tokenizer used for both documents
// and queries.
var tokenPattern = regexp.MustCompile(`\w+`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// bm25Doc is a persisted posting: its id and token list.
type bm25Doc struct {
	ID     string
	Tokens []string
}

// memBM25Index is a from-scratch BM25 index matching the classic
// Robertson/Sparck-Jones scoring with the non-negative IDF variant
// log((N-df+0.5)/(df+0.5)+1).
type memBM25Index struct {
	mu        sync.RWMutex
	docs      []bm25Doc
	docFreq   map[string]int
	avgDocLen float64
}

// NewBM25Index returns an empty BM25Index.
func NewBM25Index() BM25Index {
	return &memBM25Index{docFreq: make(map[string]int)}
}

// Fit replaces the corpus with docs, recomputing document frequencies
// and the average document length.
func (b *memBM25Index) Fit(docs []Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs = make([]bm25Doc, len(docs))
	b.docFreq = make(map[string]int)

	var totalLen int
	for i, d := range docs {
		tokens := tokenize(d.Text)
		b.docs[i] = bm25Doc{ID: d.ID, Tokens: tokens}
		totalLen += len(tokens)

		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				b.docFreq[tok]++
			}
		}
	}

	if len(docs) > 0 {
		b.avgDocLen = float64(totalLen) / float64(len(docs))
	} else {
		b.avgDocLen = 0
	}
	return nil
}

// Score returns the top-k documents by BM25 score for query, positive
// scores only, descending. A query with no \w+ tokens returns no
// results; no stop words are removed.
func (b *memBM25Index) Score(query string, topK int) []BM25Result {
	b.mu.RLock()
	defer b.mu.RUnlock()

	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || len(b.docs) == 0 {
		return nil
	}

	n := float64(len(b.docs))
	idf := make(map[string]float64, len(queryTokens))
	for _, tok := range queryTokens {
		if _, ok := idf[tok]; ok {
			continue
		}
		df := float64(b.docFreq[tok])
		idf[tok] = math.Log((n-df+0.5)/(df+0.5) + 1)
	}

	results := make([]BM25Result, 0, len(b.docs))
	for _, doc := range b.docs {
		termFreq := make(map[string]int, len(doc.Tokens))
		for _, tok := range doc.Tokens {
			termFreq[tok]++
		}

		docLen := float64(len(doc.Tokens))
		var score float64
		for _, tok := range queryTokens {
			tf := float64(termFreq[tok])
			if tf == 0 {
				continue
			}
			numerator := tf * (bm25K1 + 1)
			denominator := tf + bm25K1*(1-bm25B+bm25B*docLen/b.avgDocLen)
			score += idf[tok] * numerator / denominator
		}

		if score > 0 {
			results = append(results, BM25Result{ID: doc.ID, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Count returns the number of fitted documents.
func (b *memBM25Index) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.docs)
}

// Save persists the corpus via gob encoding.
func (b *memBM25Index) Save(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(b.docs); err != nil {
		return err
	}
	return w.Flush()
}

// Load restores the corpus from a gob file and recomputes derived
// statistics.
func (b *memBM25Index) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var docs []bm25Doc
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&docs); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs = docs
	b.docFreq = make(map[string]int)
	var totalLen int
	for _, d := range docs {
		totalLen += len(d.Tokens)
		seen := make(map[string]bool, len(d.Tokens))
		for _, tok := range d.Tokens {
			if !seen[tok] {
				seen[tok] = true
				b.docFreq[tok]++
			}
		}
	}
	if len(docs) > 0 {
		b.avgDocLen = float64(totalLen) / float64(len(docs))
	} else {
		b.avgDocLen = 0
	}
	return nil
}
