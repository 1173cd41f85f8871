package store

import (
	"bufio"
	"encoding/gob"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/coder/hnsw"
)

// record is the document text and metadata persisted alongside a vector.
type record struct {
	Document string
	Metadata map[string]string
}

// hnswMetadata is everything Save/Load needs to reconstruct id mappings
// and stored records, since the hnsw.Graph itself only knows uint64 keys.
type hnswMetadata struct {
	IDMap   map[string]uint64
	Records map[string]record
	NextKey uint64
	Config  VectorStoreConfig
}

// HNSWStore implements VectorStore over github.com/coder/hnsw, the pure-Go
// HNSW implementation. Deletion is lazy: a deleted id's mapping is dropped
// but its node stays in the graph, matching the upstream library's
// documented avoidance of last-node deletion bugs.
type HNSWStore struct {
	mu     sync.RWMutex
	graph  *hnsw.Graph[uint64]
	config VectorStoreConfig

	idMap   map[string]uint64
	keyMap  map[uint64]string
	records map[string]record
	nextKey uint64

	closed bool
}

// NewHNSWStore returns an HNSWStore configured for cosine distance.
func NewHNSWStore(cfg VectorStoreConfig) *HNSWStore {
	if cfg.M == 0 {
		cfg.M = 16
	}
	if cfg.EfSearch == 0 {
		cfg.EfSearch = 20
	}

	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	graph.M = cfg.M
	graph.EfSearch = cfg.EfSearch
	graph.Ml = 0.25

	return &HNSWStore{
		graph:   graph,
		config:  cfg,
		idMap:   make(map[string]uint64),
		keyMap:  make(map[uint64]string),
		records: make(map[string]record),
	}
}

// Upsert inserts or replaces vectors, documents, and metadata for ids.
func (s *HNSWStore) Upsert(ids []string, vectors [][]float32, documents []string, metadatas []map[string]string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) != len(vectors) || len(ids) != len(documents) || len(ids) != len(metadatas) {
		return ErrDimensionMismatch{Expected: len(ids), Got: len(vectors)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errClosed
	}
	for _, v := range vectors {
		if len(v) != s.config.Dimensions {
			return ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(v)}
		}
	}

	for i, id := range ids {
		if existingKey, exists := s.idMap[id]; exists {
			delete(s.keyMap, existingKey)
			delete(s.idMap, id)
		}

		key := s.nextKey
		s.nextKey++

		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		normalizeInPlace(vec)

		s.graph.Add(hnsw.MakeNode(key, vec))
		s.idMap[id] = key
		s.keyMap[key] = id
		s.records[id] = record{Document: documents[i], Metadata: metadatas[i]}
	}
	return nil
}

// Query returns the nResults nearest vectors to vector, restricted to
// records matching where, converting cosine distance by the caller.
func (s *HNSWStore) Query(vector []float32, nResults int, where Filter) ([]VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errClosed
	}
	if len(vector) != s.config.Dimensions {
		return nil, ErrDimensionMismatch{Expected: s.config.Dimensions, Got: len(vector)}
	}
	if s.graph.Len() == 0 {
		return nil, nil
	}

	query := make([]float32, len(vector))
	copy(query, vector)
	normalizeInPlace(query)

	// Over-fetch to compensate for the metadata filter and orphaned
	// (lazily-deleted) nodes still present in the graph.
	fetch := nResults * 4
	if fetch < nResults+8 {
		fetch = nResults + 8
	}
	nodes := s.graph.Search(query, fetch)

	results := make([]VectorResult, 0, nResults)
	for _, node := range nodes {
		id, ok := s.keyMap[node.Key]
		if !ok {
			continue
		}
		rec, ok := s.records[id]
		if !ok {
			continue
		}
		if where != nil && !where.Matches(rec.Metadata) {
			continue
		}

		distance := s.graph.Distance(query, node.Value)
		results = append(results, VectorResult{
			ID:       id,
			Distance: distance,
			Document: rec.Document,
			Metadata: rec.Metadata,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if len(results) > nResults {
		results = results[:nResults]
	}
	return results, nil
}

// Get fetches stored records by id, skipping ids that no longer exist.
func (s *HNSWStore) Get(ids []string) ([]VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errClosed
	}

	out := make([]VectorResult, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.idMap[id]; !ok {
			continue
		}
		rec := s.records[id]
		out = append(out, VectorResult{ID: id, Document: rec.Document, Metadata: rec.Metadata})
	}
	return out, nil
}

// Delete removes every record whose metadata matches where. A nil or
// empty filter matches every record, so it clears the store.
func (s *HNSWStore) Delete(where Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errClosed
	}

	for id, rec := range s.records {
		if where != nil && !where.Matches(rec.Metadata) {
			continue
		}
		if key, ok := s.idMap[id]; ok {
			delete(s.keyMap, key)
			delete(s.idMap, id)
		}
		delete(s.records, id)
	}
	return nil
}

// Count returns the number of live (non-deleted) records.
func (s *HNSWStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0
	}
	return len(s.idMap)
}

// Save persists the graph and its metadata to path and path+".meta".
func (s *HNSWStore) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return errClosed
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := s.graph.Export(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	meta := hnswMetadata{IDMap: s.idMap, Records: s.records, NextKey: s.nextKey, Config: s.config}
	metaFile, err := os.Create(path + ".meta")
	if err != nil {
		return err
	}
	defer metaFile.Close()
	w := bufio.NewWriter(metaFile)
	if err := gob.NewEncoder(w).Encode(meta); err != nil {
		return err
	}
	return w.Flush()
}

// Load restores the graph and its metadata from path and path+".meta".
func (s *HNSWStore) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	if err := graph.Import(bufio.NewReader(f)); err != nil {
		return err
	}

	metaFile, err := os.Open(path + ".meta")
	if err != nil {
		return err
	}
	defer metaFile.Close()

	var meta hnswMetadata
	if err := gob.NewDecoder(bufio.NewReader(metaFile)).Decode(&meta); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = graph
	s.config = meta.Config
	s.graph.M = s.config.M
	s.graph.EfSearch = s.config.EfSearch
	s.graph.Ml = 0.25

	s.idMap = meta.IDMap
	s.records = meta.Records
	s.nextKey = meta.NextKey
	s.keyMap = make(map[uint64]string, len(s.idMap))
	for id, key := range s.idMap {
		s.keyMap[key] = id
	}
	return nil
}

// Close marks the store unusable. HNSWStore holds no external handles.
func (s *HNSWStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func normalizeInPlace(v []float32) {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range v {
		v[i] /= norm
	}
}
