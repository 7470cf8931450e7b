package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
)

// Neighbor is one search hit. Distance is Euclidean.
type Neighbor struct {
	ID       int
	Distance float32
	Text     string
}

// SimilarityStore holds résumé vectors for the lifetime of the process.
// Records are append-only; ids are insertion order and never reused.
type SimilarityStore interface {
	Add(ctx context.Context, vector []float32, sourceText string) (int, error)
	Search(ctx context.Context, vector []float32, k int) ([]Neighbor, error)
	Count() int
}

type embeddingRecord struct {
	id         int
	vector     []float32
	sourceText string
}

type memoryStore struct {
	mu      sync.RWMutex
	records []embeddingRecord
}

func NewMemoryStore() SimilarityStore {
	return &memoryStore{}
}

// Add implements SimilarityStore.
func (m *memoryStore) Add(_ context.Context, vector []float32, sourceText string) (int, error) {
	if err := checkDimension(vector); err != nil {
		return 0, err
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)

	m.mu.Lock()
	defer m.mu.Unlock()

	id := len(m.records)
	m.records = append(m.records, embeddingRecord{id: id, vector: stored, sourceText: sourceText})
	return id, nil
}

// Search implements SimilarityStore with a linear scan.
func (m *memoryStore) Search(_ context.Context, vector []float32, k int) ([]Neighbor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Nothing to compare against, so the query shape does not matter.
	if k <= 0 || len(m.records) == 0 {
		return []Neighbor{}, nil
	}
	if err := checkDimension(vector); err != nil {
		return nil, err
	}

	hits := make([]Neighbor, 0, len(m.records))
	for _, rec := range m.records {
		hits = append(hits, Neighbor{
			ID:       rec.id,
			Distance: euclidean(vector, rec.vector),
			Text:     rec.sourceText,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Count implements SimilarityStore.
func (m *memoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func euclidean(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

// RetrieveContext joins the source text of the k nearest records. Retrieval
// only conditions the extraction prompt, so failures yield "".
func RetrieveContext(ctx context.Context, store SimilarityStore, vector []float32, k int) string {
	neighbors, err := store.Search(ctx, vector, k)
	if err != nil {
		log.Printf("⚠️  Similarity search failed: %v", err)
		return ""
	}

	if len(neighbors) > 0 {
		log.Printf("🔍 Retrieved %d similar resumes: %s", len(neighbors), describeNeighbors(neighbors))
	}

	texts := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Text == "" {
			continue
		}
		texts = append(texts, n.Text)
	}

	return strings.Join(texts, "\n")
}

func describeNeighbors(neighbors []Neighbor) string {
	parts := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		parts = append(parts, fmt.Sprintf("#%d (%.3f)", n.ID, n.Distance))
	}
	return strings.Join(parts, ", ")
}
