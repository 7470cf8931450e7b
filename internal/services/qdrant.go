package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/qdrant/go-client/qdrant"
)

// qdrantStore keeps résumé vectors in a Qdrant collection so that seeded
// résumés survive restarts. Ids come from a local counter seeded with the
// collection's point count, which keeps them monotonic for a single writer.
type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64

	mu     sync.Mutex
	nextID int
}

func NewQdrantStore(ctx context.Context, urlStr, apiKey, collectionName string) (SimilarityStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	store := &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     EmbeddingDimension,
	}

	if err := store.initCollection(ctx); err != nil {
		return nil, err
	}

	count, err := client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count points: %w", err)
	}
	store.nextID = int(count)

	log.Printf("✅ Qdrant store ready with %d resumes", count)
	return store, nil
}

func (q *qdrantStore) initCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Euclid,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// Add implements SimilarityStore.
func (q *qdrantStore) Add(ctx context.Context, vector []float32, sourceText string) (int, error) {
	if err := checkDimension(vector); err != nil {
		return 0, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextID
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(id)),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"text": sourceText,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert point: %w", err)
	}

	q.nextID++
	return id, nil
}

// Search implements SimilarityStore.
func (q *qdrantStore) Search(ctx context.Context, vector []float32, k int) ([]Neighbor, error) {
	if k <= 0 || q.Count() == 0 {
		return []Neighbor{}, nil
	}
	if err := checkDimension(vector); err != nil {
		return nil, err
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	neighbors := make([]Neighbor, 0, len(points))
	for _, point := range points {
		// Euclid collections report the distance as the score.
		n := Neighbor{
			ID:       int(point.GetId().GetNum()),
			Distance: point.GetScore(),
		}

		if text, ok := point.GetPayload()["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				n.Text = val.StringValue
			}
		}

		neighbors = append(neighbors, n)
	}

	return neighbors, nil
}

// Count implements SimilarityStore.
func (q *qdrantStore) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.nextID
}
