package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/interview-prep/internal/models"
)

// InterviewIndex stores one embedding per interview for similarity lookups.
type InterviewIndex interface {
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, interview *models.Interview, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, excludeID uuid.UUID, limit int) ([]SearchResult, error)
}

type SearchResult struct {
	InterviewID uuid.UUID
	Score       float32
	Role        string
	Level       string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (InterviewIndex, error) {
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

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
	}, nil
}

// InitCollection implements InterviewIndex.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully", q.collectionName)
	return nil
}

// Upsert implements InterviewIndex. The point id is the interview id, so
// reindexing overwrites instead of duplicating.
func (q *qdrantService) Upsert(ctx context.Context, interview *models.Interview, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(interview.ID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"interview_id": interview.ID.String(),
			"role":         interview.Role,
			"level":        interview.Level,
			"type":         interview.Type,
			"user_id":      interview.UserID,
			"finalized":    interview.Finalized,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements InterviewIndex.
func (q *qdrantService) SearchSimilar(ctx context.Context, embedding []float32, excludeID uuid.UUID, limit int) ([]SearchResult, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatchBool("finalized", true),
		},
		MustNot: []*qdrant.Condition{
			qdrant.NewMatch("interview_id", excludeID.String()),
		},
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		payload := point.Payload
		id, err := uuid.Parse(payloadString(payload, "interview_id"))
		if err != nil {
			continue
		}

		results = append(results, SearchResult{
			InterviewID: id,
			Score:       point.Score,
			Role:        payloadString(payload, "role"),
			Level:       payloadString(payload, "level"),
		})
	}

	return results, nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if val, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return val.StringValue
		}
	}
	return ""
}
