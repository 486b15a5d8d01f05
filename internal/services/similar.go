package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
)

type SimilarityService interface {
	Index(ctx context.Context, interview *models.Interview) error
	FindSimilar(ctx context.Context, interviewID uuid.UUID, limit int) ([]models.SimilarInterview, error)
}

type similarityService struct {
	embedder      Embedder
	index         InterviewIndex
	interviewRepo repositories.InterviewRepository
	promptBuilder *PromptBuilder
}

func NewSimilarityService(
	embedder Embedder,
	index InterviewIndex,
	interviewRepo repositories.InterviewRepository,
	promptBuilder *PromptBuilder,
) SimilarityService {
	return &similarityService{
		embedder:      embedder,
		index:         index,
		interviewRepo: interviewRepo,
		promptBuilder: promptBuilder,
	}
}

func (s *similarityService) Index(ctx context.Context, interview *models.Interview) error {
	embedding, err := s.embedder.GenerateEmbedding(ctx, s.promptBuilder.BuildIndexText(interview))
	if err != nil {
		return fmt.Errorf("failed to embed interview %s: %w", interview.ID, err)
	}

	if err := s.index.Upsert(ctx, interview, embedding); err != nil {
		return fmt.Errorf("failed to index interview %s: %w", interview.ID, err)
	}
	return nil
}

func (s *similarityService) FindSimilar(ctx context.Context, interviewID uuid.UUID, limit int) ([]models.SimilarInterview, error) {
	interview, err := s.interviewRepo.FindByID(ctx, interviewID)
	if err != nil {
		return nil, classifyStorageError("failed to load interview", err)
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, s.promptBuilder.BuildIndexText(interview))
	if err != nil {
		return nil, err
	}

	results, err := s.index.SearchSimilar(ctx, embedding, interviewID, limit)
	if err != nil {
		return nil, newError(KindStorageFailure, "similarity search failed", err)
	}

	similar := make([]models.SimilarInterview, 0, len(results))
	for _, r := range results {
		similar = append(similar, models.SimilarInterview{
			InterviewID: r.InterviewID,
			Role:        r.Role,
			Level:       r.Level,
			Score:       r.Score,
		})
	}
	return similar, nil
}
