package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"alfredoptarigan/interview-prep/internal/models"
)

// cachedInterviewRepository keeps FindByID results in Redis. Interviews
// are never updated after Add, so entries only expire.
type cachedInterviewRepository struct {
	InterviewRepository
	client redis.Cmdable
	ttl    time.Duration
}

func NewCachedInterviewRepository(repo InterviewRepository, client redis.Cmdable, ttl time.Duration) InterviewRepository {
	return &cachedInterviewRepository{
		InterviewRepository: repo,
		client:              client,
		ttl:                 ttl,
	}
}

func interviewKey(id uuid.UUID) string {
	return fmt.Sprintf("interview:%s", id)
}

func (r *cachedInterviewRepository) Add(ctx context.Context, collection string, interview *models.Interview) (uuid.UUID, error) {
	id, err := r.InterviewRepository.Add(ctx, collection, interview)
	if err != nil {
		return uuid.Nil, err
	}

	r.set(ctx, interview)
	return id, nil
}

func (r *cachedInterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	data, err := r.client.Get(ctx, interviewKey(id)).Bytes()
	switch {
	case err == nil:
		var interview models.Interview
		if err := json.Unmarshal(data, &interview); err == nil {
			return &interview, nil
		}
		log.Printf("⚠️ Dropping undecodable cache entry for interview %s", id)
		r.client.Del(ctx, interviewKey(id))
	case !errors.Is(err, redis.Nil):
		log.Printf("⚠️ Interview cache read failed: %v", err)
	}

	interview, err := r.InterviewRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, interview)
	return interview, nil
}

func (r *cachedInterviewRepository) set(ctx context.Context, interview *models.Interview) {
	data, err := json.Marshal(interview)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, interviewKey(interview.ID), data, r.ttl).Err(); err != nil {
		log.Printf("⚠️ Interview cache write failed: %v", err)
	}
}
