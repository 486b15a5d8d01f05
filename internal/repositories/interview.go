package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-prep/internal/models"
)

var ErrNotFound = errors.New("record not found")

//go:generate mockgen -source=./interview.go -destination=./mocks/interview.mock.go -package=repomocks InterviewRepository
type InterviewRepository interface {
	Add(ctx context.Context, collection string, interview *models.Interview) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	FindByUser(ctx context.Context, userID string) ([]models.Interview, error)
	FindLatest(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error)
	FindAll(ctx context.Context) ([]models.Interview, error)
}

type interviewRepository struct {
	db          *gorm.DB
	collections []string
	timeout     time.Duration
}

// NewInterviewRepository reads from every table in collections; writes go
// to whichever collection the caller names.
func NewInterviewRepository(db *gorm.DB, collections []string, timeout time.Duration) InterviewRepository {
	return &interviewRepository{
		db:          db,
		collections: collections,
		timeout:     timeout,
	}
}

// Add implements InterviewRepository. The id is assigned here.
func (r *interviewRepository) Add(ctx context.Context, collection string, interview *models.Interview) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	interview.ID = uuid.New()
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Table(collection).Create(interview).Error; err != nil {
		return uuid.Nil, wrapErr(ctx, "create interview", err)
	}

	return interview.ID, nil
}

// FindByID implements InterviewRepository.
func (r *interviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for _, collection := range r.collections {
		var interview models.Interview
		err := r.db.WithContext(ctx).Table(collection).Where("id = ?", id).First(&interview).Error
		if err == nil {
			return &interview, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrapErr(ctx, "find interview", err)
		}
	}

	return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
}

// FindByUser implements InterviewRepository. Newest first.
func (r *interviewRepository) FindByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var all []models.Interview
	for _, collection := range r.collections {
		var interviews []models.Interview
		err := r.db.WithContext(ctx).Table(collection).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&interviews).Error
		if err != nil {
			return nil, wrapErr(ctx, "find interviews by user", err)
		}
		all = append(all, interviews...)
	}

	sortNewestFirst(all)
	return all, nil
}

// FindLatest implements InterviewRepository. Only finalized interviews of
// other users are returned.
func (r *interviewRepository) FindLatest(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var all []models.Interview
	for _, collection := range r.collections {
		var interviews []models.Interview
		err := r.db.WithContext(ctx).Table(collection).
			Where("finalized = ? AND user_id <> ?", true, excludeUserID).
			Order("created_at DESC").
			Limit(limit).
			Find(&interviews).Error
		if err != nil {
			return nil, wrapErr(ctx, "find latest interviews", err)
		}
		all = append(all, interviews...)
	}

	sortNewestFirst(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// FindAll implements InterviewRepository.
func (r *interviewRepository) FindAll(ctx context.Context) ([]models.Interview, error) {
	var all []models.Interview
	for _, collection := range r.collections {
		var interviews []models.Interview
		if err := r.db.WithContext(ctx).Table(collection).Order("created_at ASC").Find(&interviews).Error; err != nil {
			return nil, wrapErr(ctx, "list interviews", err)
		}
		all = append(all, interviews...)
	}
	return all, nil
}

func sortNewestFirst(interviews []models.Interview) {
	sort.SliceStable(interviews, func(i, j int) bool {
		return interviews[i].CreatedAt.After(interviews[j].CreatedAt)
	})
}

// wrapErr makes a query that ran out of time detectable with
// errors.Is(err, context.DeadlineExceeded) whatever the driver returned.
func wrapErr(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
