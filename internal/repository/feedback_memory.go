package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
)

// memoryFeedbackRepository keeps feedback records and the set of users who
// already rated, mirroring the feedbacks table and its unique user constraint.
type memoryFeedbackRepository struct {
	mu        sync.RWMutex
	clk       clock.Clock
	feedbacks []domain.Feedback
	byUser    map[string]struct{}
}

// NewMemoryFeedbackRepository builds an in-memory feedback store.
func NewMemoryFeedbackRepository(clk clock.Clock) FeedbackRepository {
	return &memoryFeedbackRepository{
		clk:    clk,
		byUser: make(map[string]struct{}),
	}
}

func (r *memoryFeedbackRepository) Create(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	feedback.ID = uuid.NewString()
	feedback.CreatedAt = r.clk.Now()
	r.feedbacks = append(r.feedbacks, *feedback)
	r.byUser[feedback.UserID] = struct{}{}
	return nil
}

func (r *memoryFeedbackRepository) ExistsByUser(_ context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUser[userID]
	return ok, nil
}

func (r *memoryFeedbackRepository) ListByUser(_ context.Context, userID string) ([]domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Feedback
	for _, feedback := range r.feedbacks {
		if feedback.UserID == userID {
			result = append(result, feedback)
		}
	}
	sortFeedbackNewestFirst(result)
	return result, nil
}

func (r *memoryFeedbackRepository) ListAll(_ context.Context) ([]domain.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := append([]domain.Feedback(nil), r.feedbacks...)
	sortFeedbackNewestFirst(result)
	return result, nil
}

func sortFeedbackNewestFirst(feedbacks []domain.Feedback) {
	sort.SliceStable(feedbacks, func(i, j int) bool {
		return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt)
	})
}
