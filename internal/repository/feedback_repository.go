package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utp-plus/report-service/internal/domain"
)

// FeedbackRepository encapsulates feedback persistence. One record is kept
// per user; the service rejects resubmission before calling Create.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ExistsByUser(ctx context.Context, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error)
	// ListAll returns all feedback sorted by creation time descending.
	ListAll(ctx context.Context) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

const feedbackColumns = `id, user_id, user_name, user_email, rating, comment, report_id, is_first_report, created_at`

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedbacks (user_id, user_name, user_email, rating, comment, report_id, is_first_report)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		feedback.UserID,
		feedback.UserName,
		feedback.UserEmail,
		feedback.Rating,
		feedback.Comment,
		feedback.ReportID,
		feedback.IsFirstReport,
	).Scan(&feedback.ID, &feedback.CreatedAt)
}

func (r *feedbackRepository) ExistsByUser(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM feedbacks WHERE user_id=$1)`, userID).Scan(&exists)
	return exists, err
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+feedbackColumns+` FROM feedbacks WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedbacks(rows)
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+feedbackColumns+` FROM feedbacks ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedbacks(rows)
}

func scanFeedbacks(rows pgx.Rows) ([]domain.Feedback, error) {
	var result []domain.Feedback
	for rows.Next() {
		var feedback domain.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.UserID,
			&feedback.UserName,
			&feedback.UserEmail,
			&feedback.Rating,
			&feedback.Comment,
			&feedback.ReportID,
			&feedback.IsFirstReport,
			&feedback.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, feedback)
	}
	return result, rows.Err()
}
