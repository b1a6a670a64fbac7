package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utp-plus/report-service/internal/domain"
)

// ReportFilter captures listing parameters for report queries.
type ReportFilter struct {
	ReporterID    *string
	Zones         []string
	IncidentTypes []string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// ReportRepository encapsulates report persistence. Reports are append-only;
// there is no update or delete.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	// CountByReporterBetween counts identified reports attributed to the user
	// with created_at in [from, to). Anonymous reports are never attributed.
	CountByReporterBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
	CountByReporter(ctx context.Context, userID string) (int, error)
	CountByZoneSince(ctx context.Context, zone string, since time.Time) (int, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, incident_type, zone, description, is_anonymous, contact_info,
        has_photo, photo_name, reported_by_user_id, reported_by_name, reported_by_email,
        reported_by_role, created_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (incident_type, zone, description, is_anonymous, contact_info,
            has_photo, photo_name, reported_by_user_id, reported_by_name, reported_by_email, reported_by_role)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`

	var userID, userName, userEmail, userRole *string
	if report.ReportedBy != nil {
		userID = &report.ReportedBy.UserID
		userName = &report.ReportedBy.UserName
		userEmail = &report.ReportedBy.UserEmail
		role := string(report.ReportedBy.UserRole)
		userRole = &role
	}

	return r.pool.QueryRow(ctx, query,
		report.IncidentType,
		report.Zone,
		report.Description,
		report.IsAnonymous,
		report.ContactInfo,
		report.HasPhoto,
		report.PhotoName,
		userID,
		userName,
		userEmail,
		userRole,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id=$1`, id)
	return scanReport(row)
}

func (r *reportRepository) ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ReporterID != nil {
		args = append(args, *filter.ReporterID)
		clauses = append(clauses, fmt.Sprintf("reported_by_user_id=$%d", len(args)))
	}
	if len(filter.Zones) > 0 {
		args = append(args, filter.Zones)
		clauses = append(clauses, fmt.Sprintf("zone = ANY($%d)", len(args)))
	}
	if len(filter.IncidentTypes) > 0 {
		args = append(args, filter.IncidentTypes)
		clauses = append(clauses, fmt.Sprintf("incident_type = ANY($%d)", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM reports WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		reportColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	return result, rows.Err()
}

func (r *reportRepository) CountByReporterBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM reports
        WHERE is_anonymous = FALSE AND reported_by_user_id=$1 AND created_at >= $2 AND created_at < $3`
	var count int
	err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(&count)
	return count, err
}

func (r *reportRepository) CountByReporter(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM reports WHERE is_anonymous = FALSE AND reported_by_user_id=$1`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *reportRepository) CountByZoneSince(ctx context.Context, zone string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM reports WHERE zone=$1 AND created_at >= $2`
	var count int
	err := r.pool.QueryRow(ctx, query, zone, since).Scan(&count)
	return count, err
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var report domain.Report
	var userID, userName, userEmail, userRole *string
	if err := row.Scan(
		&report.ID,
		&report.IncidentType,
		&report.Zone,
		&report.Description,
		&report.IsAnonymous,
		&report.ContactInfo,
		&report.HasPhoto,
		&report.PhotoName,
		&userID,
		&userName,
		&userEmail,
		&userRole,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}
	if userID != nil {
		report.ReportedBy = &domain.Reporter{
			UserID:    *userID,
			UserName:  derefOr(userName, ""),
			UserEmail: derefOr(userEmail, ""),
			UserRole:  domain.Role(derefOr(userRole, "")),
		}
	}
	return &report, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
