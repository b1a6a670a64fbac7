package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
)

// memoryReportRepository holds the submitted reports in insertion order,
// which is submission order since writes are serialized by the mutex.
type memoryReportRepository struct {
	mu      sync.RWMutex
	clk     clock.Clock
	reports []domain.Report
}

// NewMemoryReportRepository builds an in-memory report store.
func NewMemoryReportRepository(clk clock.Clock) ReportRepository {
	return &memoryReportRepository{clk: clk}
}

func (r *memoryReportRepository) Create(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = uuid.NewString()
	report.CreatedAt = r.clk.Now()
	r.reports = append(r.reports, *cloneReport(*report))
	return nil
}

func (r *memoryReportRepository) GetByID(_ context.Context, id string) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.reports {
		if r.reports[i].ID == id {
			return cloneReport(r.reports[i]), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryReportRepository) ListWithFilter(_ context.Context, filter ReportFilter) ([]domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Report
	// newest first, matching the SQL ordering
	for i := len(r.reports) - 1; i >= 0; i-- {
		report := r.reports[i]
		if !matchesFilter(report, filter) {
			continue
		}
		matched = append(matched, *cloneReport(report))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memoryReportRepository) CountByReporterBetween(_ context.Context, userID string, from, to time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for i := range r.reports {
		report := &r.reports[i]
		if !report.Identified() || report.ReportedBy.UserID != userID {
			continue
		}
		if report.CreatedAt.Before(from) || !report.CreatedAt.Before(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *memoryReportRepository) CountByReporter(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for i := range r.reports {
		if r.reports[i].Identified() && r.reports[i].ReportedBy.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memoryReportRepository) CountByZoneSince(_ context.Context, zone string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for i := range r.reports {
		if r.reports[i].Zone == zone && !r.reports[i].CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func matchesFilter(report domain.Report, filter ReportFilter) bool {
	if filter.ReporterID != nil {
		if !report.Identified() || report.ReportedBy.UserID != *filter.ReporterID {
			return false
		}
	}
	if len(filter.Zones) > 0 && !containsString(filter.Zones, report.Zone) {
		return false
	}
	if len(filter.IncidentTypes) > 0 && !containsString(filter.IncidentTypes, report.IncidentType) {
		return false
	}
	if filter.CreatedFrom != nil && report.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && report.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func cloneReport(report domain.Report) *domain.Report {
	if report.ReportedBy != nil {
		rb := *report.ReportedBy
		report.ReportedBy = &rb
	}
	if report.ContactInfo != nil {
		ci := *report.ContactInfo
		report.ContactInfo = &ci
	}
	if report.PhotoName != nil {
		pn := *report.PhotoName
		report.PhotoName = &pn
	}
	return &report
}
