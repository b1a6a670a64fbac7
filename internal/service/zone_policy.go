package service

import (
	"context"
	"time"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/repository"
)

// DangerAssessment is the outcome of scanning a zone after a submission.
type DangerAssessment struct {
	Zone        string
	Count       int
	WindowHours int
	Flagged     bool
}

// DangerZonePolicy decides whether a zone has accumulated enough recent
// reports to warrant a security alert. The threshold is a policy choice, so
// it lives behind an interface rather than a constant in the workflow.
type DangerZonePolicy interface {
	Evaluate(ctx context.Context, zone string) (DangerAssessment, error)
}

type thresholdZonePolicy struct {
	reports   repository.ReportRepository
	clk       clock.Clock
	threshold int
	window    time.Duration
}

// NewThresholdZonePolicy flags a zone once it accumulates threshold reports
// within the trailing window.
func NewThresholdZonePolicy(reports repository.ReportRepository, clk clock.Clock, threshold int, window time.Duration) DangerZonePolicy {
	if threshold <= 0 {
		threshold = 3
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &thresholdZonePolicy{reports: reports, clk: clk, threshold: threshold, window: window}
}

func (p *thresholdZonePolicy) Evaluate(ctx context.Context, zone string) (DangerAssessment, error) {
	since := p.clk.Now().Add(-p.window)
	count, err := p.reports.CountByZoneSince(ctx, zone, since)
	if err != nil {
		return DangerAssessment{}, err
	}
	return DangerAssessment{
		Zone:        zone,
		Count:       count,
		WindowHours: int(p.window / time.Hour),
		Flagged:     count >= p.threshold,
	}, nil
}
