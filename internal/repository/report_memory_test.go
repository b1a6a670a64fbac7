package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
)

func newReportFixtureRepo(t *testing.T) (ReportRepository, *clock.Fake) {
	t.Helper()
	loc := time.FixedZone("UTC-5", -5*60*60)
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, loc))
	return NewMemoryReportRepository(clk), clk
}

func storeReport(t *testing.T, repo ReportRepository, userID, zone string) *domain.Report {
	t.Helper()
	report := &domain.Report{
		IncidentType: "robo",
		Zone:         zone,
		Description:  "x",
	}
	if userID != "" {
		report.ReportedBy = &domain.Reporter{UserID: userID, UserRole: domain.RoleUser}
	} else {
		report.IsAnonymous = true
	}
	require.NoError(t, repo.Create(context.Background(), report))
	return report
}

func TestReportCreateAssignsIDAndTimestamp(t *testing.T) {
	repo, clk := newReportFixtureRepo(t)

	report := storeReport(t, repo, "u1", "Cafeteria")
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, clk.Now(), report.CreatedAt)

	got, err := repo.GetByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
	require.NotNil(t, got.ReportedBy)
	assert.Equal(t, "u1", got.ReportedBy.UserID)
}

func TestReportGetByIDMissing(t *testing.T) {
	repo, _ := newReportFixtureRepo(t)
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestCountByReporterBetweenRespectsDayWindow(t *testing.T) {
	repo, clk := newReportFixtureRepo(t)
	ctx := context.Background()

	storeReport(t, repo, "u1", "Cafeteria")
	storeReport(t, repo, "u1", "Cafeteria")
	storeReport(t, repo, "", "Cafeteria")   // anonymous, never counted
	storeReport(t, repo, "u2", "Cafeteria") // someone else

	from, to := clock.DayBounds(clk.Now(), clk.Location())
	count, err := repo.CountByReporterBetween(ctx, "u1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// reports on the next local day fall outside the window
	clk.Advance(14 * time.Hour)
	storeReport(t, repo, "u1", "Cafeteria")

	count, err = repo.CountByReporterBetween(ctx, "u1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	from, to = clock.DayBounds(clk.Now(), clk.Location())
	count, err = repo.CountByReporterBetween(ctx, "u1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	total, err := repo.CountByReporter(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestCountByZoneSinceIncludesAnonymous(t *testing.T) {
	repo, clk := newReportFixtureRepo(t)
	ctx := context.Background()

	storeReport(t, repo, "u1", "Cafeteria")
	storeReport(t, repo, "", "Cafeteria")
	storeReport(t, repo, "u2", "Biblioteca")

	count, err := repo.CountByZoneSince(ctx, "Cafeteria", clk.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// reports before the cutoff are excluded
	count, err = repo.CountByZoneSince(ctx, "Cafeteria", clk.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListWithFilter(t *testing.T) {
	repo, clk := newReportFixtureRepo(t)
	ctx := context.Background()

	first := storeReport(t, repo, "u1", "Cafeteria")
	clk.Advance(time.Minute)
	second := storeReport(t, repo, "u1", "Biblioteca")
	clk.Advance(time.Minute)
	storeReport(t, repo, "u2", "Cafeteria")

	// newest first
	all, err := repo.ListWithFilter(ctx, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[2].CreatedAt))

	reporter := "u1"
	mine, err := repo.ListWithFilter(ctx, ReportFilter{ReporterID: &reporter})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	zoned, err := repo.ListWithFilter(ctx, ReportFilter{Zones: []string{"Biblioteca"}})
	require.NoError(t, err)
	require.Len(t, zoned, 1)
	assert.Equal(t, second.ID, zoned[0].ID)

	paged, err := repo.ListWithFilter(ctx, ReportFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, second.ID, paged[0].ID)

	empty, err := repo.ListWithFilter(ctx, ReportFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStoredReportsAreInsulatedFromCallerMutation(t *testing.T) {
	repo, _ := newReportFixtureRepo(t)
	ctx := context.Background()

	report := storeReport(t, repo, "u1", "Cafeteria")
	report.ReportedBy.UserID = "tampered"
	report.Zone = "tampered"

	got, err := repo.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ReportedBy.UserID)
	assert.Equal(t, "Cafeteria", got.Zone)
}
