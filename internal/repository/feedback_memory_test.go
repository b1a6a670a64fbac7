package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
)

func TestFeedbackRepositoryExistsByUser(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	repo := NewMemoryFeedbackRepository(clk)
	ctx := context.Background()

	exists, err := repo.ExistsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, exists)

	feedback := &domain.Feedback{UserID: "u1", Rating: 5, Comment: "great"}
	require.NoError(t, repo.Create(ctx, feedback))
	assert.NotEmpty(t, feedback.ID)
	assert.Equal(t, clk.Now(), feedback.CreatedAt)

	exists, err = repo.ExistsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUser(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFeedbackRepositoryListOrdering(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	repo := NewMemoryFeedbackRepository(clk)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Feedback{UserID: "u1", Rating: 3, Comment: "old"}))
	clk.Advance(time.Minute)
	require.NoError(t, repo.Create(ctx, &domain.Feedback{UserID: "u2", Rating: 4, Comment: "new"}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].Comment)
	assert.Equal(t, "old", all[1].Comment)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "old", mine[0].Comment)
}
