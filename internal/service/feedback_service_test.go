package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/events"
	"github.com/utp-plus/report-service/pkg/util"
)

func TestSubmitFeedbackValidation(t *testing.T) {
	fx := newReportFixture(t, nil)
	user := testUser("u1")
	ctx := context.Background()

	_, err := fx.feedback.SubmitFeedback(ctx, user, FeedbackInput{Rating: 0, Comment: "fine"})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))

	_, err = fx.feedback.SubmitFeedback(ctx, user, FeedbackInput{Rating: 6, Comment: "fine"})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))

	_, err = fx.feedback.SubmitFeedback(ctx, user, FeedbackInput{Rating: 4, Comment: "  "})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestSubmitFeedbackIsAppendOnce(t *testing.T) {
	fx := newReportFixture(t, nil)
	user := testUser("u2")
	ctx := context.Background()

	stored, err := fx.feedback.SubmitFeedback(ctx, user, FeedbackInput{Rating: 4, Comment: "helpful"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, "helpful", stored.Comment)

	_, err = fx.feedback.SubmitFeedback(ctx, user, FeedbackInput{Rating: 5, Comment: "changed my mind"})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "CONFLICT"))

	mine, err := fx.feedback.GetUserFeedback(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 4, mine[0].Rating)
}

func TestFeedbackMarksFirstReportSubmission(t *testing.T) {
	fx := newReportFixture(t, nil)
	user := testUser("u3")
	ctx := context.Background()

	_, err := fx.service.Submit(ctx, user, identifiedSubmission())
	require.NoError(t, err)

	stored, err := fx.feedback.SubmitFeedback(ctx, user, FeedbackInput{Rating: 5, Comment: "smooth"})
	require.NoError(t, err)
	assert.True(t, stored.IsFirstReport)

	published := fx.bus.byType(events.EventFeedbackSubmitted)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.FeedbackSubmittedPayload)
	require.True(t, ok)
	assert.Equal(t, 5, payload.Rating)
	assert.True(t, payload.IsFirstReport)
}

func TestFeedbackWithoutReportsIsNotFirstReport(t *testing.T) {
	fx := newReportFixture(t, nil)
	user := testUser("u4")

	stored, err := fx.feedback.SubmitFeedback(context.Background(), user, FeedbackInput{Rating: 3, Comment: "ok"})
	require.NoError(t, err)
	assert.False(t, stored.IsFirstReport)
}

func TestGetAllFeedbacksNewestFirst(t *testing.T) {
	fx := newReportFixture(t, nil)
	ctx := context.Background()

	_, err := fx.feedback.SubmitFeedback(ctx, testUser("a"), FeedbackInput{Rating: 2, Comment: "first"})
	require.NoError(t, err)
	fx.clk.Advance(time.Minute)
	_, err = fx.feedback.SubmitFeedback(ctx, testUser("b"), FeedbackInput{Rating: 5, Comment: "second"})
	require.NoError(t, err)

	all, err := fx.feedback.GetAllFeedbacks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Comment)
	assert.Equal(t, "first", all[1].Comment)
}
