package domain

import "time"

// Feedback rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a one-time rating collected after a user's first identified
// report. One record per user; resubmission is rejected.
type Feedback struct {
	ID            string
	UserID        string
	UserName      string
	UserEmail     string
	Rating        int
	Comment       string
	ReportID      *string
	IsFirstReport bool
	CreatedAt     time.Time
}
