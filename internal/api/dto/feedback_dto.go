package dto

import "time"

// CreateFeedbackRequest payload.
type CreateFeedbackRequest struct {
	Rating   int     `json:"rating"`
	Comment  string  `json:"comment"`
	ReportID *string `json:"report_id,omitempty"`
}

// FeedbackResponse response.
type FeedbackResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	ReportID      *string   `json:"report_id,omitempty"`
	IsFirstReport bool      `json:"is_first_report"`
	CreatedAt     time.Time `json:"created_at"`
}
