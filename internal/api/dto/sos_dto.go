package dto

import "time"

// SOSRequest payload. The zone is optional; the campus comes from the caller.
type SOSRequest struct {
	Zone *string `json:"zone,omitempty"`
}

// SOSResponse response.
type SOSResponse struct {
	ID        string    `json:"id"`
	Campus    string    `json:"campus"`
	Zone      *string   `json:"zone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
