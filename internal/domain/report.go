package domain

import "time"

// Reporter is the identity snapshot attached to a non-anonymous report.
// It is captured at submission time so later user edits do not rewrite
// report history.
type Reporter struct {
	UserID    string
	UserName  string
	UserEmail string
	UserRole  Role
}

// Report is the aggregate for a submitted incident. Reports are immutable
// after submission; there is no edit or delete path.
type Report struct {
	ID           string
	IncidentType string
	Zone         string
	Description  string
	IsAnonymous  bool
	ContactInfo  *string
	HasPhoto     bool
	PhotoName    *string
	ReportedBy   *Reporter
	CreatedAt    time.Time
}

// Identified reports carry a reporter snapshot; anonymous ones never do.
func (r *Report) Identified() bool {
	return !r.IsAnonymous && r.ReportedBy != nil
}
