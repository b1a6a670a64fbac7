package domain

import "time"

// SOSAlert records an emergency broadcast triggered from the panic button.
// Alerts are broadcast to security staff and are not persisted beyond the
// session; the dispatcher and the Redis channel are the delivery paths.
type SOSAlert struct {
	ID          string
	Campus      string
	Zone        *string
	TriggeredBy Reporter
	CreatedAt   time.Time
}
