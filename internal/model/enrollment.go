package model

import "time"

// Enrollment is a user's registration record for the event.  Exactly
// one enrollment exists per registered user and it is a prerequisite
// for owning a ticket.  Read-only from this service's perspective.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	Name      string    // enrollments.name
	CreatedAt time.Time // enrollments.created_at
	UpdatedAt time.Time // enrollments.updated_at
}
