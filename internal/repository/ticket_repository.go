package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// TicketRepo resolves a user's enrollment, ticket and ticket type in
// one joined lookup.  The enrollment and ticketing subsystems own
// these tables; the booking service only reads them to decide
// eligibility.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the provided DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FindWithTypeByUser walks user -> enrollment -> ticket -> ticket
// type and returns the bundle.  ErrNotFound is returned when the user
// has no enrollment or the enrollment has no ticket; callers treat
// both the same way, so the join does not distinguish them.
func (r *TicketRepo) FindWithTypeByUser(ctx context.Context, userID uint64) (*model.EnrollmentTicket, error) {
	const q = `SELECT e.id,
	                  t.id, t.enrollment_id, t.ticket_type_id, t.status,
	                  tt.id, tt.name, tt.price_cents, tt.includes_hotel, tt.is_remote
	           FROM enrollments e
	           JOIN tickets t ON t.enrollment_id = e.id
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE e.user_id = ?`
	var et model.EnrollmentTicket
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&et.EnrollmentID,
		&et.Ticket.ID, &et.Ticket.EnrollmentID, &et.Ticket.TicketTypeID, &et.Ticket.Status,
		&et.TicketType.ID, &et.TicketType.Name, &et.TicketType.PriceCents,
		&et.TicketType.IncludesHotel, &et.TicketType.IsRemote,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &et, nil
}
