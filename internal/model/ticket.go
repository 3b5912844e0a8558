package model

import "time"

// Ticket payment statuses as stored in the tickets.status column.
const (
	TicketStatusReserved = "RESERVED" // ticket issued but not paid yet
	TicketStatusPaid     = "PAID"     // payment confirmed
)

// Ticket is the proof of admission for an event.  Each ticket belongs
// to exactly one enrollment and references a ticket type that decides
// what the attendee is entitled to.  This service never writes
// tickets; the ticketing subsystem owns them.
type Ticket struct {
	ID           uint64    // tickets.id
	EnrollmentID uint64    // tickets.enrollment_id
	TicketTypeID uint64    // tickets.ticket_type_id
	Status       string    // tickets.status (RESERVED, PAID)
	CreatedAt    time.Time // tickets.created_at
	UpdatedAt    time.Time // tickets.updated_at
}

// TicketType describes a class of ticket.  IncludesHotel and IsRemote
// drive the booking eligibility decision; PriceCents is carried for
// completeness but is irrelevant to bookings.
type TicketType struct {
	ID            uint64 // ticket_types.id
	Name          string // ticket_types.name
	PriceCents    uint32 // ticket_types.price_cents
	IncludesHotel bool   // ticket_types.includes_hotel
	IsRemote      bool   // ticket_types.is_remote
}

// EnrollmentTicket bundles the ticket and its type for an enrolled
// user, as returned by the enrollment join used during eligibility
// checks.
type EnrollmentTicket struct {
	EnrollmentID uint64
	Ticket       Ticket
	TicketType   TicketType
}
