package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// Store bundles the per-entity repositories behind the single accessor
// the booking service depends on.  The service package declares the
// interface; this type is the MySQL implementation handed to it at
// startup.
type Store struct {
	Bookings *BookingRepo
	Rooms    *RoomRepo
	Tickets  *TicketRepo
}

// NewStore constructs a Store with repositories sharing one DB pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Bookings: NewBookingRepo(db),
		Rooms:    NewRoomRepo(db),
		Tickets:  NewTicketRepo(db),
	}
}

func (s *Store) FindBookingByUser(ctx context.Context, userID uint64) (*model.Booking, error) {
	return s.Bookings.FindByUser(ctx, userID)
}

func (s *Store) FindBookingByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	return s.Bookings.FindByID(ctx, bookingID)
}

func (s *Store) CreateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	return s.Bookings.Create(ctx, userID, roomID)
}

func (s *Store) UpdateBookingRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	return s.Bookings.UpdateRoom(ctx, bookingID, roomID)
}

func (s *Store) FindRoomWithOccupancy(ctx context.Context, roomID uint64) (*model.RoomOccupancy, error) {
	return s.Rooms.GetWithOccupancy(ctx, roomID)
}

func (s *Store) FindTicketWithType(ctx context.Context, userID uint64) (*model.EnrollmentTicket, error) {
	return s.Tickets.FindWithTypeByUser(ctx, userID)
}
