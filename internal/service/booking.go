// Package service implements the booking workflow: the eligibility
// and capacity checks that decide whether a booking may be read,
// created or moved, and the ordering of store calls around them.
// Persistence is reached through the Store interface so tests can
// substitute an in-memory implementation.
package service

import (
	"context"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// Store is the persistence boundary the booking service depends on.
// Lookup methods report absence with repository.ErrNotFound.  The two
// write methods must re-check the target room's capacity atomically
// with the write (the MySQL implementation locks the room row in a
// transaction) and return repository.ErrForbidden when the room
// filled up in the meantime.
type Store interface {
	FindBookingByUser(ctx context.Context, userID uint64) (*model.Booking, error)
	FindBookingByID(ctx context.Context, bookingID uint64) (*model.Booking, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	UpdateBookingRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error)
	FindRoomWithOccupancy(ctx context.Context, roomID uint64) (*model.RoomOccupancy, error)
	FindTicketWithType(ctx context.Context, userID uint64) (*model.EnrollmentTicket, error)
}

// BookingService orchestrates booking reads and mutations for
// authenticated attendees.
type BookingService struct {
	store Store
}

// NewBookingService constructs a BookingService backed by the given store.
func NewBookingService(store Store) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{store: store}
}

// checkEligibility verifies that the user may transact bookings at
// all: they must be enrolled, hold a ticket, the ticket must be paid,
// must include hotel accommodation and must not be for remote
// attendance.  All failures collapse into the same ErrForbidden so
// callers cannot tell which condition failed.
func (s *BookingService) checkEligibility(ctx context.Context, userID uint64) error {
	et, err := s.store.FindTicketWithType(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			// no enrollment or no ticket
			return repository.ErrForbidden
		}
		return err
	}
	if et.Ticket.Status == model.TicketStatusReserved ||
		!et.TicketType.IncludesHotel ||
		et.TicketType.IsRemote {
		return repository.ErrForbidden
	}
	return nil
}

// GetBooking returns the user's current booking with its room
// snapshot.  ErrForbidden when the user is not eligible to book,
// ErrNotFound when no booking exists.
func (s *BookingService) GetBooking(ctx context.Context, userID uint64) (*model.Booking, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.FindBookingByUser(ctx, userID)
}

// CreateBooking reserves a room for the user.  The sequence is:
// eligibility, room existence and capacity, one-booking-per-user
// invariant, then the insert.  ErrNotFound when the room does not
// exist; ErrForbidden for any rule violation.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	occ, err := s.store.FindRoomWithOccupancy(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if occ.Full() {
		return nil, repository.ErrForbidden
	}
	if _, err := s.store.FindBookingByUser(ctx, userID); err == nil {
		// the user already holds a booking
		return nil, repository.ErrForbidden
	} else if err != repository.ErrNotFound {
		return nil, err
	}
	return s.store.CreateBooking(ctx, userID, roomID)
}

// UpdateBooking moves an existing booking to a different room.
// ErrForbidden when the booking is missing, owned by another user or
// the move is a no-op; ErrNotFound when the target room does not
// exist; ErrForbidden again when it is full.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, roomID, bookingID uint64) (*model.Booking, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.store.FindBookingByID(ctx, bookingID)
	if err != nil {
		if err == repository.ErrNotFound {
			// a missing booking is an invalid move request, not a 404
			return nil, repository.ErrForbidden
		}
		return nil, err
	}
	if booking.UserID != userID || booking.RoomID == roomID {
		return nil, repository.ErrForbidden
	}
	occ, err := s.store.FindRoomWithOccupancy(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if occ.Full() {
		return nil, repository.ErrForbidden
	}
	return s.store.UpdateBookingRoom(ctx, bookingID, roomID)
}
