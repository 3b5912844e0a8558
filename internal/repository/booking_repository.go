package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  The capacity-guarded
// writes (Create, UpdateRoom) run inside a transaction that locks the
// target room row before counting its bookings, so two concurrent
// requests cannot both take the last free slot.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// FindByUser returns the user's current booking together with a
// snapshot of its room.  ErrNotFound is returned when the user has no
// booking.
func (r *BookingRepo) FindByUser(ctx context.Context, userID uint64) (*model.Booking, error) {
	const q = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
	                  rm.id, rm.hotel_id, rm.name, rm.capacity
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           WHERE b.user_id = ?`
	var b model.Booking
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
		&rm.ID, &rm.HotelID, &rm.Name, &rm.Capacity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.Room = &rm
	return &b, nil
}

// FindByID returns a booking by its primary key, without the room
// snapshot.  ErrNotFound is returned when no such booking exists.
func (r *BookingRepo) FindByID(ctx context.Context, bookingID uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking for the user in the given room.  The room
// row is locked and its occupancy re-counted inside the transaction;
// if the room filled up since the caller's capacity check the insert
// is abandoned and ErrForbidden is returned.  ErrNotFound is returned
// when the room vanished.
func (r *BookingRepo) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := checkCapacityTx(ctx, tx, roomID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`, userID, roomID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Read back the row so the caller gets DB-assigned timestamps.
	var b model.Booking
	const sel = `SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, uint64(id)).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// UpdateRoom moves an existing booking to another room under the same
// capacity guard as Create.  It returns the updated booking, or
// ErrForbidden when the target room is full, or ErrNotFound when the
// room or the booking does not exist.
func (r *BookingRepo) UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := checkCapacityTx(ctx, tx, roomID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE bookings SET room_id = ? WHERE id = ?`, roomID, bookingID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	var b model.Booking
	const sel = `SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, bookingID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &b, nil
}

// checkCapacityTx locks the room row, counts its bookings and fails
// when the room is missing (ErrNotFound) or already at capacity
// (ErrForbidden).  Must run inside the transaction that performs the
// subsequent write.
func checkCapacityTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	var capacity uint32
	err := tx.QueryRowContext(ctx, `SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	var count uint32
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&count); err != nil {
		return err
	}
	if capacity <= count {
		return ErrForbidden
	}
	return nil
}
