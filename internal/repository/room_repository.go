package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// RoomRepo encapsulates read-only queries against rooms.  Rooms are
// provisioned by the hotel management tooling; this service only
// needs them for capacity decisions and browsing.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// GetWithOccupancy fetches a room together with the number of
// bookings currently assigned to it.  ErrNotFound is returned when
// the room does not exist.  The count is taken outside any
// transaction; callers that mutate bookings rely on the repository's
// transactional re-check, not on this snapshot.
func (r *RoomRepo) GetWithOccupancy(ctx context.Context, roomID uint64) (*model.RoomOccupancy, error) {
	const q = `SELECT rm.id, rm.hotel_id, rm.name, rm.capacity,
	                  (SELECT COUNT(*) FROM bookings b WHERE b.room_id = rm.id)
	           FROM rooms rm
	           WHERE rm.id = ?`
	var occ model.RoomOccupancy
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(
		&occ.Room.ID, &occ.Room.HotelID, &occ.Room.Name, &occ.Room.Capacity, &occ.BookingCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &occ, nil
}

// ListByHotel returns all rooms of a hotel with their occupancy,
// ordered by name for deterministic output.  An empty slice is
// returned when the hotel has no rooms.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.RoomOccupancy, error) {
	const q = `SELECT rm.id, rm.hotel_id, rm.name, rm.capacity,
	                  (SELECT COUNT(*) FROM bookings b WHERE b.room_id = rm.id)
	           FROM rooms rm
	           WHERE rm.hotel_id = ?
	           ORDER BY rm.name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RoomOccupancy, 0)
	for rows.Next() {
		var occ model.RoomOccupancy
		if err := rows.Scan(
			&occ.Room.ID, &occ.Room.HotelID, &occ.Room.Name, &occ.Room.Capacity, &occ.BookingCount,
		); err != nil {
			return nil, err
		}
		out = append(out, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
