package model

import "time"

// Booking associates one user with one hotel room for the duration of
// the event.  A user holds at most one booking at any time; the
// booking service enforces that rule, not the database.  Bookings are
// never deleted, only moved between rooms.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who owns the booking.
//  RoomID    – room currently assigned to the booking.
//  Room      – snapshot of the assigned room, populated by lookups
//              that join the rooms table (nil otherwise).
//  CreatedAt – creation timestamp.
//  UpdatedAt – timestamp of the last room reassignment.
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	UserID    uint64    `json:"user_id"`    // bookings.user_id
	RoomID    uint64    `json:"room_id"`    // bookings.room_id
	Room      *Room     `json:"room,omitempty"`
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
	UpdatedAt time.Time `json:"updated_at"` // bookings.updated_at
}

// RoomOccupancy pairs a room with the number of bookings currently
// assigned to it.  The room is considered full when the booking count
// has reached its capacity.
type RoomOccupancy struct {
	Room         Room   `json:"room"`
	BookingCount uint32 `json:"booking_count"`
}

// Full reports whether the room has no free capacity left.  A room at
// exactly its capacity is full, and a room with capacity zero can
// never accept a booking.
func (o RoomOccupancy) Full() bool {
	return o.Room.Capacity <= o.BookingCount
}
