// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records booking activity.
package queue

// Actions recorded on the booking.activity queue.
const (
	ActionCreated = "created" // a new booking was made
	ActionMoved   = "moved"   // an existing booking changed rooms
)

// BookingActivityEvent is published whenever a booking is created or
// moved to another room. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingActivityEvent struct {
	Action     string `json:"action"` // created | moved
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	RoomName   string `json:"room_name,omitempty"`
	HotelID    uint64 `json:"hotel_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
