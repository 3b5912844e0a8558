package model

import "time"

// Hotel is a venue offering rooms for the event.  Hotels and rooms
// are provisioned out of band; this service only reads them.
type Hotel struct {
	ID        uint64    `json:"id"`    // hotels.id
	Name      string    `json:"name"`  // hotels.name
	Image     *string   `json:"image,omitempty"` // hotels.image (nullable URL)
	CreatedAt time.Time `json:"-"`     // hotels.created_at
	UpdatedAt time.Time `json:"-"`     // hotels.updated_at
}

// Room is a bookable unit inside a hotel.  Capacity is the fixed
// number of guests the room holds; occupancy is derived from the
// bookings table, never stored on the row itself.
type Room struct {
	ID        uint64    `json:"id"`       // rooms.id
	HotelID   uint64    `json:"hotel_id"` // rooms.hotel_id
	Name      string    `json:"name"`     // rooms.name
	Capacity  uint32    `json:"capacity"` // rooms.capacity
	CreatedAt time.Time `json:"-"`        // rooms.created_at
	UpdatedAt time.Time `json:"-"`        // rooms.updated_at
}
