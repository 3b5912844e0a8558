package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// fakeStore is an in-memory Store implementation with the same error
// semantics as the MySQL repositories: absence maps to ErrNotFound
// and the write methods re-check room capacity under a lock.
type fakeStore struct {
	mu       sync.Mutex
	tickets  map[uint64]*model.EnrollmentTicket // by user ID
	rooms    map[uint64]model.Room
	bookings map[uint64]*model.Booking // by booking ID
	nextID   uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets:  make(map[uint64]*model.EnrollmentTicket),
		rooms:    make(map[uint64]model.Room),
		bookings: make(map[uint64]*model.Booking),
	}
}

func (f *fakeStore) addRoom(id uint64, capacity uint32) {
	f.rooms[id] = model.Room{ID: id, HotelID: 1, Name: "room", Capacity: capacity}
}

// addUser registers a ticket bundle for a user. Pass status/flags to
// shape the eligibility outcome.
func (f *fakeStore) addUser(userID uint64, status string, includesHotel, isRemote bool) {
	f.tickets[userID] = &model.EnrollmentTicket{
		EnrollmentID: userID,
		Ticket:       model.Ticket{ID: userID, EnrollmentID: userID, Status: status},
		TicketType:   model.TicketType{ID: 1, Name: "type", IncludesHotel: includesHotel, IsRemote: isRemote},
	}
}

func (f *fakeStore) addEligibleUser(userID uint64) {
	f.addUser(userID, model.TicketStatusPaid, true, false)
}

func (f *fakeStore) FindTicketWithType(_ context.Context, userID uint64) (*model.EnrollmentTicket, error) {
	et, ok := f.tickets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return et, nil
}

func (f *fakeStore) FindRoomWithOccupancy(_ context.Context, roomID uint64) (*model.RoomOccupancy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.RoomOccupancy{Room: room, BookingCount: f.countLocked(roomID)}, nil
}

func (f *fakeStore) FindBookingByUser(_ context.Context, userID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == userID {
			out := *b
			room := f.rooms[b.RoomID]
			out.Room = &room
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindBookingByID(_ context.Context, bookingID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (f *fakeStore) CreateBooking(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkCapacityLocked(roomID); err != nil {
		return nil, err
	}
	f.nextID++
	b := &model.Booking{
		ID: f.nextID, UserID: userID, RoomID: roomID,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	f.bookings[b.ID] = b
	out := *b
	return &out, nil
}

func (f *fakeStore) UpdateBookingRoom(_ context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkCapacityLocked(roomID); err != nil {
		return nil, err
	}
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.RoomID = roomID
	b.UpdatedAt = time.Now().UTC()
	out := *b
	return &out, nil
}

func (f *fakeStore) countLocked(roomID uint64) uint32 {
	var n uint32
	for _, b := range f.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n
}

func (f *fakeStore) checkCapacityLocked(roomID uint64) error {
	room, ok := f.rooms[roomID]
	if !ok {
		return repository.ErrNotFound
	}
	if room.Capacity <= f.countLocked(roomID) {
		return repository.ErrForbidden
	}
	return nil
}

func TestGetBooking_ReturnsBookingWithRoom(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 2)
	svc := NewBookingService(st)

	created, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	got, err := svc.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Room)
	assert.Equal(t, uint64(10), got.Room.ID)
}

func TestGetBooking_IsIdempotent(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 2)
	svc := NewBookingService(st)

	_, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	first, err := svc.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.RoomID, second.RoomID)
}

func TestGetBooking_NoBooking_NotFound(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	svc := NewBookingService(st)

	_, err := svc.GetBooking(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// All eligibility failures must collapse into the same forbidden
// error across every operation.
func TestEligibility_UniformDenial(t *testing.T) {
	cases := []struct {
		name  string
		setup func(st *fakeStore)
	}{
		{"no enrollment or ticket", func(st *fakeStore) {}},
		{"unpaid ticket", func(st *fakeStore) {
			st.addUser(1, model.TicketStatusReserved, true, false)
		}},
		{"ticket without hotel", func(st *fakeStore) {
			st.addUser(1, model.TicketStatusPaid, false, false)
		}},
		{"remote paid ticket", func(st *fakeStore) {
			st.addUser(1, model.TicketStatusPaid, true, true)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := newFakeStore()
			st.addRoom(10, 5)
			tc.setup(st)
			svc := NewBookingService(st)

			_, err := svc.GetBooking(context.Background(), 1)
			assert.ErrorIs(t, err, repository.ErrForbidden)

			_, err = svc.CreateBooking(context.Background(), 1, 10)
			assert.ErrorIs(t, err, repository.ErrForbidden)

			_, err = svc.UpdateBooking(context.Background(), 1, 10, 1)
			assert.ErrorIs(t, err, repository.ErrForbidden)
		})
	}
}

func TestCreateBooking_RoomMissing_NotFound(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	svc := NewBookingService(st)

	_, err := svc.CreateBooking(context.Background(), 1, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateBooking_SecondCreateForbidden(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 5)
	st.addRoom(11, 5)
	svc := NewBookingService(st)

	_, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	// a second create must fail regardless of target room
	_, err = svc.CreateBooking(context.Background(), 1, 10)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	_, err = svc.CreateBooking(context.Background(), 1, 11)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestCreateBooking_CapacityBoundary(t *testing.T) {
	const capacity = 3
	st := newFakeStore()
	st.addRoom(10, capacity)
	svc := NewBookingService(st)

	// the capacity-th booking succeeds, the next one is rejected
	for user := uint64(1); user <= capacity; user++ {
		st.addEligibleUser(user)
		_, err := svc.CreateBooking(context.Background(), user, 10)
		require.NoError(t, err, "booking %d of %d should fit", user, capacity)
	}
	st.addEligibleUser(capacity + 1)
	_, err := svc.CreateBooking(context.Background(), capacity+1, 10)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestCreateBooking_ZeroCapacityAlwaysFull(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 0)
	svc := NewBookingService(st)

	_, err := svc.CreateBooking(context.Background(), 1, 10)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestUpdateBooking_NoOpMove_Forbidden(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 2)
	svc := NewBookingService(st)

	b, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = svc.UpdateBooking(context.Background(), 1, 10, b.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestUpdateBooking_OwnershipMismatch_Forbidden(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addEligibleUser(2)
	st.addRoom(10, 2)
	st.addRoom(11, 2)
	svc := NewBookingService(st)

	b, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	// user 2 may not move user 1's booking even to a valid room
	_, err = svc.UpdateBooking(context.Background(), 2, 11, b.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestUpdateBooking_MissingBooking_Forbidden(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 2)
	svc := NewBookingService(st)

	_, err := svc.UpdateBooking(context.Background(), 1, 10, 999)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestUpdateBooking_TargetRoomMissing_NotFound(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 2)
	svc := NewBookingService(st)

	b, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = svc.UpdateBooking(context.Background(), 1, 999, b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateBooking_TargetFull_Forbidden(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addEligibleUser(2)
	st.addRoom(10, 2)
	st.addRoom(11, 1)
	svc := NewBookingService(st)

	_, err := svc.CreateBooking(context.Background(), 2, 11)
	require.NoError(t, err)
	b, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = svc.UpdateBooking(context.Background(), 1, 11, b.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestUpdateBooking_MoveKeepsBookingID(t *testing.T) {
	st := newFakeStore()
	st.addEligibleUser(1)
	st.addRoom(10, 1)
	st.addRoom(11, 1)
	svc := NewBookingService(st)

	created, err := svc.CreateBooking(context.Background(), 1, 10)
	require.NoError(t, err)

	moved, err := svc.UpdateBooking(context.Background(), 1, 11, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, moved.ID)
	assert.Equal(t, uint64(11), moved.RoomID)

	got, err := svc.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), got.RoomID)
}
