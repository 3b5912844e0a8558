package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

// memStore is a minimal in-memory store for exercising the handlers
// through a real BookingService.
type memStore struct {
	tickets  map[uint64]*model.EnrollmentTicket
	rooms    map[uint64]model.Room
	bookings map[uint64]*model.Booking
	nextID   uint64
}

func newMemStore() *memStore {
	return &memStore{
		tickets:  make(map[uint64]*model.EnrollmentTicket),
		rooms:    make(map[uint64]model.Room),
		bookings: make(map[uint64]*model.Booking),
	}
}

func (m *memStore) eligible(userID uint64) {
	m.tickets[userID] = &model.EnrollmentTicket{
		Ticket:     model.Ticket{Status: model.TicketStatusPaid},
		TicketType: model.TicketType{IncludesHotel: true},
	}
}

func (m *memStore) FindTicketWithType(_ context.Context, userID uint64) (*model.EnrollmentTicket, error) {
	if et, ok := m.tickets[userID]; ok {
		return et, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) FindRoomWithOccupancy(_ context.Context, roomID uint64) (*model.RoomOccupancy, error) {
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var n uint32
	for _, b := range m.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return &model.RoomOccupancy{Room: room, BookingCount: n}, nil
}

func (m *memStore) FindBookingByUser(_ context.Context, userID uint64) (*model.Booking, error) {
	for _, b := range m.bookings {
		if b.UserID == userID {
			out := *b
			room := m.rooms[b.RoomID]
			out.Room = &room
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) FindBookingByID(_ context.Context, bookingID uint64) (*model.Booking, error) {
	if b, ok := m.bookings[bookingID]; ok {
		out := *b
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CreateBooking(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	m.nextID++
	b := &model.Booking{ID: m.nextID, UserID: userID, RoomID: roomID}
	m.bookings[b.ID] = b
	out := *b
	return &out, nil
}

func (m *memStore) UpdateBookingRoom(_ context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.RoomID = roomID
	out := *b
	return &out, nil
}

// newBookingContext builds an echo context carrying an authenticated
// user, the way JWTAuth leaves it (numeric claims as float64).
func newBookingContext(t *testing.T, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(userID))
	return c, rec
}

func newTestHandler(st *memStore) *BookingHandler {
	return NewBookingHandler(service.NewBookingService(st))
}

func TestGetBooking_OK(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	st.rooms[10] = model.Room{ID: 10, HotelID: 1, Name: "101", Capacity: 2}
	st.bookings[5] = &model.Booking{ID: 5, UserID: 1, RoomID: 10}
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodGet, "/v1/booking", "", 1)
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(5), got.ID)
	require.NotNil(t, got.Room)
	assert.Equal(t, uint64(10), got.Room.ID)
}

func TestGetBooking_NoBooking_404(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodGet, "/v1/booking", "", 1)
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBooking_Ineligible_403(t *testing.T) {
	st := newMemStore() // user has no enrollment/ticket
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodGet, "/v1/booking", "", 1)
	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateBooking_OK(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	st.rooms[10] = model.Room{ID: 10, Capacity: 2}
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPost, "/v1/booking", `{"room_id":10}`, 1)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BookingID uint64 `json:"booking_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.BookingID)
}

func TestCreateBooking_MissingRoomID_400(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPost, "/v1/booking", `{}`, 1)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_UnknownRoom_404(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPost, "/v1/booking", `{"room_id":999}`, 1)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBooking_FullRoom_403(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	st.rooms[10] = model.Room{ID: 10, Capacity: 1}
	st.bookings[7] = &model.Booking{ID: 7, UserID: 2, RoomID: 10}
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPost, "/v1/booking", `{"room_id":10}`, 1)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateBooking_OK(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	st.rooms[10] = model.Room{ID: 10, Capacity: 1}
	st.rooms[11] = model.Room{ID: 11, Capacity: 1}
	st.bookings[5] = &model.Booking{ID: 5, UserID: 1, RoomID: 10}
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPut, "/v1/booking/5", `{"room_id":11}`, 1)
	c.SetParamNames("bookingId")
	c.SetParamValues("5")
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		BookingID uint64 `json:"booking_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(5), resp.BookingID)
	assert.Equal(t, uint64(11), st.bookings[5].RoomID)
}

func TestUpdateBooking_InvalidID_400(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPut, "/v1/booking/abc", `{"room_id":11}`, 1)
	c.SetParamNames("bookingId")
	c.SetParamValues("abc")
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBooking_ForeignBooking_403(t *testing.T) {
	st := newMemStore()
	st.eligible(1)
	st.rooms[10] = model.Room{ID: 10, Capacity: 1}
	st.rooms[11] = model.Room{ID: 11, Capacity: 1}
	st.bookings[5] = &model.Booking{ID: 5, UserID: 2, RoomID: 10}
	h := newTestHandler(st)

	c, rec := newBookingContext(t, http.MethodPut, "/v1/booking/5", `{"room_id":11}`, 1)
	c.SetParamNames("bookingId")
	c.SetParamValues("5")
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
