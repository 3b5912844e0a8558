package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// HotelHandler serves the public hotel browse endpoints.  Attendees
// (and guests) can inspect hotels and room occupancy before booking;
// responses are cached by the Redis middleware registered on these
// routes.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
}

// NewHotelHandler constructs a HotelHandler.  Both repositories must be non-nil.
func NewHotelHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo) *HotelHandler {
	if hotels == nil || rooms == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Rooms: rooms}
}

// ListHotels handles GET /v1/hotels.
func (h *HotelHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, hotels)
}

// ListHotelRooms handles GET /v1/hotels/:id/rooms.  It returns the
// hotel's rooms together with their current occupancy so clients can
// grey out full rooms before attempting a booking.
func (h *HotelHandler) ListHotelRooms(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rooms, err := h.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hotel": hotel,
		"rooms": rooms,
	})
}
