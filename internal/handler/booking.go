package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

// BookingHandler exposes the attendee booking endpoints.  All the
// decision logic lives in the service; the handler binds request
// bodies, maps the two domain error kinds onto HTTP statuses and
// fires the activity event after successful mutations.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.  The service must be non-nil.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

type bookingReq struct {
	RoomID uint64 `json:"room_id"`
}

// GetBooking handles GET /v1/booking.  It returns the caller's
// current booking with its room snapshot, 404 when none exists and
// 403 when the caller is not entitled to book at all.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	booking, err := h.Bookings.GetBooking(c.Request().Context(), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /v1/booking.  The body must carry the
// target room id; on success the new booking id is returned.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	booking, err := h.Bookings.CreateBooking(c.Request().Context(), userID, body.RoomID)
	if err != nil {
		return bookingError(c, err)
	}
	publishActivity(queue.ActionCreated, booking.ID, userID, booking.RoomID)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": booking.ID})
}

// UpdateBooking handles PUT /v1/booking/:bookingId.  It moves the
// caller's booking to another room and returns the booking id.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil || body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	booking, err := h.Bookings.UpdateBooking(c.Request().Context(), userID, body.RoomID, bookingID)
	if err != nil {
		return bookingError(c, err)
	}
	publishActivity(queue.ActionMoved, booking.ID, userID, booking.RoomID)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": booking.ID})
}

// bookingError translates the service's error kinds to HTTP.  Only
// NotFound and Forbidden carry meaning; anything else is a 500.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// publishActivity sends the booking event to the broker in the
// background.  Broker failures only get logged; the booking already
// committed and the response must not depend on the queue.  A fresh
// context is used because the request context dies with the response.
func publishActivity(action string, bookingID, userID, roomID uint64) {
	ev := queue.BookingActivityEvent{
		Action:     action,
		BookingID:  bookingID,
		UserID:     userID,
		RoomID:     roomID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue.PublishBookingActivity(ctx, ev); err != nil {
			log.Printf("booking: publish %s event failed: %v", action, err)
		}
	}()
}
