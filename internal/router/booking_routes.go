package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
)

// RegisterBooking registers the attendee booking endpoints under /v1.
// All routes require a valid JWT with the ATTENDEE role; eligibility
// beyond that (paid in-person ticket with hotel) is the booking
// service's decision, not the router's.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ATTENDEE"),
	)
	g.GET("/booking", h.GetBooking)
	g.POST("/booking", h.CreateBooking)
	g.PUT("/booking/:bookingId", h.UpdateBooking)
}
