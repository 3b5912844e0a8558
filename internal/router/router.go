// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth and need no existing
// session; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ATTENDEE", "STAFF"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated hotel browse
// endpoints.  The cache middleware (a no-op when Redis is down) is
// applied per route so only these GETs are cached.
func RegisterPublic(e *echo.Echo, h *handler.HotelHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/hotels", h.ListHotels, cache)
	e.GET("/v1/hotels/:id/rooms", h.ListHotelRooms, cache)
}
