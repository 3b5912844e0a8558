package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/config"
	"github.com/iliyamo/event-hotel-booking/internal/database"
	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
	"github.com/iliyamo/event-hotel-booking/internal/router"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

func main() {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	store := repository.NewStore(db)

	bookings := service.NewBookingService(store)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewHotelHandler(hotelRepo, store.Rooms), cacheMW)
	router.RegisterBooking(e, handler.NewBookingHandler(bookings), cfg.JWTSecret)

	// Background consumer records booking activity to logs/booking.log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
