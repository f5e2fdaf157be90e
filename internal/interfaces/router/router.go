package router

import (
	"time"

	lifesvc "isoko-backend/internal/application/lifecycle"
	listsvc "isoko-backend/internal/application/listings"
	refsvc "isoko-backend/internal/application/referrals"
	wantedsvc "isoko-backend/internal/application/wanted"
	"isoko-backend/internal/config"
	"isoko-backend/internal/infrastructure/database"
	healthhandler "isoko-backend/internal/interfaces/handlers/health"
	listhandler "isoko-backend/internal/interfaces/handlers/listings"
	orderhandler "isoko-backend/internal/interfaces/handlers/orders"
	refhandler "isoko-backend/internal/interfaces/handlers/referrals"
	reshandler "isoko-backend/internal/interfaces/handlers/reservations"
	wantedhandler "isoko-backend/internal/interfaces/handlers/wanted"
	"isoko-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, plus the DB and Redis handles the entrypoint needs for
// startup pings and job wiring.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	listingCache := listsvc.NewCache(rdb, time.Duration(cfg.ListingCacheTTLSec)*time.Second)
	lifecycleService := &lifesvc.Service{DB: db, Cache: listingCache}
	orderHandlers := &orderhandler.Handlers{Service: lifecycleService}

	// Payment webhook mounted before the request-scoped middleware: gateway
	// calls carry no frontend origin or trace context.
	app.Post("/api/v1/orders/payment-webhook", orderHandlers.PaymentWebhook)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{Rdb: rdb, DB: db}
	app.Get("/health/json", hh.JSON)

	wantedService := wantedsvc.NewService(db)
	listingsService := &listsvc.Service{
		DB:           db,
		Cache:        listingCache,
		Matcher:      wantedService,
		LifespanDays: cfg.ListingLifespanDays,
	}
	referralsService := &refsvc.Service{DB: db, ShareBaseURL: cfg.ShareBaseURL}

	listingHandlers := &listhandler.Handlers{Service: listingsService}
	listingsGroup := app.Group("/api/v1/listings")
	listingsGroup.Post("/", listingHandlers.CreateListing)
	listingsGroup.Get("/:listing_id", listingHandlers.GetListing)

	reservationHandlers := &reshandler.Handlers{Service: lifecycleService}
	reservationsGroup := app.Group("/api/v1/reservations")
	reservationsGroup.Post("/", reservationHandlers.CreateReservation)
	reservationsGroup.Put("/:reservation_id/status", reservationHandlers.UpdateReservationStatus)

	ordersGroup := app.Group("/api/v1/orders")
	ordersGroup.Post("/", orderHandlers.CreateOrder)
	ordersGroup.Put("/:order_id/delivery", orderHandlers.UpdateDeliveryStatus)
	ordersGroup.Post("/:order_id/confirm-receipt", orderHandlers.ConfirmReceipt)

	referralHandlers := &refhandler.Handlers{Service: referralsService}
	referralsGroup := app.Group("/api/v1/referrals")
	referralsGroup.Post("/", referralHandlers.CreateReferral)
	referralsGroup.Post("/track", referralHandlers.TrackClick)
	app.Post("/api/v1/sales/confirm", referralHandlers.ConfirmSale)

	wantedHandlers := &wantedhandler.Handlers{Service: wantedService}
	app.Post("/api/v1/wanted/reveal-contact", wantedHandlers.RevealContact)

	return app, db, rdb, nil
}
