package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studyrooms/internal/config"
	"studyrooms/internal/database"
	"studyrooms/internal/middleware"
	"studyrooms/internal/modules/auth"
	"studyrooms/internal/modules/booking"
	"studyrooms/internal/modules/catalog"
	"studyrooms/internal/modules/hours"
	"studyrooms/internal/modules/notify"
	jwtsvc "studyrooms/internal/pkg/jwt"
	"studyrooms/internal/repository"
)

func main() {
	// .env is optional, env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	hoursRepo := repository.NewOpeningHoursRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	hoursService := hours.NewService(hoursRepo, cfg.Location)
	hoursHandler := hours.NewHandler(hoursService)

	hub := notify.NewHub()
	defer hub.Close()
	notifyService := notify.NewService(hub)
	notifyHandler := notify.NewHandler(hub)

	policy := booking.Policy{
		MaxDurationMinutes:     cfg.MaxDurationMinutes,
		MaxActiveBookings:      cfg.MaxActiveBookings,
		MaxAdvanceDays:         cfg.MaxAdvanceDays,
		SlotGranularityMinutes: cfg.SlotGranularityMinutes,
	}
	bookingService := booking.NewService(bookingRepo, roomRepo, hoursService, notifyService, policy, cfg.Location)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		hoursHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			notifyHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("event=server_start addr=%s env=%s", cfg.Addr, cfg.AppEnv)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
