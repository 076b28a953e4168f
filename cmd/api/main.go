package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"clubfloor/internal/config"
	"clubfloor/internal/database"
	"clubfloor/internal/middleware"
	"clubfloor/internal/modules/accrual"
	"clubfloor/internal/modules/auth"
	"clubfloor/internal/modules/billing"
	"clubfloor/internal/modules/engagement"
	"clubfloor/internal/modules/floor"
	"clubfloor/internal/modules/floorfeed"
	"clubfloor/internal/modules/masterdata"
	"clubfloor/internal/modules/order"
	"clubfloor/internal/modules/reservation"
	jwtsvc "clubfloor/internal/pkg/jwt"
	"clubfloor/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	sessionRepo := repository.NewSessionRepository(db)
	guestLinkRepo := repository.NewSessionGuestRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pricingRepo := repository.NewPricingPolicyRepository(db)
	settingsRepo := repository.NewBillSettingsRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	tableRepo := repository.NewTableRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	castRepo := repository.NewCastRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	userRepo := repository.NewUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := floorfeed.NewHub()

	authService := auth.NewService(userRepo, j)
	billingService := billing.NewService(sessionRepo, settingsRepo)
	accrualService := accrual.NewService(db, sessionRepo, hub)
	engagementService := engagement.NewService(db, pricingRepo, hub)
	floorService := floor.NewService(sessionRepo, guestLinkRepo, orderRepo, pricingRepo, billingService, hub)
	orderService := order.NewService(orderRepo, menuRepo, sessionRepo, hub)
	reservationService := reservation.NewService(reservationRepo, floorService)
	masterdataService := masterdata.NewService(venueRepo, tableRepo, guestRepo, castRepo, menuRepo, pricingRepo, settingsRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		auth.NewHandler(authService, j).RegisterRoutes(v1)
		floorfeed.NewHandler(hub, j).RegisterRoutes(v1)

		// staff endpoints
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			floor.NewHandler(floorService).RegisterRoutes(protected)
			order.NewHandler(orderService).RegisterRoutes(protected)
			reservation.NewHandler(reservationService).RegisterRoutes(protected)
			engagement.NewHandler(engagementService).RegisterRoutes(protected)
			billing.NewHandler(billingService).RegisterRoutes(protected)
			accrual.NewHandler(accrualService).RegisterRoutes(protected)
		}

		// admin-only master data
		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			masterdata.NewHandler(masterdataService).RegisterRoutes(admin)
		}
	}

	if cfg.AccrualEnabled {
		go runAccrualLoop(accrualService, cfg.AccrualInterval)
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func runAccrualLoop(service *accrual.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for now := range ticker.C {
		report, err := service.RunPass(context.Background(), now)
		if err != nil {
			log.Printf("accrual_pass_error error=%q", err)
			continue
		}
		if len(report.Results) > 0 || report.Failed > 0 {
			log.Printf("accrual_pass processed=%d skipped=%d failed=%d inserted=%d",
				report.Processed, report.Skipped, report.Failed, len(report.Results))
		}
	}
}
