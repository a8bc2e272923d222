package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mossyoak/campsite-availability-backend/internal/api"
	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	"github.com/mossyoak/campsite-availability-backend/internal/availability"
	"github.com/mossyoak/campsite-availability-backend/internal/campground"
	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	"github.com/mossyoak/campsite-availability-backend/internal/clock"
	"github.com/mossyoak/campsite-availability-backend/internal/hold"
	"github.com/mossyoak/campsite-availability-backend/internal/reservation"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
	"github.com/mossyoak/campsite-availability-backend/internal/staff"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	HoldTTL          time.Duration
	ClaimLockTimeout time.Duration
	ClaimRetries     int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	clk := clock.NewSystem()

	// Staff Module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo, passwordHasher)

	// Campground Module
	cgRepo := campground.NewPgxRepository(cfg.DBPool)
	cgService := campground.NewService(cgRepo)

	// Site Module
	siteRepo := site.NewPgxRepository(cfg.DBPool)
	siteService := site.NewService(siteRepo, cgService)

	// Occupancy Ledger. Every write that can block a site goes through it.
	ledger := claim.NewPgxLedger(cfg.DBPool, cfg.ClaimLockTimeout)
	resolver := claim.NewResolver(ledger)
	claimService := claim.NewService(ledger, clk, cfg.ClaimRetries)

	// Hold Module
	holdService := hold.NewService(ledger, clk,
		hold.WithDefaultTTL(cfg.HoldTTL),
		hold.WithRetryAttempts(cfg.ClaimRetries),
	)

	// Reservation Module
	reservationService := reservation.NewService(ledger, clk, cfg.ClaimRetries)

	// Availability Module
	availabilityService := availability.NewService(siteRepo, resolver, clk)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		StaffService:        staffService,
		CampgroundService:   cgService,
		SiteService:         siteService,
		ClaimService:        claimService,
		HoldService:         holdService,
		ReservationService:  reservationService,
		AvailabilityService: availabilityService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
