package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mossyoak/campsite-availability-backend/internal/auth"
	"github.com/mossyoak/campsite-availability-backend/internal/availability"
	availabilityHttp "github.com/mossyoak/campsite-availability-backend/internal/availability/http"
	"github.com/mossyoak/campsite-availability-backend/internal/campground"
	campgroundHttp "github.com/mossyoak/campsite-availability-backend/internal/campground/http"
	"github.com/mossyoak/campsite-availability-backend/internal/claim"
	claimHttp "github.com/mossyoak/campsite-availability-backend/internal/claim/http"
	"github.com/mossyoak/campsite-availability-backend/internal/hold"
	holdHttp "github.com/mossyoak/campsite-availability-backend/internal/hold/http"
	"github.com/mossyoak/campsite-availability-backend/internal/reservation"
	reservationHttp "github.com/mossyoak/campsite-availability-backend/internal/reservation/http"
	"github.com/mossyoak/campsite-availability-backend/internal/site"
	siteHttp "github.com/mossyoak/campsite-availability-backend/internal/site/http"
	"github.com/mossyoak/campsite-availability-backend/internal/staff"
	staffHttp "github.com/mossyoak/campsite-availability-backend/internal/staff/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	StaffService        staff.Service
	CampgroundService   campground.Service
	SiteService         site.Service
	ClaimService        claim.Service
	HoldService         hold.Service
	ReservationService  reservation.Service
	AvailabilityService availability.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated staff member is an admin.
	adminMiddleware := RequireAdmin(cfg.StaffService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	staffHandler := staffHttp.NewHandler(cfg.StaffService, cfg.JWTManager)
	campgroundHandler := campgroundHttp.NewHandler(cfg.CampgroundService)
	siteHandler := siteHttp.NewHandler(cfg.SiteService)
	claimHandler := claimHttp.NewHandler(cfg.ClaimService)
	holdHandler := holdHttp.NewHandler(cfg.HoldService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware, adminMiddleware)
		campgroundHttp.RegisterRoutes(v1, campgroundHandler, authMiddleware, adminMiddleware)
		siteHttp.RegisterRoutes(v1, siteHandler, authMiddleware, adminMiddleware)
		claimHttp.RegisterRoutes(v1, claimHandler, authMiddleware, adminMiddleware)
		holdHttp.RegisterRoutes(v1, holdHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
	}

	return r
}
