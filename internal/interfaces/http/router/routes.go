package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/madadgar/backend/internal/infrastructure/auth"
	"github.com/madadgar/backend/internal/infrastructure/logger"
	"github.com/madadgar/backend/internal/infrastructure/telemetry"
	"github.com/madadgar/backend/internal/interfaces/http/handler"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the API exposes
type Handlers struct {
	System     *handler.SystemHandler
	Fundraiser *handler.FundraiserHandler
	Payout     *handler.PayoutHandler
	Donation   *handler.DonationHandler
	Discovery  *handler.DiscoveryHandler
	Media      *handler.MediaHandler
}

// Config carries everything Setup needs to assemble the engine
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	MeterProvider  *telemetry.MeterProvider
	Logger         *zap.Logger
	TracingEnabled bool
	// CORS overrides the default cross-origin policy when set
	CORS *middleware.CORSConfig
	// MaxBodyBytes bounds request bodies; zero means 1 MiB
	MaxBodyBytes int64
	// DonationRateLimit bounds public donation submissions per IP per
	// minute; zero means 30
	DonationRateLimit int
}

// Setup assembles the full middleware chain and route table on the engine
func Setup(engine *gin.Engine, cfg Config) {
	maxBody := cfg.MaxBodyBytes
	if maxBody == 0 {
		maxBody = 1 << 20
	}
	donationLimit := cfg.DonationRateLimit
	if donationLimit == 0 {
		donationLimit = 30
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	if cfg.CORS != nil {
		engine.Use(middleware.CORSWithConfig(*cfg.CORS))
	} else {
		engine.Use(middleware.CORS())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(maxBody))
	if cfg.Logger != nil {
		engine.Use(logger.GinMiddleware(cfg.Logger))
		engine.Use(logger.Recovery(cfg.Logger))
	} else {
		engine.Use(gin.Recovery())
	}
	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.SpanErrorMarker())
	}
	if cfg.MeterProvider != nil {
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: cfg.MeterProvider,
			ServiceName:   "madadgar-backend",
			Enabled:       true,
		}))
	}

	engine.GET("/health", cfg.Handlers.System.Health)
	engine.GET("/healthz", cfg.Handlers.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(publicRoutes(cfg, donationLimit))
	r.Register(authenticatedRoutes(cfg))
	r.Setup()
}

// publicRoutes serves unauthenticated discovery and donation intake.
// Donations accept an optional bearer token for attribution.
func publicRoutes(cfg Config, donationLimit int) *DomainGroup {
	h := cfg.Handlers

	public := NewDomainGroup("public", "/public")
	if cfg.JWTService != nil {
		public.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTService))
	}
	if cfg.TracingEnabled {
		public.Use(middleware.TracingAttributeInjector())
	}

	public.GET("/fundraisers", h.Discovery.Discover)
	public.GET("/fundraisers/featured", h.Discovery.ListFeatured)
	public.GET("/fundraisers/:id", h.Discovery.GetPublicDetail)
	public.GET("/categories", h.Discovery.Categories)

	donations := public.Group("donations", "")
	donations.Use(middleware.DonationRateLimit(middleware.NewRateLimiter(donationLimit, time.Minute)))
	donations.POST("/fundraisers/:id/donations", h.Donation.Submit)

	return public
}

// authenticatedRoutes serves everything behind a bearer token
func authenticatedRoutes(cfg Config) *DomainGroup {
	h := cfg.Handlers

	authed := NewDomainGroup("authenticated", "")
	if cfg.JWTService != nil {
		jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
		jwtCfg.TokenBlacklist = cfg.TokenBlacklist
		jwtCfg.Logger = cfg.Logger
		authed.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	}
	if cfg.TracingEnabled {
		authed.Use(middleware.TracingAttributeInjector())
	}

	authed.GET("/system/info", h.System.GetSystemInfo)
	authed.GET("/dashboard", h.Fundraiser.Dashboard)
	authed.GET("/balance", h.Donation.Balance)
	authed.GET("/donations/mine", h.Donation.ListMine)

	fundraisers := authed.Group("fundraisers", "/fundraisers")
	fundraisers.POST("", h.Fundraiser.CreateDraft)
	fundraisers.GET("", h.Fundraiser.List)
	fundraisers.GET("/:id", h.Fundraiser.Get)
	fundraisers.PUT("/:id", h.Fundraiser.UpdateBasics)
	fundraisers.PUT("/:id/start-details", h.Fundraiser.SetStartDetails)
	fundraisers.PUT("/:id/cover", h.Fundraiser.SetCoverImage)
	fundraisers.POST("/:id/cover-upload-url", h.Media.RequestCoverUploadURL)
	fundraisers.POST("/:id/documents", h.Fundraiser.AddDocument)
	fundraisers.POST("/:id/document-upload-url", h.Media.RequestDocumentUploadURL)
	fundraisers.DELETE("/:id/documents/:documentId", h.Fundraiser.RemoveDocument)
	fundraisers.GET("/:id/payout-config", h.Payout.Get)
	fundraisers.PUT("/:id/payout-config", h.Payout.Save)
	fundraisers.POST("/:id/publish", h.Fundraiser.Publish)
	fundraisers.POST("/:id/close", h.Fundraiser.Close)
	fundraisers.PUT("/:id/linked-fundraiser", h.Fundraiser.SetLinkedFundraiser)

	return authed
}
