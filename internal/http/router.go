// Package httpapi wires the HTTP transport (Gin) to the calendar services,
// middleware, and route handlers. It owns the middleware order, the CORS
// posture, the ops endpoints, and the versioned public API.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-advent-calendar/internal/config"
	"github.com/tbourn/go-advent-calendar/internal/datekit"
	"github.com/tbourn/go-advent-calendar/internal/docs"
	"github.com/tbourn/go-advent-calendar/internal/http/handlers"
	"github.com/tbourn/go-advent-calendar/internal/http/middleware"
	"github.com/tbourn/go-advent-calendar/internal/repo"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// maxBodyBytes caps request bodies. Article documents are at most 512KiB.
const maxBodyBytes = 1 << 20

// calendarFactsShim adapts the repository free functions to the
// services.CalendarFacts interface expected by the CalendarService.
type calendarFactsShim struct{}

// ListDeclarationDates proxies repo.ListDeclarationDates.
func (calendarFactsShim) ListDeclarationDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	return repo.ListDeclarationDates(ctx, db, from, to)
}

// ListPublishedDates proxies repo.ListPublishedDates.
func (calendarFactsShim) ListPublishedDates(ctx context.Context, db *gorm.DB, from, to string) ([]string, error) {
	return repo.ListPublishedDates(ctx, db, from, to)
}

// ListUserDeclarationDates proxies repo.ListUserDeclarationDates.
func (calendarFactsShim) ListUserDeclarationDates(ctx context.Context, db *gorm.DB, userID, from, to string) ([]string, error) {
	return repo.ListUserDeclarationDates(ctx, db, userID, from, to)
}

// ListUserArticleStatuses proxies repo.ListUserArticleStatuses.
func (calendarFactsShim) ListUserArticleStatuses(ctx context.Context, db *gorm.DB, userID, from, to string) ([]repo.DateStatus, error) {
	return repo.ListUserArticleStatuses(ctx, db, userID, from, to)
}

// CalendarStats proxies repo.CalendarStats.
func (calendarFactsShim) CalendarStats(ctx context.Context, db *gorm.DB, from, to string) (repo.WindowStats, error) {
	return repo.CalendarStats(ctx, db, from, to)
}

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip (optional)
//  8. CORS and security headers
//
// Identity is resolved per route: OptionalAuth on reads that show viewer
// flags, RequireAuth on writes and /me.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) error {
	classifier, err := datekit.LoadClassifier(cfg.Calendar.TimeZone)
	if err != nil {
		return fmt.Errorf("calendar time zone: %w", err)
	}
	window := cfg.Calendar.Window()

	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(middleware.Metrics())
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
		Cache:        middleware.CachePrivateRevalidate,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Ops
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	h := handlers.New(handlers.Deps{
		Calendar:     services.NewCalendarService(db, calendarFactsShim{}, window),
		Declarations: &services.DeclarationService{DB: db, Window: window},
		Articles:     &services.ArticleService{DB: db, Window: window},
		Reactions:    &services.ReactionService{DB: db},
		Profiles:     &services.ProfileService{DB: db},
		Pickup:       &services.PickupService{DB: db},
		Classifier:   classifier,
		Locale:       cfg.Calendar.Locale(),
		PickupLimit:  cfg.Calendar.PickupLimit,
	})

	auth := middleware.NewAuthenticator(middleware.AuthOptions{
		Secret:    []byte(cfg.Auth.JWTSecret),
		Issuer:    cfg.Auth.JWTIssuer,
		DevHeader: cfg.Auth.DevHeader,
		Leeway:    30 * time.Second,
	})
	optional := middleware.OptionalAuth(auth)
	required := middleware.RequireAuth(auth)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Calendar
		api.GET("/calendar", optional, h.GetCalendar)
		api.GET("/calendar/:date/articles", h.ListDayArticles)
		api.GET("/dates/:date", h.GetDate)

		// Declarations
		api.POST("/declarations", required, h.CreateDeclaration)
		api.GET("/declarations/:date", optional, h.GetDeclaration)

		// Articles
		api.PUT("/articles/draft", required, h.SaveDraft)
		api.PUT("/articles/publish", required, h.PublishArticle)
		api.GET("/articles/:id", optional, h.GetArticle)

		// Reactions
		api.POST("/articles/:id/reactions", required, h.ToggleReaction)
		api.GET("/articles/:id/reactions", optional, h.GetReactions)

		// Profiles
		api.POST("/profiles", required, h.CreateProfile)
		api.GET("/me", required, h.GetMe)
		api.GET("/me/articles/:date", required, h.GetMyArticle)

		// Landing page
		api.GET("/pickup", h.Pickup)
	}
	return nil
}

// corsMiddleware allows every origin when none are configured and the
// allowlist otherwise. Credentials travel in the Authorization header, so
// cookies are never allowed.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.DevUserHeader},
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}

// limitBody caps the request body at maxBytes; larger bodies fail to bind.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
