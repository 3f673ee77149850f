package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/auth"
	"github.com/stockline/stockline/internal/httputil"
	"github.com/stockline/stockline/internal/middleware"
	"github.com/stockline/stockline/internal/security"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	DB          Pinger
	Chat        ChatService
	Audit       AuditRepository
	Stats       StatsRepository
	Resolver    auth.Resolver
	CORSOrigins []string // empty or ["*"] allows every origin
	Health      HealthInfo
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 20      // requests per second per IP
	rateBurst   = 40      // token bucket burst size
)

// corsAllowHeaders are the request headers browsers may send.
var corsAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

func allowsAllOrigins(origins []string) bool {
	return len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     corsAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}

	if allowsAllOrigins(origins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cfg
}

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	if allowsAllOrigins(deps.CORSOrigins) {
		r.Use(wildcardCORS())
	}
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))
	r.Use(preflight())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.HTTPMetrics())
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.DB, log, deps.Health)
	chat := NewChatHandler(deps.Chat, log)
	audit := NewAuditHandler(deps.Audit, log)
	stats := NewStatsHandler(deps.Stats, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	bfGuard := security.NewBruteForceGuard(ctx, log, security.DefaultGuardConfig())
	resolver := middleware.NewCachedResolver(ctx, deps.Resolver)
	authn := []gin.HandlerFunc{
		middleware.BruteForceMiddleware(bfGuard),
		middleware.AuthMiddleware(resolver, log, bfGuard),
	}

	// Chat failures, including authentication, use the chat envelope.
	chatGroup := api.Group("/chat", append([]gin.HandlerFunc{httputil.UseChatEnvelope()}, authn...)...)
	chatGroup.POST("", chat.Chat)

	authed := api.Group("", authn...)

	// Audit.
	authed.GET("/audit", audit.Query)

	// Stats.
	authed.GET("/stats", stats.GetStats)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
