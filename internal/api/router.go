package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/examboard/portal-api/internal/api/handler"
	"github.com/examboard/portal-api/internal/api/middleware"
	"github.com/examboard/portal-api/internal/core/domain"
	"github.com/examboard/portal-api/internal/core/ports"
	"github.com/examboard/portal-api/internal/core/service"
	"github.com/examboard/portal-api/internal/core/token"
	mongodb "github.com/examboard/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/examboard/portal-api/internal/infrastructure/db/redis"
	"github.com/examboard/portal-api/internal/infrastructure/queue"
	"github.com/examboard/portal-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered and starts
// the audit dispatcher workers; they stop when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, blobs ports.BlobStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	verifier := token.NewVerifier(cfg.JWTSecret)
	issuer := token.NewIssuer(cfg.JWTSecret, token.Policy{
		AdminTTL: cfg.AdminTokenTTL,
		UserTTL:  cfg.UserTokenTTL,
	})

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.Guard(verifier, middleware.GuardConfig{
		Rules: []middleware.GuardRule{
			{Prefix: "/admin", Surface: middleware.SurfacePage},
			{Prefix: "/api/v1/admin", Surface: middleware.SurfaceAPI},
			{Prefix: "/api/v1/account", Surface: middleware.SurfaceAPI},
			{Prefix: "/api/v1/notices", Surface: middleware.SurfaceAPI},
		},
		CookieName: cfg.AdminCookieName,
		LoginPath:  cfg.LoginPath,
	}))

	// --- Dependencies ---
	principalRepo := mongodb.NewPrincipalRepository(db)
	noticeRepo := mongodb.NewNoticeRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	noticeCache := redisdb.NewNoticeCache(rdb, cfg.NoticeCacheTTL)

	auditService := service.NewAuditService(auditRepo)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(principalRepo, issuer, dispatcher, log)
	accountService := service.NewAccountService(principalRepo, dispatcher)
	noticeService := service.NewNoticeService(noticeRepo, noticeCache, blobs, log)

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   cfg.AdminCookieName,
		MaxAge: cfg.AdminTokenTTL,
	})
	accountHandler := handler.NewAccountHandler(accountService)
	noticeHandler := handler.NewNoticeHandler(noticeService)
	auditHandler := handler.NewAuditHandler(auditRepo)
	pageHandler := handler.NewPageHandler()

	// --- Auth routes (public) ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/logout", authHandler.Logout)

	// --- User-scoped API (guard verified the token already) ---
	e.GET("/api/v1/notices", noticeHandler.List, middleware.Auth(verifier))
	account := e.Group("/api/v1/account", middleware.Auth(verifier))
	account.GET("", accountHandler.Me)
	account.PUT("", accountHandler.Update)
	account.DELETE("", accountHandler.Delete)

	// --- Admin API (token verified by guard, role gated here) ---
	admin := e.Group("/api/v1/admin", middleware.Auth(verifier), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/principals", accountHandler.List)
	admin.GET("/notices", noticeHandler.AdminList)
	admin.POST("/notices", noticeHandler.Create)
	admin.GET("/notices/:id", noticeHandler.Get)
	admin.PUT("/notices/:id", noticeHandler.Update)
	admin.DELETE("/notices/:id", noticeHandler.Delete)
	admin.POST("/uploads", noticeHandler.Upload)
	admin.GET("/audit", auditHandler.List)

	// --- Page surface ---
	e.GET(cfg.LoginPath, pageHandler.Login)
	e.GET("/admin", pageHandler.AdminHome, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
