package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nibchat/nibchat-server/internal/admin"
	"github.com/nibchat/nibchat-server/internal/audit"
	"github.com/nibchat/nibchat-server/internal/config"
	"github.com/nibchat/nibchat-server/internal/middleware"
	"github.com/nibchat/nibchat-server/internal/notification"
	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/syncstore"
	"github.com/nibchat/nibchat-server/internal/user"
	"github.com/nibchat/nibchat-server/internal/verification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories
	var (
		verifRepo    verification.Repository
		userRepo     user.Repository
		purchaseRepo purchase.Repository
		memPurchases *purchase.MemoryRepository
		auditRepo    audit.Repository
	)
	if d.DB != nil {
		verifRepo = verification.NewPostgresRepository(d.DB)
		userRepo = user.NewPostgresRepository(d.DB)
		purchaseRepo = purchase.NewPostgresRepository(d.DB)
		auditRepo = audit.NewPostgresRepository(d.DB)
	} else {
		verifRepo = verification.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
		memPurchases = purchase.NewMemoryRepository()
		purchaseRepo = memPurchases
		auditRepo = audit.NewMemoryRepository()
	}

	// The sync projection is derived cache; it only exists with Redis.
	var syncStore *syncstore.Store
	var projection user.Projection
	if d.Cache != nil {
		syncStore = syncstore.New(d.Cache)
		projection = syncStore
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	verifSvc := verification.NewService(verifRepo, notifier, d.Cfg.CodeTTL, d.Logger)
	userSvc := user.NewService(userRepo, projection, d.Logger)

	var adminStore admin.Store
	if d.DB != nil {
		adminStore = admin.NewPostgresStore(d.DB, userRepo)
	} else {
		adminStore = admin.NewMemoryStore(userRepo, memPurchases, auditRepo)
	}
	adminSvc := admin.NewService(adminStore, projection, notifier, d.Logger)

	verifHandler := verification.NewHandler(verifSvc)
	userHandler := user.NewHandler(userSvc)
	purchaseHandler := purchase.NewHandler(purchaseRepo)
	auditHandler := audit.NewHandler(auditRepo)
	adminHandler := admin.NewHandler(adminSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	codeRateLimiter := middleware.CodeRequestRateLimit(d.Cache, d.Cfg.CodeRateLimit)
	RegisterVerificationRoutes(api, verifHandler, codeRateLimiter)
	RegisterUserRoutes(api, userHandler)
	RegisterPurchaseRoutes(api, purchaseHandler)
	RegisterLogRoutes(api, auditHandler)
	RegisterSyncRoutes(api, syncStore)

	// Privileged routes: server-validated token plus idempotency keys so a
	// retried decision can never apply twice. Every admin call is audited.
	adminGroup := api.Group("/admin", middleware.AdminAuth(d.Cfg.AdminToken))
	adminGroup.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		adminGroup.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterAdminRoutes(adminGroup, adminHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
