package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/uph-campus/campus-events-backend/config"
	_ "github.com/uph-campus/campus-events-backend/docs"
	"github.com/uph-campus/campus-events-backend/internal/auditlog"
	"github.com/uph-campus/campus-events-backend/internal/auth"
	"github.com/uph-campus/campus-events-backend/internal/campus"
	"github.com/uph-campus/campus-events-backend/internal/event"
	"github.com/uph-campus/campus-events-backend/internal/reports"
	"github.com/uph-campus/campus-events-backend/middleware"
)

// Deps are the services main wires for the router.
type Deps struct {
	Config   *config.Config
	Events   *event.Service
	Catalog  *campus.Catalog
	AuthSvc  auth.Service
	AuditSvc auditlog.Service // nil when no database is configured
	Redis    *redis.Client    // nil: in-process rate limiting
}

// Setup registers middleware and every route on r.
func Setup(r *gin.Engine, d Deps) {
	cfg := d.Config

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimiter(d.Redis, cfg.RateLimitPerMinute))
	r.Use(middleware.ClientIP())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "backend": cfg.StoreBackend})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	adminOnly := middleware.AdminSession(d.AuthSvc)
	optional := middleware.OptionalSession(d.AuthSvc)

	// ========== Auth ==========
	authHandler := auth.NewHandler(d.AuthSvc, cfg.CookieSecure)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", adminOnly, authHandler.Me)
	}

	// ========== Campus ==========
	r.GET("/campus/buildings", campus.NewHandler(d.Catalog).ListBuildings)

	// ========== Events ==========
	eventHandler := event.NewHandler(d.Events)
	eventRoutes := r.Group("/events")
	{
		eventRoutes.GET("", optional, eventHandler.ListEvents)
		eventRoutes.GET("/:id", optional, eventHandler.GetEvent)

		writeRoutes := eventRoutes.Group("", adminOnly)
		{
			writeRoutes.POST("", eventHandler.CreateEvent)
			writeRoutes.PUT("/:id", eventHandler.UpdateEvent)
			writeRoutes.DELETE("/:id", eventHandler.DeleteEvent)
			writeRoutes.PUT("/:id/poster", eventHandler.SetPoster)
		}
	}
	r.GET("/checkRoomConflict", adminOnly, eventHandler.CheckRoomConflict)
	r.POST("/eventsByDate", adminOnly, eventHandler.RepairIndex)

	// ========== Admin ==========
	reportHandler := reports.NewHandler(d.Events, reports.NewReportExporter())
	adminRoutes := r.Group("/admin", adminOnly)
	{
		adminRoutes.GET("/dashboard", eventHandler.Dashboard)
		adminRoutes.GET("/history", eventHandler.History)
		adminRoutes.GET("/events/export", reportHandler.ExportEvents)
		adminRoutes.GET("/index/verify", eventHandler.VerifyIndex)

		if d.AuditSvc != nil {
			auditHandler := auditlog.NewHandler(d.AuditSvc)
			adminRoutes.GET("/auditlogs", auditHandler.GetAuditLogs)
			adminRoutes.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)
		}
	}
}
