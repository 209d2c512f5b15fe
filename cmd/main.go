package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uph-campus/campus-events-backend/config"
	"github.com/uph-campus/campus-events-backend/database"
	"github.com/uph-campus/campus-events-backend/internal/auditlog"
	"github.com/uph-campus/campus-events-backend/internal/auth"
	"github.com/uph-campus/campus-events-backend/internal/campus"
	"github.com/uph-campus/campus-events-backend/internal/event"
	"github.com/uph-campus/campus-events-backend/internal/eventfeed"
	"github.com/uph-campus/campus-events-backend/internal/jobs"
	"github.com/uph-campus/campus-events-backend/routes"
	"github.com/uph-campus/campus-events-backend/utils"
)

// @title Campus Events API
// @version 1.0
// @description Campus event directory with room booking conflict checks.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	gin.SetMode(cfg.GinMode)
	ctx := context.Background()

	loc, _ := cfg.Location()
	policy := event.StatusPolicy{
		UpcomingDays: cfg.UpcomingThresholdDays,
		InclusiveEnd: cfg.OngoingInclusiveEnd,
		Location:     loc,
	}

	catalog := campus.Default()
	if cfg.CampusCatalogPath != "" {
		if catalog, err = campus.Load(cfg.CampusCatalogPath); err != nil {
			log.Fatalf("❌ Campus catalog: %v", err)
		}
	}

	// Init Redis
	rdb, err := utils.InitRedis(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, continuing with in-memory rate limits: %v", err)
	}

	// Init repositories & services
	var (
		repo     event.Repository
		authRepo auth.Repository
		auditSvc auditlog.Service
	)
	if cfg.StoreBackend == config.BackendMemory {
		log.Println("⚠️ STORE_BACKEND=memory: events and admins are lost on restart, audit log disabled")
		repo = event.NewMemoryRepository()
		authRepo = auth.NewMemoryRepository()
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		models := []interface{}{&auth.Admin{}, &auditlog.AuditLog{}}

		switch cfg.StoreBackend {
		case config.BackendFirebase:
			client, err := utils.InitFirebase(ctx, cfg)
			if err != nil {
				log.Fatalf("❌ %v", err)
			}
			repo = event.NewFirebaseRepository(client)
		default:
			gormRepo := event.NewGormRepository(db)
			models = append(models, gormRepo.Models()...)
			repo = gormRepo
		}

		if err := database.Migrate(db, models...); err != nil {
			log.Fatalf("❌ %v", err)
		}
		authRepo = auth.NewRepository(db)
		auditSvc = auditlog.NewService(auditlog.NewRepository(db, cfg.StoreBackend == config.BackendPostgres))
	}

	authSvc := auth.NewService(authRepo, cfg, auditSvc)
	if err := authSvc.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}

	feed := eventfeed.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	defer feed.Close()

	eventSvc := event.NewService(repo, catalog, auditSvc, feed, policy)

	// Background jobs
	scheduler := jobs.NewScheduler(loc)
	if err := scheduler.AddIndexReconcile(cfg.IndexReconcileCron, eventSvc, cfg.IndexReconcileApply, 5*time.Minute); err != nil {
		log.Fatalf("❌ %v", err)
	}
	scheduler.Start()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.Setup(router, routes.Deps{
		Config:   cfg,
		Events:   eventSvc,
		Catalog:  catalog,
		AuthSvc:  authSvc,
		AuditSvc: auditSvc,
		Redis:    rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s (backend=%s, tz=%s)", cfg.Port, cfg.StoreBackend, loc)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
	if rdb != nil {
		rdb.Close()
	}
}
