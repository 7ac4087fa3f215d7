package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ataymia/slipsmith-sub000/internal/api"
	"github.com/ataymia/slipsmith-sub000/internal/api/handlers"
	"github.com/ataymia/slipsmith-sub000/internal/api/middleware"
	"github.com/ataymia/slipsmith-sub000/internal/edge"
	"github.com/ataymia/slipsmith-sub000/internal/evaluation"
	"github.com/ataymia/slipsmith-sub000/internal/projection"
	"github.com/ataymia/slipsmith-sub000/internal/providers"
	_ "github.com/ataymia/slipsmith-sub000/internal/providers/mock"
	"github.com/ataymia/slipsmith-sub000/internal/services"
	"github.com/ataymia/slipsmith-sub000/internal/slips"
	"github.com/ataymia/slipsmith-sub000/pkg/config"
	"github.com/ataymia/slipsmith-sub000/pkg/database"
	"github.com/ataymia/slipsmith-sub000/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Select data providers and wrap them in circuit breakers
	bundle, err := providers.New(cfg.ProviderMode, log)
	if err != nil {
		log.Fatalf("Failed to initialize providers: %v", err)
	}
	bundle = services.NewGuardedProviders(bundle, cfg.ExternalAPITimeout, log)

	// Core pipeline
	cacheService := services.NewCacheService(redisClient)
	ledger := evaluation.NewLedger(db, bundle.BoxScore, log)
	if err := ledger.Migrate(); err != nil {
		log.Fatalf("Failed to migrate ledger schema: %v", err)
	}

	model := projection.NewModel(bundle, projection.Config{
		LookbackGames: cfg.LookbackGames,
		RecencyWeight: cfg.RecencyWeight,
		HomeAdvantage: cfg.HomeAdvantage,
	}, log)
	detector := edge.NewDetector(edge.Config{
		MinEdge:           cfg.MinEdge,
		EdgeWeight:        0.5,
		ConfidenceWeight:  0.3,
		ReliabilityWeight: 0.2,
	}, log)
	assembler := slips.NewAssembler(ledger, log)
	pipeline := services.NewPipeline(model, detector, ledger, assembler, bundle.Odds, cacheService, cfg.SlipCacheTTL, cfg.MinProbability, log)

	// Recurring evaluation sweep
	scheduler := services.NewEvaluationScheduler(ledger, cacheService, cfg.EvaluationLeagues, cfg.EvaluationSchedule, log)
	if err := scheduler.Start(); err != nil {
		log.Errorf("Failed to start evaluation scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Check)

	v1 := router.Group("/api/v1")
	api.SetupRoutes(v1, db, pipeline, ledger, cacheService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited")
}
