package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/bikeparts/config"
	"github.com/yoockh/bikeparts/internal/api/handlers"
	"github.com/yoockh/bikeparts/internal/api/middleware"
	"github.com/yoockh/bikeparts/internal/api/routes"
	"github.com/yoockh/bikeparts/internal/auth"
	"github.com/yoockh/bikeparts/internal/cache"
	"github.com/yoockh/bikeparts/internal/logger"
	mongorepo "github.com/yoockh/bikeparts/internal/repositories/mongo"
	pgrepo "github.com/yoockh/bikeparts/internal/repositories/postgres"
	"github.com/yoockh/bikeparts/internal/services"
	"github.com/yoockh/bikeparts/internal/storage"
	"github.com/yoockh/bikeparts/internal/workers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := auth.NewTokenService(cfg.TokenSecret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("token service init error: %v", err)
	}

	// MongoDB
	mongoClient, err := config.NewMongo(ctx, cfg)
	if err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	db := mongoClient.Database(cfg.MongoDB)
	if err := config.EnsureMongoIndexes(ctx, db); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	log.Info("MongoDB connected")

	// Redis product cache (optional)
	var (
		rdb          *redis.Client
		productCache cache.Cache = cache.Nop{}
	)
	if cfg.CacheEnabled() {
		rdb, err = config.NewRedis(ctx, cfg)
		if err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		defer rdb.Close()
		productCache = cache.NewRedisCache(rdb)
		log.Info("Redis connected")
	}

	// Postgres audit log (optional)
	var auditRepo pgrepo.AuditRepository
	if cfg.AuditEnabled() {
		pg, err := config.NewPostgres(cfg)
		if err != nil {
			log.Fatalf("PostgreSQL init error: %v", err)
		}
		auditRepo = pgrepo.NewAuditRepo(pg)
		log.Info("PostgreSQL connected")
	}

	// GCS product images (optional)
	var uploader storage.Uploader
	if cfg.StorageEnabled() {
		gcs, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		uploader = gcs
	}

	// Audit writes go through a Redis stream when both stores are present
	var auditOpts []services.AuditOption
	var auditPool *workers.AuditWorkerPool
	if cfg.AuditQueueEnabled() {
		auditPool = &workers.AuditWorkerPool{
			Redis:      rdb,
			Repo:       auditRepo,
			NumWorkers: cfg.AuditWorkers,
			Logger:     log,
		}
		if err := auditPool.Start(ctx); err != nil {
			log.Fatalf("audit worker init error: %v", err)
		}
		auditOpts = append(auditOpts, services.WithAuditWriter(workers.NewAuditQueue(rdb, auditPool.Stream)))
		log.Infof("audit worker pool started with %d consumers", auditPool.NumWorkers)
	}

	auditSvc := services.NewAuditService(auditRepo, log, auditOpts...)
	userSvc := services.NewUserService(mongorepo.NewUserRepo(db), tokens, auditSvc)
	productSvc := services.NewProductService(mongorepo.NewProductRepo(db), productCache, cfg.CacheTTL, uploader, auditSvc)
	orderSvc := services.NewOrderService(mongorepo.NewOrderRepo(db))
	reviewSvc := services.NewReviewService(mongorepo.NewReviewRepo(db))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), cors.New(corsConfig(cfg.CORSOrigins)))

	routes.RegisterRoutes(r, routes.Deps{
		Tokens:  tokens,
		Admins:  userSvc,
		User:    handlers.NewUserHandler(userSvc),
		Product: handlers.NewProductHandler(productSvc),
		Order:   handlers.NewOrderHandler(orderSvc, userSvc),
		Review:  handlers.NewReviewHandler(reviewSvc),
		Audit:   handlers.NewAuditHandler(auditSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("bike-parts-manufacturer server is listening to port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
	}
	if auditPool != nil {
		auditPool.Wait()
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AddAllowHeaders("Authorization")
	c.AddExposeHeaders("X-Request-Id")
	return c
}
