// Package main runs the member portal HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nccf-fellowship/portal-backend/config"
	"github.com/nccf-fellowship/portal-backend/internal/access"
	"github.com/nccf-fellowship/portal-backend/internal/admins"
	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/internal/middleware"
	"github.com/nccf-fellowship/portal-backend/internal/notifications"
	"github.com/nccf-fellowship/portal-backend/internal/profiles"
	"github.com/nccf-fellowship/portal-backend/internal/receipts"
	"github.com/nccf-fellowship/portal-backend/internal/rooms"
	"github.com/nccf-fellowship/portal-backend/pkg/database"
	"github.com/nccf-fellowship/portal-backend/pkg/queue"
	"github.com/nccf-fellowship/portal-backend/pkg/redis"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
	"github.com/nccf-fellowship/portal-backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			UploadsBucket:        cfg.AWS.UploadsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	denylist := auth.NewTokenDenylist(rdb.Client)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, denylist, logger)

	// Profiles
	profileRepo := profiles.NewRepository(pool)
	profileHandler := profiles.NewHandler(profileRepo, s3Client, cfg.Uploads.MaxFileSizeMB, logger)

	// Rooms and access resolution
	roomRepo := rooms.NewRepository(pool)
	adminRepo := admins.NewRepository(pool)
	resolver := access.NewResolver(adminRepo, roomRepo, logger)
	roomHandler := rooms.NewHandler(roomRepo, resolver, profileRepo, logger)
	adminHandler := admins.NewHandler(adminRepo, profileRepo, logger)

	// Receipts
	receiptRepo := receipts.NewRepository(pool)
	var uploader receipts.Uploader
	if s3Client != nil {
		uploader = s3Client
	}
	receiptHandler := receipts.NewHandler(receiptRepo, roomRepo, uploader, jobQueue, cfg.Uploads.MaxFileSizeMB, logger)

	// Notifications
	notifRepo := notifications.NewRepository(pool)
	notifHandler := notifications.NewHandler(notifRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService, denylist, logger))
	requireAdmin := middleware.RequireAdmin(resolver, logger)
	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		// Rooms: visibility derived from the caller's grant
		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/:id", roomHandler.GetByID)
		api.POST("/rooms", requireAdmin, roomHandler.Create)
		api.PUT("/rooms/:id/members", requireAdmin, roomHandler.AssignMember)

		// Profiles
		api.GET("/profiles/me", profileHandler.Me)
		api.PUT("/profiles/me", profileHandler.UpdateMe)
		api.POST("/profiles/me/avatar", profileHandler.UploadAvatar)
		api.GET("/profiles", requireAdmin, profileHandler.List)

		// Admin grants
		api.POST("/admins", requireAdmin, adminHandler.Promote)
		api.GET("/admins", requireAdmin, adminHandler.List)

		// Receipts
		api.POST("/receipts", receiptHandler.Submit)
		api.GET("/receipts/mine", receiptHandler.ListMine)
		api.GET("/receipts", requireAdmin, receiptHandler.List)
		api.PATCH("/receipts/:id/verify", requireAdmin, receiptHandler.Verify)
		api.PATCH("/receipts/:id/reject", requireAdmin, receiptHandler.Reject)

		// Notifications
		api.GET("/notifications/mine", notifHandler.ListMine)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
