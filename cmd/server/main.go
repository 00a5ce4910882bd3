// Package main runs the anonymous Q&A board HTTP server with graceful
// shutdown.
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

	"github.com/askanon/board/config"
	"github.com/askanon/board/internal/auth"
	"github.com/askanon/board/internal/middleware"
	"github.com/askanon/board/internal/questions"
	"github.com/askanon/board/internal/store"
	"github.com/askanon/board/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	st := store.New(cfg.Store.DataDir, logger, store.WithCacheTTL(cfg.Store.CacheTTL))

	tokens := auth.NewTokenService(cfg.Admin.JWTSecret)
	verifier := auth.NewVerifier(cfg.Admin.Username, cfg.Admin.PasswordHashBase64, logger)
	authHandler := auth.NewHandler(verifier, tokens, cfg.Server.Production, logger)
	questionHandler := questions.NewHandler(st, cfg.RateLimit.MaxQuestionsPerDay, logger)

	if cfg.Server.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	router.GET("/questions", questionHandler.List)
	router.POST("/questions", questionHandler.Create)
	router.POST("/upvote", questionHandler.Upvote)

	admin := router.Group("/admin")
	{
		admin.POST("/login", authHandler.Login)
		admin.GET("/verify", authHandler.VerifySession)
		admin.POST("/resolve", middleware.RequireAdmin(tokens), questionHandler.Resolve)
		admin.POST("/hide", middleware.RequireAdmin(tokens), questionHandler.Hide)
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
