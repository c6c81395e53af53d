package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/glowpoint/salon-scheduler/internal/config"
	dbpkg "github.com/glowpoint/salon-scheduler/internal/db"
	"github.com/glowpoint/salon-scheduler/internal/logger"
	"github.com/glowpoint/salon-scheduler/internal/middleware"
	"github.com/glowpoint/salon-scheduler/internal/routes"
)

func main() {

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db := dbpkg.NewDB(cfg, log)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
