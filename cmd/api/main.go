package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waggytails/walk-scheduler/internal/config"
	dbpkg "github.com/waggytails/walk-scheduler/internal/db"
	"github.com/waggytails/walk-scheduler/internal/logger"
	"github.com/waggytails/walk-scheduler/internal/middleware"
	"github.com/waggytails/walk-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
