package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"propertycalc/server/config"
	"propertycalc/server/internal/api"
	"propertycalc/server/internal/database"
	"propertycalc/server/internal/logging"
	"propertycalc/server/internal/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.NewLogger("info", "json").WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	handler := api.NewHandler(db, logger, metrics.New(), cfg.Map.OutputPath)
	router := api.NewRouter(handler, api.RouterOptions{
		SessionSecret:  cfg.Server.SessionSecret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Infof("Starting server on %s", cfg.Addr())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
