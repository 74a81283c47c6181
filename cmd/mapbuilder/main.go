package main

import (
	"github.com/sirupsen/logrus"

	"propertycalc/server/config"
	"propertycalc/server/internal/listings"
	"propertycalc/server/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.NewLogger("info", "json").WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
	logger.Infof("Loading listings from: %s", cfg.Map.ListingsPath)

	ds, err := listings.LoadDataset(cfg.Map.ListingsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load listings")
	}

	builder := listings.NewBuilder(logger, cfg.MapView())
	res, err := builder.Build(ds)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build map")
	}

	page := listings.NewPage(cfg.Map.Title, res, listings.RdYlGn)
	if err := listings.WriteArtifact(cfg.Map.OutputPath, page); err != nil {
		logger.WithError(err).Fatal("Failed to write map")
	}

	logger.WithFields(logrus.Fields{
		"output":   cfg.Map.OutputPath,
		"listings": len(res.Listings),
		"markers":  len(res.Markers),
		"skipped":  len(res.Skipped),
	}).Info("Map written")
}
