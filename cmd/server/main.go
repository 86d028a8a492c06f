package main

import (
	"cms-backend/internal/app"
	"cms-backend/internal/config"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()
	logger := &zlog.Logger

	cfg, err := config.MustLoad()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create app")
	}

	if err := application.Run(); err != nil {
		logger.Fatal().Err(err).Msg("App stopped with error")
	}
}
