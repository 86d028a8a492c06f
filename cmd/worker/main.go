package main

import (
	"cms-backend/internal/app/worker"
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

	w, err := worker.NewWorker(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create worker")
	}

	if err := w.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Worker stopped with error")
	}
}
