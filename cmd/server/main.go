package main

import (
	"log"
	"os"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/ffmpeg"
	"github.com/clipstack/video-editor-backend/internal/server"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/pkg/db/postgres"
	"github.com/clipstack/video-editor-backend/pkg/db/redis"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

func main() {
	log.Println("Starting video editor backend")

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yml"
	}
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to postgres: %s", err)
	}
	appLogger.Infof("postgres connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	store, err := storage.New(cfg)
	if err != nil {
		appLogger.Fatalf("could not prepare media storage: %s", err)
	}
	appLogger.Infof("media root: %s", store.Root())

	ffmpegRun := ffmpeg.New(cfg, appLogger)

	s := server.NewServer(cfg, psqlDB, redisClient, store, ffmpegRun, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("could not start server: %s", err)
	}
}
