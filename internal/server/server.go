package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/internal/ffmpeg"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/storage"
	"github.com/clipstack/video-editor-backend/pkg/logger"
)

const (
	maxHeaderBytes  = 1 << 20
	ctxTimeout      = 5 * time.Second
	shutdownTimeout = 30 * time.Second
)

type Server struct {
	echo        *echo.Echo
	cfg         *config.Config
	db          *sqlx.DB
	redisClient *redis.Client
	store       *storage.Storage
	ffmpegRun   *ffmpeg.FFmpeg
	pool        *orchestrator.Orchestrator
	logger      logger.Logger
}

func NewServer(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, store *storage.Storage, ffmpegRun *ffmpeg.FFmpeg, logger logger.Logger) *Server {
	return &Server{
		echo:        echo.New(),
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
		store:       store,
		ffmpegRun:   ffmpegRun,
		logger:      logger,
	}
}

func (s *Server) Run() error {
	if err := s.MapHandlers(s.echo); err != nil {
		return err
	}

	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	s.pool.Start(poolCtx)

	s.echo.Server.MaxHeaderBytes = maxHeaderBytes
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	go func() {
		s.logger.Infof("server listening on %s", s.cfg.Server.Port)
		if err := s.echo.Start(s.cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("error starting server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit

	s.logger.Infof("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.pool.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("worker pool shutdown: %v", err)
	}

	httpCtx, httpCancel := context.WithTimeout(context.Background(), ctxTimeout)
	defer httpCancel()
	return s.echo.Server.Shutdown(httpCtx)
}
