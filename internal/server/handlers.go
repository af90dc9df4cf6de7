package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	jobsHttp "github.com/clipstack/video-editor-backend/internal/jobs/delivery/http"
	"github.com/clipstack/video-editor-backend/internal/jobs/handlers"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	jobsRepository "github.com/clipstack/video-editor-backend/internal/jobs/repository"
	jobsUsecase "github.com/clipstack/video-editor-backend/internal/jobs/usecase"
	"github.com/clipstack/video-editor-backend/internal/middleware"
	videosHttp "github.com/clipstack/video-editor-backend/internal/videos/delivery/http"
	videosRepository "github.com/clipstack/video-editor-backend/internal/videos/repository"
	videosUsecase "github.com/clipstack/video-editor-backend/internal/videos/usecase"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	vRepo := videosRepository.NewVideosRepo(s.db)
	jRepo := jobsRepository.NewJobsRepo(s.db)
	jRedisRepo := jobsRepository.NewJobsRedisRepo(s.redisClient, s.cfg)
	sessions := jobsRepository.NewSessionFactory(s.db)

	s.pool = orchestrator.New(s.cfg, sessions, jRedisRepo, s.logger)
	deps := handlers.NewDeps(s.ffmpegRun, s.store, s.logger)

	jobsUC := jobsUsecase.NewJobsUseCase(s.cfg, jRepo, jRedisRepo, vRepo, s.pool, deps, s.logger)
	videosUC := videosUsecase.NewVideosUseCase(s.cfg, vRepo, jobsUC, s.store, s.logger)

	videoHandlers := videosHttp.NewVideosHandler(videosUC, s.logger)
	jobHandlers := jobsHttp.NewJobsHandler(jobsUC, videosUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	e.Use(echoMw.RequestID())
	e.Use(mw.RequestLoggerMiddleware)
	e.Use(echoMw.Recover())

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	videoGroup := v1.Group("/videos")
	variantGroup := v1.Group("/variants")
	jobGroup := v1.Group("/jobs")

	videosHttp.MapVideoRoutes(videoGroup, variantGroup, videoHandlers)
	jobsHttp.MapJobRoutes(videoGroup, jobGroup, jobHandlers)

	health.GET("", func(c echo.Context) error {
		s.logger.Infof("health check request_id: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
