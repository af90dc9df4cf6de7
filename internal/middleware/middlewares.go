package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clipstack/video-editor-backend/internal/config"
	"github.com/clipstack/video-editor-backend/pkg/logger"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type MiddlewareManager struct {
	cfg     *config.Config
	origins []string
	logger  logger.Logger
}

func NewMiddlewareManager(cfg *config.Config, origins []string, logger logger.Logger) *MiddlewareManager {
	return &MiddlewareManager{cfg: cfg, origins: origins, logger: logger}
}

// RequestLoggerMiddleware logs one line per request with latency and status.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		req := c.Request()
		res := c.Response()
		mw.logger.Infof("request: method %s, uri %s, status %d, size %d, latency %s, request_id %s",
			req.Method, req.RequestURI, res.Status, res.Size, time.Since(start).String(), utils.GetRequestID(c),
		)
		return err
	}
}
