package http

import (
	"github.com/labstack/echo/v4"

	"github.com/clipstack/video-editor-backend/internal/jobs"
)

func MapJobRoutes(videoGroup *echo.Group, jobGroup *echo.Group, h jobs.Handler) {
	videoGroup.POST("/:video_id/trim", h.SubmitTrim())
	videoGroup.POST("/:video_id/overlays", h.SubmitOverlay())
	videoGroup.POST("/:video_id/watermark", h.SubmitWatermark())
	videoGroup.POST("/:video_id/transcode", h.SubmitTranscode())
	videoGroup.GET("/:video_id/jobs", h.ListJobs())

	jobGroup.GET("/status/:job_id", h.GetJob())
	jobGroup.GET("/result/:job_id", h.GetJobResult())
}
