package http

import (
	"github.com/labstack/echo/v4"

	"github.com/clipstack/video-editor-backend/internal/videos"
)

func MapVideoRoutes(videoGroup *echo.Group, variantGroup *echo.Group, h videos.Handler) {
	videoGroup.POST("/upload", h.UploadVideo())
	videoGroup.GET("", h.ListVideos())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.GET("/:video_id/variants", h.ListVariants())

	variantGroup.GET("/:variant_id", h.GetVariantByID())
	variantGroup.GET("/:variant_id/download", h.DownloadVariant())
}
