package http

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/httpErrors"
	"github.com/clipstack/video-editor-backend/pkg/logger"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type videosHandler struct {
	videosUC videos.UseCase
	logger   logger.Logger
}

func NewVideosHandler(videosUC videos.UseCase, log logger.Logger) videos.Handler {
	return &videosHandler{
		videosUC: videosUC,
		logger:   log,
	}
}

type uploadResponse struct {
	Video    *models.Video             `json:"video"`
	ProbeJob *models.JobStatusResponse `json:"probe_job,omitempty"`
}

func (h *videosHandler) UploadVideo() echo.HandlerFunc {
	return func(c echo.Context) error {
		header, err := c.FormFile("file")
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		video, job, err := h.videosUC.UploadVideo(c.Request().Context(), header)
		if err != nil {
			h.logger.Errorf("upload failed: %v", err)
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		resp := &uploadResponse{Video: video}
		if job != nil {
			resp.ProbeJob = job.Response()
		}
		return c.JSON(http.StatusCreated, resp)
	}
}

func (h *videosHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		list, err := h.videosUC.ListVideos(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *videosHandler) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		video, err := h.videosUC.GetVideo(c.Request().Context(), videoID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, video)
	}
}

func (h *videosHandler) ListVariants() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		variants, err := h.videosUC.ListVariants(c.Request().Context(), videoID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, variants)
	}
}

func (h *videosHandler) GetVariantByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		variantID, err := uuid.Parse(c.Param("variant_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		variant, err := h.videosUC.GetVariant(c.Request().Context(), variantID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, variant.Response())
	}
}

func (h *videosHandler) DownloadVariant() echo.HandlerFunc {
	return func(c echo.Context) error {
		variantID, err := uuid.Parse(c.Param("variant_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		variant, err := h.videosUC.GetVariant(c.Request().Context(), variantID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		name := string(variant.Kind) + "_" + variant.VariantID.String() + filepath.Ext(variant.StoredPath)
		return c.Attachment(variant.StoredPath, name)
	}
}
