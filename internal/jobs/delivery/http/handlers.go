package http

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/clipstack/video-editor-backend/internal/jobs"
	"github.com/clipstack/video-editor-backend/internal/jobs/orchestrator"
	"github.com/clipstack/video-editor-backend/internal/models"
	"github.com/clipstack/video-editor-backend/internal/videos"
	"github.com/clipstack/video-editor-backend/pkg/httpErrors"
	"github.com/clipstack/video-editor-backend/pkg/logger"
	"github.com/clipstack/video-editor-backend/pkg/utils"
)

type jobsHandler struct {
	jobsUC   jobs.UseCase
	videosUC videos.UseCase
	logger   logger.Logger
}

func NewJobsHandler(jobsUC jobs.UseCase, videosUC videos.UseCase, log logger.Logger) jobs.Handler {
	return &jobsHandler{
		jobsUC:   jobsUC,
		videosUC: videosUC,
		logger:   log,
	}
}

func (h *jobsHandler) SubmitTrim() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		input := &models.TrimInput{}
		if err = c.Bind(input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		if err = utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		job, err := h.jobsUC.SubmitTrim(c.Request().Context(), videoID, input)
		return h.submitted(c, job, err)
	}
}

func (h *jobsHandler) SubmitOverlay() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		input := &models.OverlaysInput{}
		if err = c.Bind(input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		if err = utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		job, err := h.jobsUC.SubmitOverlay(c.Request().Context(), videoID, input)
		return h.submitted(c, job, err)
	}
}

func (h *jobsHandler) SubmitWatermark() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		input := &models.WatermarkInput{}
		if err = c.Bind(input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		if err = utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		job, err := h.jobsUC.SubmitOverlay(c.Request().Context(), videoID, &models.OverlaysInput{
			Watermark:       input.Watermark,
			SourceVariantID: input.SourceVariantID,
		})
		return h.submitted(c, job, err)
	}
}

func (h *jobsHandler) SubmitTranscode() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		input := &models.TranscodeInput{}
		if err = c.Bind(input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		if err = utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		job, err := h.jobsUC.SubmitTranscode(c.Request().Context(), videoID, input)
		return h.submitted(c, job, err)
	}
}

func (h *jobsHandler) GetJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		status, err := h.jobsUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, status)
	}
}

func (h *jobsHandler) GetJobResult() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		status, err := h.jobsUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		switch status.Status {
		case models.JobStatusPending, models.JobStatusStarted:
			return c.JSON(httpErrors.NewRestError(http.StatusConflict, errors.New("job is still running")))
		case models.JobStatusFailure:
			return c.JSON(httpErrors.NewRestError(http.StatusNotFound, errors.New("job failed")))
		}
		if status.OutputVariantID == nil {
			return c.JSON(httpErrors.NewRestError(http.StatusNotFound, errors.New("job produced no output")))
		}
		variant, err := h.videosUC.GetVariant(c.Request().Context(), *status.OutputVariantID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		name := string(variant.Kind) + "_" + variant.VariantID.String() + filepath.Ext(variant.StoredPath)
		return c.Attachment(variant.StoredPath, name)
	}
}

func (h *jobsHandler) ListJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(httpErrors.NewRestError(http.StatusBadRequest, err))
		}
		statuses, err := h.jobsUC.ListJobsByVideo(c.Request().Context(), videoID)
		if err != nil {
			return c.JSON(httpErrors.ErrorResponse(err))
		}
		return c.JSON(http.StatusOK, statuses)
	}
}

// submitted maps a submission outcome: a queued job returns 202, a rejected
// one returns 503 with the finalized FAILURE job attached.
func (h *jobsHandler) submitted(c echo.Context, job *models.Job, err error) error {
	if err != nil {
		if job != nil && errors.Is(err, orchestrator.ErrQueueFull) {
			return c.JSON(http.StatusServiceUnavailable, job.Response())
		}
		h.logger.Errorf("job submission failed: %v", err)
		return c.JSON(httpErrors.ErrorResponse(err))
	}
	return c.JSON(http.StatusAccepted, job.Response())
}
