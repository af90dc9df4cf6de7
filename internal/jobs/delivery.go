package jobs

import "github.com/labstack/echo/v4"

type Handler interface {
	SubmitTrim() echo.HandlerFunc
	SubmitOverlay() echo.HandlerFunc
	SubmitWatermark() echo.HandlerFunc
	SubmitTranscode() echo.HandlerFunc
	GetJob() echo.HandlerFunc
	GetJobResult() echo.HandlerFunc
	ListJobs() echo.HandlerFunc
}
