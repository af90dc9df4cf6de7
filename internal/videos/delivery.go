package videos

import "github.com/labstack/echo/v4"

type Handler interface {
	UploadVideo() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	ListVariants() echo.HandlerFunc
	GetVariantByID() echo.HandlerFunc
	DownloadVariant() echo.HandlerFunc
}
