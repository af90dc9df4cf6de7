package utils

import (
	"github.com/labstack/echo/v4"
)

// GetRequestID returns the request id echo's RequestID middleware assigned.
func GetRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
