package httpErrors

import (
	"database/sql"
	"net/http"

	"github.com/pkg/errors"
)

// RestError is the JSON error body every handler returns.
type RestError struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// Status maps a domain error to an HTTP status. Missing rows surface as 404,
// everything else a handler has not classified is a 400.
func Status(err error) int {
	if errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func NewRestError(status int, err error) (int, *RestError) {
	return status, &RestError{Status: status, Error: err.Error()}
}

// ErrorResponse classifies err and builds the body in one call.
func ErrorResponse(err error) (int, *RestError) {
	return NewRestError(Status(err), err)
}
