package app_error

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type statusError struct {
	error
	status int
}

func (e *statusError) Unwrap() error {
	return e.error
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// New creates an error that carries the HTTP status it should be reported
// with. Services use it for the conflict/validation/configuration cases
// where the controller cannot tell the right status from the error alone.
func New(status int, format string, args ...interface{}) error {
	return &statusError{error: fmt.Errorf(format, args...), status: status}
}

// HTTPStatusOf unwraps the status carried by an error, or the fallback.
func HTTPStatusOf(err error, fallback int) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	return fallback
}

// WithHTTPStatus writes the error as a JSON response using the carried
// status, defaulting to 500 for plain errors.
func WithHTTPStatus(c *gin.Context, err error) {
	c.JSON(HTTPStatusOf(err, 500), gin.H{"error": err.Error()})
}
