package triggersdk

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Operation names used in APIError messages.
const (
	OpTokenGeneration = "Token generation"
	OpAddRefresh      = "Add refresh"
	OpStopRefresh     = "Stop refresh"
	OpGetProperties   = "Get properties"
)

// File validation errors. They are returned before any network I/O.
var (
	ErrNoFile          = errors.New("no file selected")
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidFileType = errors.New("file must be a .csv file")
	ErrFileTooLarge    = errors.New("file exceeds the upload limit")
)

// ErrTokenDiscarded is returned when a config update lands while a token is
// being requested, so the token belongs to superseded credentials.
var ErrTokenDiscarded = errors.New("access token was discarded by a config update")

// ErrConfigNotFound must be returned by a ConfigProvider when a key is absent.
var ErrConfigNotFound = errors.New("config not found")

// APIError is returned when the remote API answers with a non-2xx status.
type APIError struct {
	// Operation is one of the Op* constants
	Operation string

	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Status is the status text, e.g. "Internal Server Error"
	Status string

	// Body is the raw response body, possibly empty
	Body []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Status)
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsValidationError reports whether err is one of the file validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrFileTooLarge)
}

func newAPIError(op string, resp *http.Response, body []byte) *APIError {
	return &APIError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Body:       body,
	}
}

// statusText strips the numeric code from resp.Status, falling back to the
// canonical text and then the bare code.
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return strconv.Itoa(resp.StatusCode)
}
