package chek

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for backend API calls
var (
	// ErrTransport means the request never produced an HTTP response
	ErrTransport = goerr.New("backend request failed")
	// ErrHTTPStatus means the backend answered with a non-2xx status
	ErrHTTPStatus = goerr.New("backend returned non-success status")
	// ErrMalformedResponse means the body did not have the expected shape
	ErrMalformedResponse = goerr.New("malformed backend response")
	// ErrNoToken means no bearer token is stored for the session
	ErrNoToken = goerr.New("no access token in session")
)

// StatusError carries the status of a non-2xx response. errors.Is(err, ErrHTTPStatus) holds.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d - %s", e.Endpoint, e.StatusCode, e.Status)
}

// Is matches ErrHTTPStatus
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// Context keys for error values
const (
	EndpointKey  = "endpoint"
	ProjectIDKey = "project_id"
	CategoryKey  = "category"
)
