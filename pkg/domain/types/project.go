package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// ProjectID identifies a project on the backend
type ProjectID int64

// Validate checks if the ProjectID is valid
func (p ProjectID) Validate() error {
	if p <= 0 {
		return goerr.New("project ID must be positive", goerr.V("project_id", int64(p)))
	}
	return nil
}

// String returns the decimal form used as project_id query parameter
func (p ProjectID) String() string {
	return strconv.FormatInt(int64(p), 10)
}

// ParseProjectID parses a decimal project ID
func ParseProjectID(s string) (ProjectID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "project ID is not a number", goerr.V("project_id", s))
	}
	id := ProjectID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}
