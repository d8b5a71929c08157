package types

import "github.com/m-mizutani/goerr/v2"

// Level is a maturity rating from 0 (none) to 5 (optimised)
type Level int

const (
	MinLevel Level = 0
	MaxLevel Level = 5
)

// ErrInvalidLevel is returned for levels outside [MinLevel, MaxLevel]
var ErrInvalidLevel = goerr.New("maturity level out of range")

// Validate checks that the level is within [0, 5]
func (l Level) Validate() error {
	if l < MinLevel || l > MaxLevel {
		return goerr.Wrap(ErrInvalidLevel, "invalid level", goerr.V("level", int(l)))
	}
	return nil
}

// Int returns the level as int
func (l Level) Int() int {
	return int(l)
}
