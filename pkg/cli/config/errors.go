package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrTokenConflict   = goerr.New("--token and --token-file are mutually exclusive")
	ErrMissingToken    = goerr.New("access token is required")
	ErrInvalidLogLevel = goerr.New("invalid log level")
)

// Context keys for error values
const (
	FlagKey  = "flag"
	ValueKey = "value"
	PathKey  = "path"
)
