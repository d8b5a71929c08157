package config

import "time"

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewAPIForTest creates an API config for testing purposes
func NewAPIForTest(baseURL string, timeout time.Duration, token, tokenFile string) *API {
	return &API{baseURL: baseURL, timeout: timeout, token: token, tokenFile: tokenFile}
}

// NewMatcherForTest creates a Matcher config for testing purposes
func NewMatcherForTest(algorithm string, threshold float64) *Matcher {
	return &Matcher{algorithm: algorithm, threshold: threshold}
}

// NewDatasetForTest creates a Dataset config for testing purposes
func NewDatasetForTest(benchmarkFile string) *Dataset {
	return &Dataset{benchmarkFile: benchmarkFile}
}

// NewSentryForTest creates a Sentry config for testing purposes
func NewSentryForTest(dsn, environment string) *Sentry {
	return &Sentry{dsn: dsn, environment: environment}
}

// ParseLevel is exported for testing
var ParseLevel = parseLevel
