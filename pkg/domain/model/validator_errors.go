package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrMissingLabel       = goerr.New("item has no label")
	ErrInvalidLabelType   = goerr.New("item label is not a string")
	ErrMissingProjectID   = goerr.New("project has no id")
	ErrInvalidOptionCount = goerr.New("question must have one option per level")
	ErrEmptyBenchmark     = goerr.New("benchmark category has no entries")
)

// Context keys for error values
const (
	CategoryKey = "category"
	LabelKey    = "label"
	IndexKey    = "index"
)
