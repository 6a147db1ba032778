package config

import "errors"

// Validation errors returned by [StructuredConfig.validate]. Each is wrapped
// together with the name of the offending environment variable, and all
// problems found are joined into one error.
var (
	// ErrMissingRequired indicates a required setting that is absent or blank.
	ErrMissingRequired = errors.New("missing required configuration value")
	// ErrInvalidValue indicates a setting that is present but malformed or
	// out of range.
	ErrInvalidValue = errors.New("invalid configuration value")
)
