package config

import "errors"

var (
	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrInvalidSiteURL is returned when the configured site URL is not an absolute http(s) URL.
	ErrInvalidSiteURL = errors.New("invalid site url")
)
