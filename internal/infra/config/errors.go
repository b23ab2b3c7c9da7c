package config

import "errors"

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing or invalid setting. It is raised
// before any inference request is attempted and aborts the run.
type ConfigurationError struct {
	Field  string // env key, or argument name for per-call checks
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Field + " " + e.Reason
}

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
