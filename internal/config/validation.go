package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i := range e {
		msgs[i] = e[i].Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validLevels     = []string{"debug", "info", "warn", "error"}
	validFormats    = []string{"json", "console"}
	validTransports = []string{"stdio", "http"}
)

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if !contains(validLevels, c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(validLevels, ", "), c.Logging.Level),
		})
	}
	if !contains(validFormats, c.Logging.Format) {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(validFormats, ", "), c.Logging.Format),
		})
	}
	if c.Logging.Output == "" {
		errs = append(errs, ValidationError{Field: "logging.output", Message: "must not be empty"})
	}

	if c.Metrics.Enabled {
		if _, _, err := net.SplitHostPort(c.Metrics.Addr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "metrics.addr",
				Message: fmt.Sprintf("invalid listen address %q", c.Metrics.Addr),
			})
		}
	}

	if !contains(validTransports, c.Serve.Transport) {
		errs = append(errs, ValidationError{
			Field:   "serve.transport",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(validTransports, ", "), c.Serve.Transport),
		})
	}
	if c.Serve.Transport == "http" && (c.Serve.Port <= 0 || c.Serve.Port > 65535) {
		errs = append(errs, ValidationError{
			Field:   "serve.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Serve.Port),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
