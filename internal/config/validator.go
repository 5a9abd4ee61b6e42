package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/tabmerge/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "watch.timeout_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// logLevels returns the logger's levels in the lowercase form the config
// file uses.
func logLevels() []string {
	levels := logging.ValidLevels()
	for i, l := range levels {
		levels[i] = strings.ToLower(l)
	}
	return levels
}

// ValidOutputFormats returns the list of valid output formats
func ValidOutputFormats() []string {
	return []string{"text", "json", "yaml"}
}

// ValidColorModes returns the list of valid color modes
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateWatch()...)
	errors = append(errors, c.validateTabHost()...)
	errors = append(errors, c.validateMerge()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateOutput()...)

	return errors
}

func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.PollIntervalMs < 10 {
		errors = append(errors, ValidationError{
			Field:   "watch.poll_interval_ms",
			Value:   c.Watch.PollIntervalMs,
			Message: "must be at least 10",
		})
	}

	// A single poll can take longer than the bound but the bound must
	// allow at least one pause.
	if c.Watch.TimeoutMs < c.Watch.PollIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "watch.timeout_ms",
			Value:   c.Watch.TimeoutMs,
			Message: "must not be shorter than watch.poll_interval_ms",
		})
	}

	const maxTimeoutMs = 120000
	if c.Watch.TimeoutMs > maxTimeoutMs {
		errors = append(errors, ValidationError{
			Field:   "watch.timeout_ms",
			Value:   c.Watch.TimeoutMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxTimeoutMs),
		})
	}

	if c.Watch.CommandCode <= 0 || c.Watch.CommandCode > 0xFFFF {
		errors = append(errors, ValidationError{
			Field:   "watch.command_code",
			Value:   c.Watch.CommandCode,
			Message: "must be between 1 and 65535",
		})
	}

	return errors
}

func (c *Config) validateTabHost() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.TabHost.ClassName) == "" {
		errors = append(errors, ValidationError{
			Field:   "tabhost.class_name",
			Value:   c.TabHost.ClassName,
			Message: "must not be empty",
		})
	}

	// Windows class names are limited to 256 characters
	if len(c.TabHost.ClassName) > 256 {
		errors = append(errors, ValidationError{
			Field:   "tabhost.class_name",
			Value:   c.TabHost.ClassName,
			Message: "must be at most 256 characters",
		})
	}

	if c.TabHost.MaxNodes <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tabhost.max_nodes",
			Value:   c.TabHost.MaxNodes,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateMerge() []ValidationError {
	var errors []ValidationError

	for i, pattern := range c.Merge.Exclude {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if _, err := glob.Compile(strings.ToLower(pattern)); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("merge.exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if levels := logLevels(); c.Logging.Level != "" && !slices.Contains(levels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(levels, ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		})
	}

	if !slices.Contains(ValidColorModes(), c.Output.Color) {
		errors = append(errors, ValidationError{
			Field:   "output.color",
			Value:   c.Output.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	return errors
}
