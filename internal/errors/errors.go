// Package errors provides centralized error definitions for tabmerge.
//
// Components never let a host fault escape their boundary as a panic or an
// unstructured error: they return one of the typed errors below, or a plain
// boolean/empty value when the contract says so. Only the command layer turns
// accumulated errors into a process exit code through [ExitError].
//
// # Error Types
//
// Domain-specific errors:
//   - HostError: a failure talking to the file-browser host (COM, user32, shell)
//
// Semantic errors:
//   - NotFoundError: a window, control or tab could not be found
//   - ValidationError: invalid input or configuration
//   - TimeoutError: a bounded wait elapsed
//
// Exit mapping:
//   - ExitError: wraps any error with the exit code the CLI should return
//
// # Usage
//
//	err := errors.NewHostError("navigate failed", cause).WithWindow(hwnd)
//	if errors.Is(err, errors.ErrHostUnavailable) { ... }
//
//	return errors.NewExitError(errors.ExitTabHostMissing, errors.ErrTabHostNotFound)
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions so callers only import this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Host-related sentinel errors
var (
	// ErrHostUnavailable indicates the automation surface could not be reached.
	ErrHostUnavailable = New("host automation surface unavailable")
	// ErrUnsupportedPlatform indicates the host adapter is not built for this OS.
	ErrUnsupportedPlatform = New("file browser automation is only supported on windows")
	// ErrTabHostNotFound indicates the target window has no tab-host control.
	ErrTabHostNotFound = New("tab host control not found in target window")
	// ErrNavigateFailed indicates a tab refused to navigate.
	ErrNavigateFailed = New("navigation failed")
	// ErrLaunchFailed indicates the OS-level open-path launch failed.
	ErrLaunchFailed = New("shell launch failed")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrEmptyPath indicates an empty folder path argument.
	ErrEmptyPath = New("empty folder path")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// TabmergeError is implemented by every error type in this package.
type TabmergeError interface {
	error
	Unwrap() error
	Is(target error) bool
	Severity() Severity
	IsRetryable() bool
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) IsRetryable() bool {
	return e.retryable
}

func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// HostError represents a failure reported by the file-browser host.
//
// Example:
//
//	err := errors.NewHostError("Navigate2 failed", cause).WithWindow(0x3012C).WithOperation("navigate")
//	fmt.Println(err) // "host error [hwnd=0x3012C, op=navigate]: Navigate2 failed: ..."
type HostError struct {
	baseError
	Window    uintptr
	Operation string
}

// NewHostError creates a new HostError.
func NewHostError(message string, cause error) *HostError {
	return &HostError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: false,
		},
	}
}

// WithWindow adds the top-level window handle to the error context.
func (e *HostError) WithWindow(hwnd uintptr) *HostError {
	e.Window = hwnd
	return e
}

// WithOperation names the host call that failed.
func (e *HostError) WithOperation(op string) *HostError {
	e.Operation = op
	return e
}

// WithSeverity sets the error severity.
func (e *HostError) WithSeverity(s Severity) *HostError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *HostError) Error() string {
	var parts []string
	if e.Window != 0 {
		parts = append(parts, fmt.Sprintf("hwnd=0x%X", e.Window))
	}
	if e.Operation != "" {
		parts = append(parts, "op="+e.Operation)
	}

	prefix := "host error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("host error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *HostError) Is(target error) bool {
	if _, ok := target.(*HostError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("tab host", "0x3012C")
//	fmt.Println(err) // "tab host '0x3012C' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or configuration.
//
// Example:
//
//	err := errors.NewValidationError("folder path is empty").WithField("path")
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	prefix := "validation error"
	if e.Field != "" {
		prefix = fmt.Sprintf("validation error [field=%s]", e.Field)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents a bounded wait that elapsed.
//
// Example:
//
//	err := errors.NewTimeoutError("waiting for new tab", 8*time.Second)
//	fmt.Println(err) // "timeout error: waiting for new tab (timeout: 8s)"
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var tmErr TabmergeError
	if As(err, &tmErr) {
		return tmErr.IsRetryable()
	}
	return Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to print verbatim.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return IsUserFacing(exitErr.Err)
	}

	var tmErr TabmergeError
	if As(err, &tmErr) {
		return tmErr.IsUserFacing()
	}

	return Is(err, ErrTabHostNotFound) || Is(err, ErrEmptyPath) ||
		Is(err, ErrUnsupportedPlatform) || Is(err, ErrLaunchFailed)
}

// GetSeverity returns the severity level of the error.
// Errors outside this package default to SeverityError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var tmErr TabmergeError
	if As(err, &tmErr) {
		return tmErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
