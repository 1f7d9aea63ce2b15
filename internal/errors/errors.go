package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrServerUnreachable = errors.New("player service unreachable")
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrInvalidResponse   = errors.New("invalid response")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrTimeout           = errors.New("request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// VortexError wraps an error with a user-friendly suggestion.
type VortexError struct {
	Err        error
	Suggestion string
}

func (e *VortexError) Error() string {
	return e.Err.Error()
}

func (e *VortexError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &VortexError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a VortexError with suggestion
	var vortexErr *VortexError
	if errors.As(err, &vortexErr) && vortexErr.Suggestion != "" {
		return vortexErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Connection errors
	if errors.Is(err, ErrServerUnreachable) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return "Check that the player service is running and server.base_url is correct"
	}

	if errors.Is(err, ErrTimeout) || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return "The player service is slow to answer. Try again or raise server.timeout"
	}

	// Endpoint errors
	if errors.Is(err, ErrUnexpectedStatus) && strings.Contains(errStr, "404") {
		return "Check the [endpoints] section of your configuration"
	}
	if errors.Is(err, ErrInvalidResponse) {
		return "The status endpoint did not return player JSON. Check endpoints.status"
	}

	if errors.Is(err, ErrUnknownCommand) {
		return "Valid commands are play-pause, next, prev, random and repeat"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'vortex config init' to create a configuration file"
	}

	// Server errors
	if errors.Is(err, ErrUnexpectedStatus) && strings.Contains(errStr, "50") {
		return "The player service is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
