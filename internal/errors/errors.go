package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrMalformed      = errors.New("malformed config")
	ErrUnknownField   = errors.New("unknown config field")
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrDeviceNotFound = errors.New("midi device not found")
	ErrNoDevices      = errors.New("no midi devices")
)

// KeyglowError wraps an error with a user-friendly suggestion.
type KeyglowError struct {
	Err        error
	Suggestion string
}

func (e *KeyglowError) Error() string {
	return e.Err.Error()
}

func (e *KeyglowError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &KeyglowError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var kgErr *KeyglowError
	if errors.As(err, &kgErr) && kgErr.Suggestion != "" {
		return kgErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Schema drift usually means the file was written by a newer keyglow
	if errors.Is(err, ErrUnknownField) {
		return "The config file has fields this version does not know. Upgrade keyglow or run 'keyglow config init --force'"
	}

	if errors.Is(err, ErrMalformed) {
		return "Fix the syntax error above or run 'keyglow config init --force' to start over"
	}

	if errors.Is(err, ErrInvalidConfig) {
		return "Run 'keyglow config validate' to see every problem"
	}

	if errors.Is(err, ErrConfigNotFound) || strings.Contains(errStr, "no such file") {
		return "Run 'keyglow config init' to create a config file"
	}

	if errors.Is(err, ErrDeviceNotFound) || errors.Is(err, ErrNoDevices) {
		return "Run 'keyglow devices' to see available MIDI inputs"
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
