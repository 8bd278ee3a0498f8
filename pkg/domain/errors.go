package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateRule is returned when two rules share the same (state, read) key.
	ErrDuplicateRule = errors.New("duplicate transition")

	// ErrUndeclaredState is returned when a definition references a state that is not declared.
	ErrUndeclaredState = errors.New("undeclared state")

	// ErrUndeclaredSymbol is returned when a symbol is outside the relevant alphabet.
	ErrUndeclaredSymbol = errors.New("undeclared symbol")

	// ErrInvalidDefinition covers the remaining structural problems of a definition.
	ErrInvalidDefinition = errors.New("invalid machine definition")

	// ErrRunNotFound is returned when a run ID cannot be found in a result store.
	ErrRunNotFound = errors.New("run not found")

	// ErrMachineNotFound is returned when a loader has no machine under the requested ID.
	ErrMachineNotFound = errors.New("machine not found")
)

// ConfigError reports a machine definition that can't be simulated.
// It is fatal for the definition and surfaces before any run starts.
type ConfigError struct {
	Key    string // Field or rule the problem was found in
	Detail string // Human-readable description
	Err    error  // One of the sentinel errors above
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v: %s", e.Key, e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError is a shorthand constructor.
func NewConfigError(cause error, key, format string, args ...any) *ConfigError {
	return &ConfigError{Key: key, Detail: fmt.Sprintf(format, args...), Err: cause}
}
