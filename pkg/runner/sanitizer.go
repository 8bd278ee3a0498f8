package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds a single tape input (64KB).
	DefaultMaxInputSize = 64 * 1024
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "TURING_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("input contains invalid UTF-8 sequences")
	ErrControlCharacter = errors.New("input contains control characters")
)

// SanitizeInput checks an input string received from outside (CLI flag, HTTP body, MCP call)
// before it reaches the tape. Bad inputs are rejected rather than rewritten, since
// silently changing a tape would change the verdict. Spaces are kept: a space may
// be a tape symbol.
func SanitizeInput(input string) (string, error) {
	limit := getMaxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	for i, r := range input {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %U at byte %d", ErrControlCharacter, r, i)
		}
	}
	return input, nil
}

// SanitizeInputs applies SanitizeInput to every element, reporting the first failing index.
func SanitizeInputs(inputs []string) ([]string, error) {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		clean, err := SanitizeInput(in)
		if err != nil {
			return nil, fmt.Errorf("inputs[%d]: %w", i, err)
		}
		out[i] = clean
	}
	return out, nil
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
