package domain

import (
	"fmt"
	"strings"
)

// DefaultBlank is the blank symbol used when a definition does not declare one.
const DefaultBlank Symbol = "B"

// Symbol is a single tape character.
type Symbol string

// State is a state label of the finite control.
type State string

// Direction is the head movement applied after a write.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
	Stay  Direction = "S"
)

// Offset returns the head displacement for the direction.
func (d Direction) Offset() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Valid reports whether d is one of Left, Right or Stay.
func (d Direction) Valid() bool {
	return d == Left || d == Right || d == Stay
}

// ParseDirection accepts "L", "R", "S" and the words left, right, stay (any case).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "s", "stay", "n", "none":
		return Stay, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}
