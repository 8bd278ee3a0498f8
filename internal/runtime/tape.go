package runtime

import (
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Tape is an unbounded two-way tape stored sparsely.
// Positions never written read as blank, and negative positions need no
// re-indexing when the head moves left of the origin.
type Tape struct {
	blank   domain.Symbol
	cells   map[int]domain.Symbol
	min     int
	max     int
	written bool
}

// NewTape creates a tape with input written at positions 0..len(input)-1.
func NewTape(blank domain.Symbol, input []domain.Symbol) *Tape {
	t := &Tape{
		blank: blank,
		cells: make(map[int]domain.Symbol, len(input)),
	}
	for i, sym := range input {
		t.Write(i, sym)
	}
	return t
}

// Blank returns the blank symbol of the tape.
func (t *Tape) Blank() domain.Symbol {
	return t.blank
}

// Read returns the symbol at pos, or blank if pos was never written.
func (t *Tape) Read(pos int) domain.Symbol {
	if sym, ok := t.cells[pos]; ok {
		return sym
	}
	return t.blank
}

// Write stores sym at pos. It never fails.
func (t *Tape) Write(pos int, sym domain.Symbol) {
	t.cells[pos] = sym
	if !t.written {
		t.min, t.max, t.written = pos, pos, true
		return
	}
	t.min = min(t.min, pos)
	t.max = max(t.max, pos)
}

// Extent returns the leftmost and rightmost written positions.
// ok is false when nothing has been written yet.
func (t *Tape) Extent() (lo, hi int, ok bool) {
	return t.min, t.max, t.written
}

// Render splits the tape around head for an instantaneous description.
// left covers min(leftmost written, 0) up to head (exclusive); right covers head
// up to the rightmost written cell and always holds at least the cell under head.
func (t *Tape) Render(head int) (left, right string) {
	lo := 0
	if t.written && t.min < 0 {
		lo = t.min
	}
	hi := head
	if t.written && t.max > head {
		hi = t.max
	}
	return t.span(lo, head-1), t.span(head, hi)
}

// Content returns the written extent with leading and trailing blanks removed.
// A tape holding only blanks renders as a single blank.
func (t *Tape) Content() string {
	if !t.written {
		return string(t.blank)
	}
	lo, hi := t.min, t.max
	for lo <= hi && t.Read(lo) == t.blank {
		lo++
	}
	for hi >= lo && t.Read(hi) == t.blank {
		hi--
	}
	if lo > hi {
		return string(t.blank)
	}
	return t.span(lo, hi)
}

func (t *Tape) span(from, to int) string {
	if from > to {
		return ""
	}
	var sb strings.Builder
	for pos := from; pos <= to; pos++ {
		sb.WriteString(string(t.Read(pos)))
	}
	return sb.String()
}
