package runtime_test

import (
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestTape_BlankInvariant(t *testing.T) {
	tape := runtime.NewTape("B", domain.Tokenize("ab"))

	for _, pos := range []int{-100, -1, 2, 3, 1 << 20} {
		assert.Equal(t, domain.Symbol("B"), tape.Read(pos), "position %d", pos)
	}

	tape.Write(-5, "X")
	tape.Write(10, "Y")

	for _, pos := range []int{-6, -4, -1, 2, 9, 11} {
		assert.Equal(t, domain.Symbol("B"), tape.Read(pos), "position %d after writes", pos)
	}
	assert.Equal(t, domain.Symbol("a"), tape.Read(0))
	assert.Equal(t, domain.Symbol("X"), tape.Read(-5))
}

func TestTape_Extent(t *testing.T) {
	tape := runtime.NewTape("B", nil)
	_, _, ok := tape.Extent()
	assert.False(t, ok)

	tape.Write(3, "a")
	tape.Write(-2, "b")
	lo, hi, ok := tape.Extent()
	assert.True(t, ok)
	assert.Equal(t, -2, lo)
	assert.Equal(t, 3, hi)
}

func TestTape_Render(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		writes      map[int]domain.Symbol
		head        int
		left, right string
	}{
		{name: "Empty Tape", input: "", head: 0, left: "", right: "B"},
		{name: "Head At Origin", input: "abc", head: 0, left: "", right: "abc"},
		{name: "Head In Middle", input: "abc", head: 1, left: "a", right: "bc"},
		{name: "Head Past Right End", input: "ab", head: 2, left: "ab", right: "B"},
		{name: "Head Far Right", input: "ab", head: 4, left: "abBB", right: "B"},
		{name: "Head Left Of Origin", input: "ab", head: -1, left: "", right: "Bab"},
		{
			name:   "Written Left Of Origin",
			input:  "ab",
			writes: map[int]domain.Symbol{-2: "X"},
			head:   0,
			left:   "XB",
			right:  "ab",
		},
		{name: "Unwritten Tape Head Right", input: "", head: 2, left: "BB", right: "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tape := runtime.NewTape("B", domain.Tokenize(tt.input))
			for pos, sym := range tt.writes {
				tape.Write(pos, sym)
			}
			left, right := tape.Render(tt.head)
			assert.Equal(t, tt.left, left)
			assert.Equal(t, tt.right, right)
		})
	}
}

func TestTape_Content(t *testing.T) {
	tape := runtime.NewTape("B", nil)
	assert.Equal(t, "B", tape.Content())

	tape.Write(0, "B")
	assert.Equal(t, "B", tape.Content(), "only blanks written")

	tape = runtime.NewTape("B", domain.Tokenize("XXYY"))
	tape.Write(4, "B")
	tape.Write(-1, "B")
	assert.Equal(t, "XXYY", tape.Content())

	tape.Write(6, "Z")
	assert.Equal(t, "XXYYBBZ", tape.Content(), "inner blanks are kept")
}
