package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("  short text  ", 500, 50)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextOverlappingWindows(t *testing.T) {
	text := strings.Repeat("a", 10)
	chunks := SplitText(text, 4, 1)

	// Stride is chunkSize-overlap = 3: windows start at 0, 3, 6, 9.
	assert.Equal(t, []string{"aaaa", "aaaa", "aaaa", "a"}, chunks)
}

func TestSplitTextSkipsWhitespaceOnlyChunks(t *testing.T) {
	text := "abcd" + strings.Repeat(" ", 10) + "wxyz"
	chunks := SplitText(text, 4, 0)

	for _, c := range chunks {
		assert.NotEmpty(t, c)
	}
	assert.Contains(t, chunks, "abcd")
	assert.Contains(t, chunks, "wxyz")
}

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Empty(t, SplitText("", 500, 50))
	assert.Empty(t, SplitText("   ", 500, 50))
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	// Degenerate overlap falls back to non-overlapping windows instead of looping.
	chunks := SplitText(strings.Repeat("b", 12), 4, 4)
	assert.Equal(t, []string{"bbbb", "bbbb", "bbbb"}, chunks)
}
