package markdown

import (
	"strings"
	"testing"

	"gotest.tools/assert"
)

func TestChunkShortInput(t *testing.T) {
	chunks := Chunk("hello world", 100)
	assert.DeepEqual(t, []string{"hello world"}, chunks)
}

func TestChunkEmptyInput(t *testing.T) {
	chunks := Chunk("", 100)
	assert.Equal(t, 0, len(chunks))
}

func TestChunkSplitsOnSpace(t *testing.T) {
	// the cut lands on the last space within the window
	chunks := Chunk("aaa bbb ccc", 7)
	assert.DeepEqual(t, []string{"aaa", "bbb ccc"}, chunks)
}

func TestChunkLongWordHardSplit(t *testing.T) {
	// no space to break on, so the cut lands mid-word
	chunks := Chunk("abcdefghij", 4)
	assert.DeepEqual(t, []string{"abcd", "efgh", "ij"}, chunks)
}

func TestChunkLeadingSpaceNotUsed(t *testing.T) {
	// a space at position zero would make an empty chunk; split hard instead
	chunks := Chunk(" abcdef", 3)
	assert.DeepEqual(t, []string{"ab", "cde", "f"}, chunks)
}

func TestChunkExactSize(t *testing.T) {
	chunks := Chunk("abcd", 4)
	assert.DeepEqual(t, []string{"abcd"}, chunks)
}

func TestChunkTrimsBoundaries(t *testing.T) {
	chunks := Chunk("one two three four", 8)
	assert.DeepEqual(t, []string{"one two", "three", "four"}, chunks)
}

func TestChunkDefaultSize(t *testing.T) {
	content := strings.Repeat("word ", 1000)
	chunks := Chunk(content, 0)
	assert.Assert(t, len(chunks) > 1)
	for _, c := range chunks {
		assert.Assert(t, len([]rune(c)) <= DefaultChunkSize)
	}
}

func TestChunkCountsRunes(t *testing.T) {
	// four runes fit in a size-4 chunk even though each is multiple bytes
	chunks := Chunk("ééééé", 4)
	assert.DeepEqual(t, []string{"éééé", "é"}, chunks)
}

func TestChunkNothingLost(t *testing.T) {
	content := "the quick brown fox jumps over the lazy dog"
	chunks := Chunk(content, 10)
	assert.Equal(t, content, strings.Join(chunks, " "))
}
