package markdown

import "strings"

// DefaultChunkSize bounds chunk length for callers that do not have a
// specific transport limit in mind.
const DefaultChunkSize = 2000

// Chunk splits content into pieces of at most size characters, cutting at
// the last space before the limit so words stay whole. A single word longer
// than size is split at the limit; that is the only case where a word is
// broken. Sizes below one fall back to DefaultChunkSize.
func Chunk(content string, size int) []string {
	if size < 1 {
		size = DefaultChunkSize
	}

	var chunks []string
	remaining := []rune(content)
	for len(remaining) > 0 {
		if len(remaining) <= size {
			chunks = append(chunks, string(remaining))
			break
		}
		cut := size
		if last := lastSpace(remaining[:size]); last > 0 {
			cut = last
		}
		chunks = append(chunks, strings.TrimSpace(string(remaining[:cut])))
		remaining = []rune(strings.TrimSpace(string(remaining[cut:])))
	}
	return chunks
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
