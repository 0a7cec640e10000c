// Package markdown converts the subset of markdown that appears in model
// summaries into typed blocks matching Notion's content model.
package markdown

import (
	"regexp"
	"strings"
)

// TextRun is one styled or plain span of inline text within a block.
type TextRun struct {
	Text          string
	Bold          bool
	Italic        bool
	Strikethrough bool
}

// BlockType values match the destination service's block type tags.
type BlockType string

const (
	Heading1     BlockType = "heading_1"
	Heading2     BlockType = "heading_2"
	Heading3     BlockType = "heading_3"
	BulletItem   BlockType = "bulleted_list_item"
	NumberedItem BlockType = "numbered_list_item"
	Code         BlockType = "code"
	Paragraph    BlockType = "paragraph"
)

// DefaultLanguage is stamped on code blocks whose opening fence carries no
// language tag.
const DefaultLanguage = "plain text"

// Block is one structural unit of destination content. Headings carry a
// single plain run; code blocks carry Lines and Language instead of runs.
type Block struct {
	Type     BlockType
	Runs     []TextRun
	Lines    []string
	Language string
}

// Bold alternatives are listed before italic: at any position `**` and `__`
// must win over their single-character forms, so **_x_** parses as a bold
// span rather than two italic stars.
var inlineSpan = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__|~~(.+?)~~|_(.+?)_|\*(.+?)\*`)

// ParseInline splits one line of text into styled runs. The runs cover the
// whole input in order with no gaps; a line without any emphasis markers
// comes back as a single plain run, even when it is empty.
func ParseInline(text string) []TextRun {
	var runs []TextRun
	last := 0
	for _, m := range inlineSpan.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			runs = append(runs, TextRun{Text: text[last:m[0]]})
		}
		switch {
		case m[2] >= 0:
			runs = append(runs, TextRun{Text: text[m[2]:m[3]], Bold: true})
		case m[4] >= 0:
			runs = append(runs, TextRun{Text: text[m[4]:m[5]], Bold: true})
		case m[6] >= 0:
			runs = append(runs, TextRun{Text: text[m[6]:m[7]], Strikethrough: true})
		case m[8] >= 0:
			runs = append(runs, TextRun{Text: text[m[8]:m[9]], Italic: true})
		case m[10] >= 0:
			runs = append(runs, TextRun{Text: text[m[10]:m[11]], Italic: true})
		}
		last = m[1]
	}
	if last < len(text) {
		runs = append(runs, TextRun{Text: text[last:]})
	}
	if len(runs) == 0 {
		runs = []TextRun{{Text: text}}
	}
	return runs
}

type parserState int

const (
	stateScanning parserState = iota
	stateInFence
)

var numberedMarker = regexp.MustCompile(`^\d+\.\s`)

// ParseBlocks converts a markdown document into an ordered block sequence.
// It never fails: unrecognized lines degrade to paragraphs, and a code
// fence left open absorbs everything through the end of the input.
func ParseBlocks(text string) []Block {
	var blocks []Block
	state := stateScanning
	var code []string
	var language string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if state == stateInFence {
			if strings.HasPrefix(trimmed, "```") {
				// closing fence is consumed, not kept
				blocks = append(blocks, Block{Type: Code, Lines: code, Language: language})
				code = nil
				state = stateScanning
			} else {
				code = append(code, line)
			}
			continue
		}

		switch {
		case trimmed == "":
			// blank lines separate blocks but produce nothing
		case strings.HasPrefix(trimmed, "### "):
			blocks = append(blocks, heading(Heading3, trimmed[4:]))
		case strings.HasPrefix(trimmed, "## "):
			blocks = append(blocks, heading(Heading2, trimmed[3:]))
		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, heading(Heading1, trimmed[2:]))
		case strings.HasPrefix(trimmed, "- "):
			blocks = append(blocks, Block{Type: BulletItem, Runs: ParseInline(strings.TrimSpace(trimmed[2:]))})
		case numberedMarker.MatchString(trimmed):
			blocks = append(blocks, Block{Type: NumberedItem, Runs: ParseInline(strings.TrimSpace(numberedMarker.ReplaceAllString(trimmed, "")))})
		case strings.HasPrefix(trimmed, "```"):
			language = fenceLanguage(trimmed)
			state = stateInFence
		default:
			if runs := ParseInline(trimmed); len(runs) > 0 {
				blocks = append(blocks, Block{Type: Paragraph, Runs: runs})
			}
		}
	}

	// an unterminated fence absorbs the rest of the document
	if state == stateInFence {
		blocks = append(blocks, Block{Type: Code, Lines: code, Language: language})
	}

	return blocks
}

// Headings are plain text only: emphasis markers inside a heading are not
// interpreted.
func heading(t BlockType, text string) Block {
	return Block{Type: t, Runs: []TextRun{{Text: strings.TrimSpace(text)}}}
}

func fenceLanguage(fence string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(fence, "```"))
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0]
	}
	return DefaultLanguage
}
