// Package notion files summaries into a Notion database: one page per
// document, with the markdown body converted to typed blocks.
package notion

import (
	"strings"
	"unicode/utf8"

	"github.com/jomei/notionapi"

	"github.com/kherring/docbrief/markdown"
)

// Notion rejects rich text entries longer than 2000 characters.
const richTextLimit = 2000

// Blocks converts parsed markdown blocks to their Notion wire form, in
// order.
func Blocks(blocks []markdown.Block) notionapi.Blocks {
	out := make(notionapi.Blocks, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, wireBlock(b))
	}
	return out
}

func wireBlock(b markdown.Block) notionapi.Block {
	switch b.Type {
	case markdown.Heading1:
		return notionapi.NewHeading1Block(notionapi.Heading{RichText: richText(b.Runs)})
	case markdown.Heading2:
		return notionapi.NewHeading2Block(notionapi.Heading{RichText: richText(b.Runs)})
	case markdown.Heading3:
		return notionapi.NewHeading3Block(notionapi.Heading{RichText: richText(b.Runs)})
	case markdown.BulletItem:
		return notionapi.NewBulletedListItemBlock(notionapi.ListItem{RichText: richText(b.Runs)})
	case markdown.NumberedItem:
		return notionapi.NewNumberedListItemBlock(notionapi.ListItem{RichText: richText(b.Runs)})
	case markdown.Code:
		var content []notionapi.RichText
		for _, piece := range pieces(strings.Join(b.Lines, "\n")) {
			content = append(content, *notionapi.NewTextRichText(piece))
		}
		return &notionapi.CodeBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeCode,
			},
			Code: notionapi.Code{
				RichText: content,
				Language: b.Language,
			},
		}
	default:
		return notionapi.NewParagraphBlock(notionapi.Paragraph{RichText: richText(b.Runs)})
	}
}

// Plain runs get no annotations object at all, keeping the wire form
// minimal. A run longer than the per-entry limit becomes consecutive
// entries sharing the run's annotations.
func richText(runs []markdown.TextRun) []notionapi.RichText {
	out := make([]notionapi.RichText, 0, len(runs))
	for _, run := range runs {
		for _, piece := range pieces(run.Text) {
			rt := notionapi.NewTextRichText(piece)
			if run.Bold {
				rt = rt.AnnotateBold()
			}
			if run.Italic {
				rt = rt.AnnotateItalic()
			}
			if run.Strikethrough {
				rt = rt.AnnotateStrikethrough()
			}
			out = append(out, *rt)
		}
	}
	return out
}

func pieces(text string) []string {
	if utf8.RuneCountInString(text) <= richTextLimit {
		return []string{text}
	}
	return markdown.Chunk(text, richTextLimit)
}
