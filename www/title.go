package www

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// HtmlTitle returns the text of the document's first <title> element, or
// the empty string when there is none. Tokenizing stops as soon as the
// title is found, so large documents cost little.
func HtmlTitle(doc []byte) string {
	z := html.NewTokenizer(bytes.NewReader(doc))
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "title" {
				inTitle = true
			}
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(z.Token().Data)
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}
