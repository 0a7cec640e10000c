package markdown

import (
	"regexp"
	"strings"
)

var headingMarker = regexp.MustCompile(`^#+\s*`)

// Title returns the text of the first heading line anywhere in the
// document, with the leading # run stripped. The second return is false
// when the document has no heading at all.
func Title(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(headingMarker.ReplaceAllString(trimmed, "")), true
		}
	}
	return "", false
}

// Section returns the body of the named section: every non-blank line
// between a heading whose text equals name (any level, case-insensitive)
// and the next heading. The second return is false when the heading never
// occurs or the section has no content.
func Section(text, name string) (string, bool) {
	marker := regexp.MustCompile(`(?i)^#+\s*` + regexp.QuoteMeta(name) + `\s*$`)

	var body []string
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if marker.MatchString(trimmed) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			break
		}
		if trimmed != "" {
			body = append(body, line)
		}
	}

	if len(body) == 0 {
		return "", false
	}
	return strings.TrimSpace(strings.Join(body, "\n")), true
}
