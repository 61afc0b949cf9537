package render

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	ugcOnce   sync.Once
	ugcPolicy *bluemonday.Policy

	boldSpan = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

func strict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func ugc() *bluemonday.Policy {
	ugcOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

// PlainText strips all markup from user-supplied text. Used before
// free-text answers are echoed back or fed into a prompt.
func PlainText(input string) string {
	return strings.TrimSpace(strict().Sanitize(input))
}

// VerdictHTML turns generated verdict text into minimal display HTML:
// **bold** spans become <strong>, blank lines split paragraphs, single
// newlines become <br>. The result passes a UGC sanitizer so the
// template can mark it safe.
func VerdictHTML(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	escaped := html.EscapeString(input)
	escaped = boldSpan.ReplaceAllString(escaped, "<strong>$1</strong>")

	var b strings.Builder
	for _, paragraph := range strings.Split(escaped, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(paragraph, "\n", "<br>"))
		b.WriteString("</p>\n")
	}
	return strings.TrimSpace(ugc().Sanitize(b.String()))
}
