package chat

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	inlineBulletRe    = regexp.MustCompile(`(\S)[ \t]*-[ \t]+`)
	blankRunsRe       = regexp.MustCompile(`\n{3,}`)
)

// CleanAnswer normalizes raw model output into presentable plain text:
// unicode bullets become "- ", run-together bullets get their own lines,
// stray whitespace and blank-line runs collapse. Rendering for a particular
// UI is the caller's concern.
func CleanAnswer(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "•", "- ")
	text = strings.ReplaceAll(text, " ", " ")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")

	// Models sometimes run bullets together on one line; put each on its own.
	text = inlineBulletRe.ReplaceAllString(text, "$1\n- ")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
