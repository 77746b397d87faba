package indexing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitChunks splits text into chunks of at most maxChars characters,
// cutting only at sentence boundaries. Sentences are packed into a chunk
// until the next one would push it over the limit. A single sentence longer
// than maxChars is kept whole rather than split mid-sentence.
func SplitChunks(text string, maxChars int) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	if utf8.RuneCountInString(clean) <= maxChars {
		return []string{clean}
	}

	var chunks []string
	current := ""
	for _, sent := range splitSentences(clean) {
		switch {
		case current == "":
			current = sent
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(sent) <= maxChars:
			current += " " + sent
		default:
			chunks = append(chunks, current)
			current = sent
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// splitSentences cuts text after runs of sentence terminators (.!?) that are
// followed by whitespace or end the text.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}
		j := i + 1
		for j < len(text) && isTerminator(text[j]) {
			j++
		}
		if j < len(text) && !unicode.IsSpace(rune(text[j])) {
			// terminator inside a token ("v1.2", "e.g.x"), keep scanning
			i = j - 1
			continue
		}
		if sent := strings.TrimSpace(text[start:j]); sent != "" {
			out = append(out, sent)
		}
		for j < len(text) && unicode.IsSpace(rune(text[j])) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(text) {
		if sent := strings.TrimSpace(text[start:]); sent != "" {
			out = append(out, sent)
		}
	}
	return out
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
