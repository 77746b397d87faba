package chat

import (
	"strconv"
	"strings"
)

// historyTailTurns and historyMaxChars bound how much conversation history
// is folded into the retrieval query. Too much history dilutes the
// embedding; too little loses references like "công việc thứ 2".
const (
	historyTailTurns = 4
	historyMaxChars  = 800
)

// Turn is one message in the conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildRetrievalQuery appends a compact tail of recent conversation turns to
// the current message, so follow-up questions ("mô tả công việc này") embed
// close to the jobs discussed earlier.
func BuildRetrievalQuery(message string, history []Turn) string {
	base := strings.TrimSpace(message)
	if len(history) == 0 {
		return base
	}

	start := len(history) - historyTailTurns
	if start < 0 {
		start = 0
	}
	var tail []string
	for _, t := range history[start:] {
		if c := strings.TrimSpace(t.Content); c != "" {
			tail = append(tail, c)
		}
	}
	if len(tail) == 0 {
		return base
	}

	historyText := strings.Join(tail, " | ")
	if runes := []rune(historyText); len(runes) > historyMaxChars {
		historyText = string(runes[len(runes)-historyMaxChars:])
	}

	if base == "" {
		return historyText
	}
	return base + " | Ngữ cảnh trước đó: " + historyText
}

var greetingKeywords = []string{
	"xin chào", "chào bạn", "chào anh", "chào chị",
	"hello", "hi", "alo", "chào", "hey",
}

var jobIntentKeywords = []string{
	"công việc", "job", "tuyển", "ứng tuyển", "việc làm", "lương", "tìm",
}

// IsGreetingOnly reports whether the message is a bare greeting with no job
// intent. Greetings get a canned introduction instead of a retrieval round
// trip.
func IsGreetingOnly(message string) bool {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return false
	}
	for _, k := range jobIntentKeywords {
		if strings.Contains(text, k) {
			return false
		}
	}
	for _, k := range greetingKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
