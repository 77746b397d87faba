package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRetrievalQuery_NoHistory(t *testing.T) {
	assert.Equal(t, "lương bao nhiêu", BuildRetrievalQuery("  lương bao nhiêu ", nil))
}

func TestBuildRetrievalQuery_AppendsRecentTurns(t *testing.T) {
	history := []Turn{
		{Role: "user", Content: "tìm việc backend"},
		{Role: "assistant", Content: "Mình tìm thấy 3 job backend."},
	}
	got := BuildRetrievalQuery("công việc thứ 2 thế nào", history)

	assert.Equal(t, "công việc thứ 2 thế nào | Ngữ cảnh trước đó: tìm việc backend | Mình tìm thấy 3 job backend.", got)
}

func TestBuildRetrievalQuery_OnlyLastFourTurns(t *testing.T) {
	history := []Turn{
		{Content: "một"}, {Content: "hai"}, {Content: "ba"},
		{Content: "bốn"}, {Content: "năm"}, {Content: "sáu"},
	}
	got := BuildRetrievalQuery("tiếp", history)

	assert.NotContains(t, got, "một")
	assert.NotContains(t, got, "hai")
	assert.Contains(t, got, "ba | bốn | năm | sáu")
}

func TestBuildRetrievalQuery_SkipsBlankTurns(t *testing.T) {
	history := []Turn{{Content: "   "}, {Content: ""}}
	assert.Equal(t, "câu hỏi", BuildRetrievalQuery("câu hỏi", history))
}

func TestBuildRetrievalQuery_CapsHistoryLength(t *testing.T) {
	history := []Turn{{Content: strings.Repeat("a", 2000)}}
	got := BuildRetrievalQuery("hỏi", history)

	assert.LessOrEqual(t, len([]rune(got)), len([]rune("hỏi | Ngữ cảnh trước đó: "))+historyMaxChars)
}

func TestBuildRetrievalQuery_EmptyMessageUsesHistoryAlone(t *testing.T) {
	history := []Turn{{Content: "việc kế toán"}}
	assert.Equal(t, "việc kế toán", BuildRetrievalQuery("", history))
}

func TestIsGreetingOnly(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"xin chào", true},
		{"Hello!", true},
		{"chào anh ạ", true},
		{"", false},
		{"chào bạn, tìm giúp mình việc backend", false},
		{"hi, lương job này bao nhiêu", false},
		{"mức lương thế nào", false},
		{"tôi cần tư vấn", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGreetingOnly(tt.message))
		})
	}
}
