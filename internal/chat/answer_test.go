package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAnswer_Empty(t *testing.T) {
	assert.Equal(t, "", CleanAnswer(""))
	assert.Equal(t, "", CleanAnswer("   \n  "))
}

func TestCleanAnswer_TrimsAndCollapsesSpaces(t *testing.T) {
	got := CleanAnswer("  Mức lương   khoảng\u00a015 triệu.  ")
	assert.Equal(t, "Mức lương khoảng 15 triệu.", got)
}

func TestCleanAnswer_UnifiesBullets(t *testing.T) {
	got := CleanAnswer("Các job phù hợp: • Job A • Job B")
	assert.Equal(t, "Các job phù hợp:\n- Job A\n- Job B", got)
}

func TestCleanAnswer_SplitsInlineBullets(t *testing.T) {
	got := CleanAnswer("Gợi ý: - Backend Engineer - Tester")
	assert.Equal(t, "Gợi ý:\n- Backend Engineer\n- Tester", got)
}

func TestCleanAnswer_CollapsesBlankRuns(t *testing.T) {
	got := CleanAnswer("Một.\n\n\n\nHai.")
	assert.Equal(t, "Một.\n\nHai.", got)
}

func TestCleanAnswer_KeepsJobLinksVerbatim(t *testing.T) {
	got := CleanAnswer("Xem tại /jobs/123 nhé")
	assert.Equal(t, "Xem tại /jobs/123 nhé", got)
}
