package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionLabel_Known(t *testing.T) {
	assert.Equal(t, "Mô tả công việc", SectionDescription.Label())
	assert.Equal(t, "Quyền lợi", SectionBenefits.Label())
}

func TestSectionLabel_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "Che Do Thu Viec", SectionType("che_do_thu_viec").Label())
}

func TestOrderedSections(t *testing.T) {
	job := JobRecord{Sections: []Section{
		{Type: SectionBenefits, Text: "b"},
		{Type: "custom_section", Text: "c"},
		{Type: SectionDescription, Text: "d"},
	}}

	ordered := job.OrderedSections()
	require.Len(t, ordered, 3)
	assert.Equal(t, SectionDescription, ordered[0].Type)
	assert.Equal(t, SectionBenefits, ordered[1].Type)
	assert.Equal(t, SectionType("custom_section"), ordered[2].Type)
}

func TestJobRecordSection(t *testing.T) {
	job := JobRecord{Sections: []Section{{Type: SectionIncome, Text: "15-20 triệu"}}}

	s, ok := job.Section(SectionIncome)
	require.True(t, ok)
	assert.Equal(t, "15-20 triệu", s.Text)

	_, ok = job.Section(SectionPerks)
	assert.False(t, ok)
}

func TestSalaryIsZero(t *testing.T) {
	assert.True(t, Salary{}.IsZero())
	assert.False(t, Salary{RawText: "Thoả thuận"}.IsZero())
	min := int64(1)
	assert.False(t, Salary{Min: &min}.IsZero())
}

func TestIntentValid(t *testing.T) {
	assert.True(t, IntentSearchJobs.Valid())
	assert.True(t, IntentOther.Valid())
	assert.False(t, Intent("browse").Valid())
	assert.False(t, Intent("").Valid())
}

func TestQueryFiltersIsEmpty(t *testing.T) {
	assert.True(t, DefaultQueryFilters().IsEmpty())

	f := DefaultQueryFilters()
	f.Locations = []string{"Hà Nội"}
	assert.False(t, f.IsEmpty())

	min := int64(1_000_000)
	f = DefaultQueryFilters()
	f.MinSalaryVND = &min
	assert.False(t, f.IsEmpty())
}
