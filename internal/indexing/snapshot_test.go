package indexing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/job-assistant/internal/types"
)

func i64(v int64) *int64 { return &v }

func sampleJob() *types.JobRecord {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &types.JobRecord{
		ID:    42,
		URL:   "https://www.topcv.vn/viec-lam/backend-engineer/42",
		Title: "Backend Engineer (Golang)",
		Salary: types.Salary{
			Min: i64(20_000_000),
			Max: i64(35_000_000),
		},
		Experience: types.Experience{RawText: "2 năm"},
		Company:    types.Company{Name: "Công ty TNHH ABC"},
		General: types.GeneralInfo{
			Seniority: "Nhân viên",
			WorkType:  "Toàn thời gian",
		},
		Locations: []string{"Hà Nội", "Hồ Chí Minh"},
		Sections: []types.Section{
			{Type: types.SectionRequirements, Text: "Thành thạo Go và PostgreSQL."},
			{Type: types.SectionDescription, Text: "Xây dựng API cho nền tảng tuyển dụng."},
			{Type: types.SectionBenefits, Text: "   "},
		},
		Deadline: &deadline,
	}
}

func TestBuildSnapshot_ActiveBeforeDeadline(t *testing.T) {
	job := sampleJob()
	snap := BuildSnapshot(job, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, snap.IsActive)
	assert.Equal(t, int64(42), snap.JobID)
	assert.Equal(t, "topcv", snap.Source)
}

func TestBuildSnapshot_InactiveAfterDeadline(t *testing.T) {
	job := sampleJob()
	snap := BuildSnapshot(job, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))

	assert.False(t, snap.IsActive)
}

func TestBuildSnapshot_NoDeadlineIsActive(t *testing.T) {
	job := sampleJob()
	job.Deadline = nil
	snap := BuildSnapshot(job, time.Now())

	assert.True(t, snap.IsActive)
}

func TestBuildSnapshot_SkipsBlankSections(t *testing.T) {
	snap := BuildSnapshot(sampleJob(), time.Now())

	require.Len(t, snap.Sections, 2)
	assert.Contains(t, snap.Sections, types.SectionDescription)
	assert.Contains(t, snap.Sections, types.SectionRequirements)
	assert.NotContains(t, snap.Sections, types.SectionBenefits)
}

func TestOverviewContent_RendersAllKnownFields(t *testing.T) {
	snap := BuildSnapshot(sampleJob(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	content := OverviewContent(snap)

	assert.Contains(t, content, "Tiêu đề: Backend Engineer (Golang)")
	assert.Contains(t, content, "Công ty: Công ty TNHH ABC")
	assert.Contains(t, content, "Địa điểm: Hà Nội | Hồ Chí Minh")
	assert.Contains(t, content, "Thu nhập: từ 20.000.000 VND đến 35.000.000 VND /tháng")
	assert.Contains(t, content, "Kinh nghiệm: 2 năm")
	assert.Contains(t, content, "Cấp bậc: Nhân viên")
	assert.Contains(t, content, "Hình thức làm việc: Toàn thời gian")
	assert.Contains(t, content, "Hạn nộp: 2026-10-01T00:00:00Z")
}

func TestOverviewContent_OmitsEmptyFields(t *testing.T) {
	snap := types.JobSnapshot{Title: "Kế toán"}
	content := OverviewContent(snap)

	assert.Equal(t, "Tiêu đề: Kế toán", content)
}

func TestSectionContent_CarriesJobHeader(t *testing.T) {
	snap := BuildSnapshot(sampleJob(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	content := SectionContent(snap, types.SectionRequirements, "Thành thạo Go và PostgreSQL.")

	assert.Contains(t, content, "Công việc: Backend Engineer (Golang)")
	assert.Contains(t, content, "Công ty: Công ty TNHH ABC")
	assert.Contains(t, content, "Mục: Yêu cầu ứng viên")
	assert.Contains(t, content, "Nội dung: Thành thạo Go và PostgreSQL.")
}
