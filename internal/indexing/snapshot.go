package indexing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jobfinder/job-assistant/internal/salary"
	"github.com/jobfinder/job-assistant/internal/types"
)

// BuildSnapshot builds the denormalized metadata stored with every document
// of a job. A job counts as active when it has no deadline or the deadline
// has not passed yet.
func BuildSnapshot(job *types.JobRecord, now time.Time) types.JobSnapshot {
	snap := types.JobSnapshot{
		JobID:      job.ID,
		URL:        job.URL,
		Title:      job.Title,
		Salary:     job.Salary,
		Locations:  job.Locations,
		Experience: job.Experience,
		Company:    job.Company,
		General:    job.General,
		Deadline:   job.Deadline,
		CrawledAt:  job.CrawledAt,
		IsActive:   job.Deadline == nil || !job.Deadline.Before(now),
		Source:     "topcv",
	}

	if len(job.Sections) > 0 {
		snap.Sections = make(map[types.SectionType]string, len(job.Sections))
		for _, s := range job.Sections {
			if strings.TrimSpace(s.Text) != "" {
				snap.Sections[s.Type] = s.Text
			}
		}
	}
	return snap
}

// OverviewContent renders the single per-job overview document: a compact
// human-readable summary of title, company, locations, salary, experience,
// and categorical attributes. Fields with no value are omitted entirely.
func OverviewContent(snap types.JobSnapshot) string {
	lines := []string{"Tiêu đề: " + snap.Title}

	if snap.Company.Name != "" {
		lines = append(lines, "Công ty: "+snap.Company.Name)
	}
	if len(snap.Locations) > 0 {
		lines = append(lines, "Địa điểm: "+strings.Join(snap.Locations, " | "))
	}
	if line := salary.Line(snap.Salary); line != "" {
		lines = append(lines, line)
	}
	if snap.Experience.RawText != "" {
		lines = append(lines, "Kinh nghiệm: "+snap.Experience.RawText)
	} else if snap.Experience.Months != nil {
		lines = append(lines, fmt.Sprintf("Kinh nghiệm: từ %d tháng trở lên", *snap.Experience.Months))
	}
	if snap.General.Seniority != "" {
		lines = append(lines, "Cấp bậc: "+snap.General.Seniority)
	}
	if snap.General.Education != "" {
		lines = append(lines, "Học vấn: "+snap.General.Education)
	}
	if snap.General.Headcount != "" {
		lines = append(lines, "Số lượng tuyển: "+snap.General.Headcount)
	}
	if snap.General.WorkType != "" {
		lines = append(lines, "Hình thức làm việc: "+snap.General.WorkType)
	}
	if snap.Deadline != nil {
		lines = append(lines, "Hạn nộp: "+snap.Deadline.Format(time.RFC3339))
	}

	return strings.Join(lines, "\n")
}

// SectionContent renders one section chunk document. The chunk is prefixed
// with the same denormalized job header used in the overview, so the chunk
// stays query-relevant on its own without the overview for context.
func SectionContent(snap types.JobSnapshot, sectionType types.SectionType, chunkText string) string {
	lines := []string{"Công việc: " + snap.Title}

	if snap.Company.Name != "" {
		lines = append(lines, "Công ty: "+snap.Company.Name)
	}
	if len(snap.Locations) > 0 {
		lines = append(lines, "Địa điểm: "+strings.Join(snap.Locations, " | "))
	}
	if line := salary.Line(snap.Salary); line != "" {
		lines = append(lines, line)
	}
	lines = append(lines, "Mục: "+sectionType.Label())
	if snap.Deadline != nil {
		lines = append(lines, "Hạn nộp: "+snap.Deadline.Format(time.RFC3339))
	}
	lines = append(lines, "Nội dung: "+chunkText)

	return strings.Join(lines, "\n")
}
