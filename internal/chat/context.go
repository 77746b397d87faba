package chat

import (
	"strings"

	"github.com/jobfinder/job-assistant/internal/salary"
	"github.com/jobfinder/job-assistant/internal/types"
)

// ContextJob is the per-job summary returned alongside the answer so the
// frontend can render job suggestion cards.
type ContextJob struct {
	JobID       int64    `json:"job_id"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Locations   string   `json:"locations"`
	SalaryText  string   `json:"salary_text"`
	URL         string   `json:"url"`
	Score       *float64 `json:"score,omitempty"`
}

// BuildContextText joins retrieved documents into the context block fed to
// the answer model. Each document gets a one-line header carrying the job id,
// title, company, salary and location so the model can cite them without
// digging through the chunk text.
func BuildContextText(docs []types.RetrievedDocument) string {
	parts := make([]string, 0, len(docs))
	for _, rd := range docs {
		meta := rd.Document.Metadata

		header := strings.TrimSpace("[JOB " + itoa(meta.JobID) + "] " + meta.Title + " – " + meta.Company.Name)

		var details []string
		if st := salary.Text(meta.Salary); st != "" {
			details = append(details, "lương: "+st)
		}
		if lt := strings.Join(meta.Locations, ", "); lt != "" {
			details = append(details, "địa điểm: "+lt)
		}
		if len(details) > 0 {
			header += " (" + strings.Join(details, "; ") + ")"
		}

		parts = append(parts, header+"\n"+rd.Document.Content)
	}
	return strings.Join(parts, "\n\n")
}

// ContextJobs collapses retrieved documents into one summary per job,
// keeping first-seen order. Retrieval typically returns several chunks of
// the same job; the UI only wants the job once.
func ContextJobs(docs []types.RetrievedDocument) []ContextJob {
	seen := make(map[int64]bool, len(docs))
	jobs := make([]ContextJob, 0, len(docs))
	for _, rd := range docs {
		meta := rd.Document.Metadata
		if seen[meta.JobID] {
			continue
		}
		seen[meta.JobID] = true
		jobs = append(jobs, ContextJob{
			JobID:       meta.JobID,
			Title:       strings.ToUpper(meta.Title),
			CompanyName: meta.Company.Name,
			Locations:   strings.Join(meta.Locations, ", "),
			SalaryText:  salary.Text(meta.Salary),
			URL:         "/jobs/" + itoa(meta.JobID),
			Score:       rd.Score,
		})
	}
	return jobs
}
