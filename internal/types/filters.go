package types

// Intent classifies what the user is trying to do with a question.
type Intent string

// Recognized intents. Anything the classifier cannot place lands on
// IntentOther.
const (
	IntentSearchJobs  Intent = "search_jobs"
	IntentAskDetail   Intent = "ask_detail"
	IntentCompareJobs Intent = "compare_jobs"
	IntentOther       Intent = "other"
)

// Valid reports whether i is one of the recognized intent values.
func (i Intent) Valid() bool {
	switch i {
	case IntentSearchJobs, IntentAskDetail, IntentCompareJobs, IntentOther:
		return true
	}
	return false
}

// QueryFilters is the structured, best-effort extraction from a user
// question. Every field defaults to empty; an absent filter never excludes a
// document.
type QueryFilters struct {
	Intent       Intent   `json:"intent"`
	JobKeywords  []string `json:"job_keywords"`
	Locations    []string `json:"locations"`
	MinSalaryVND *int64   `json:"min_salary_vnd"`
	MaxSalaryVND *int64   `json:"max_salary_vnd"`
	Skills       []string `json:"skills"`
}

// DefaultQueryFilters returns the all-empty filter set used whenever query
// understanding cannot produce anything better.
func DefaultQueryFilters() QueryFilters {
	return QueryFilters{
		Intent:      IntentOther,
		JobKeywords: []string{},
		Locations:   []string{},
		Skills:      []string{},
	}
}

// IsEmpty reports whether no filter field carries a value.
func (f QueryFilters) IsEmpty() bool {
	return len(f.JobKeywords) == 0 &&
		len(f.Locations) == 0 &&
		len(f.Skills) == 0 &&
		f.MinSalaryVND == nil &&
		f.MaxSalaryVND == nil
}
