package retrieval

import (
	"strings"

	"github.com/jobfinder/job-assistant/internal/types"
)

// normalize lowercases and collapses whitespace so filter matching is
// case- and spacing-insensitive. Substring matching over normalized text is
// deliberately simple; short filters like "AI" can false-positive inside
// unrelated words.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsAny reports whether any needle appears as a substring of haystack.
// Both sides must already be normalized.
func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n = normalize(n); n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// locationPass checks the location filter against the document's location
// list and its content text. No filter means pass.
func locationPass(meta types.JobSnapshot, content string, locations []string) bool {
	if len(locations) == 0 {
		return true
	}
	haystack := normalize(strings.Join(meta.Locations, " ")) + " " + normalize(content)
	return containsAny(haystack, locations)
}

// salaryPass checks whether the document's [min,max] salary interval
// overlaps the filter's [fMin,fMax] interval. Missing bounds are unbounded
// in their direction. A document with no salary data at all passes: absence
// of data is never grounds for exclusion.
func salaryPass(meta types.JobSnapshot, fMin, fMax *int64) bool {
	if fMin == nil && fMax == nil {
		return true
	}

	sMin, sMax := meta.Salary.Min, meta.Salary.Max
	if sMin == nil && sMax == nil {
		return true
	}

	low, high := sMin, sMax
	if low == nil {
		low = sMax
	}
	if high == nil {
		high = sMin
	}

	if fMin != nil && high != nil && *high < *fMin {
		return false
	}
	if fMax != nil && low != nil && *low > *fMax {
		return false
	}
	return true
}

// skillsPass checks the skill filter against the description and
// requirements sections plus the chunk content. No filter means pass.
func skillsPass(meta types.JobSnapshot, content string, skills []string) bool {
	if len(skills) == 0 {
		return true
	}
	haystack := strings.Join([]string{
		normalize(meta.Sections[types.SectionDescription]),
		normalize(meta.Sections[types.SectionRequirements]),
		normalize(content),
	}, " ")
	return containsAny(haystack, skills)
}

// keywordPass checks the job-keyword filter against title, company name,
// and content. No filter means pass.
func keywordPass(meta types.JobSnapshot, content string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.Join([]string{
		normalize(meta.Title),
		normalize(meta.Company.Name),
		normalize(content),
	}, " ")
	return containsAny(haystack, keywords)
}

// passesFilters is the fail-open conjunction of all filter checks: a
// document passes only if it passes every applicable check, and an empty
// filter value always passes.
func passesFilters(doc types.Document, f types.QueryFilters) bool {
	return locationPass(doc.Metadata, doc.Content, f.Locations) &&
		salaryPass(doc.Metadata, f.MinSalaryVND, f.MaxSalaryVND) &&
		skillsPass(doc.Metadata, doc.Content, f.Skills) &&
		keywordPass(doc.Metadata, doc.Content, f.JobKeywords)
}
