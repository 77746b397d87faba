// Package types defines the shared data model for jobs, indexed documents,
// and retrieval filters.
package types

import (
	"strings"
	"time"
)

// SectionType identifies a descriptive section of a job posting. The crawler
// emits a fixed set of keys; unknown keys are tolerated and carried as-is.
type SectionType string

// Known section types, keyed the way the crawler stores them.
const (
	SectionDescription  SectionType = "mo_ta_cong_viec"
	SectionRequirements SectionType = "yeu_cau_ung_vien"
	SectionIncome       SectionType = "thu_nhap"
	SectionBenefits     SectionType = "quyen_loi"
	SectionWorkplace    SectionType = "dia_diem_lam_viec"
	SectionPerks        SectionType = "phuc_loi"
	SectionOtherInfo    SectionType = "thong_tin_khac"
)

// SectionOrder is the display and pinning order for known sections.
var SectionOrder = []SectionType{
	SectionDescription,
	SectionRequirements,
	SectionIncome,
	SectionBenefits,
	SectionWorkplace,
	SectionPerks,
	SectionOtherInfo,
}

var sectionLabels = map[SectionType]string{
	SectionDescription:  "Mô tả công việc",
	SectionRequirements: "Yêu cầu ứng viên",
	SectionIncome:       "Thu nhập",
	SectionBenefits:     "Quyền lợi",
	SectionWorkplace:    "Địa điểm làm việc",
	SectionPerks:        "Phúc lợi",
	SectionOtherInfo:    "Thông tin khác",
}

// Label returns the human-readable label for the section. Unknown section
// types fall back to a title-cased rendering of the raw key.
func (s SectionType) Label() string {
	if label, ok := sectionLabels[s]; ok {
		return label
	}
	return strings.Title(strings.ReplaceAll(string(s), "_", " ")) //nolint:staticcheck // keys are ASCII slugs
}

// Salary holds the salary range of a posting. All amounts are absolute VND
// unless Currency says otherwise. Every field is optional.
type Salary struct {
	Min      *int64 `json:"min,omitempty"`
	Max      *int64 `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
	Interval string `json:"interval,omitempty"` // MONTH, YEAR, HOUR
	RawText  string `json:"raw_text,omitempty"`
}

// IsZero reports whether no salary information is present at all.
func (s Salary) IsZero() bool {
	return s.Min == nil && s.Max == nil && s.RawText == ""
}

// Experience holds the required experience of a posting.
type Experience struct {
	Months  *int   `json:"months,omitempty"`
	RawText string `json:"raw_text,omitempty"`
}

// Company holds the employer info attached to a posting.
type Company struct {
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
	Logo     string `json:"logo,omitempty"`
	Size     string `json:"size,omitempty"`
	Industry string `json:"industry,omitempty"`
	Address  string `json:"address,omitempty"`
}

// GeneralInfo holds the categorical attributes of a posting.
type GeneralInfo struct {
	Seniority    string `json:"cap_bac,omitempty"`
	Education    string `json:"hoc_van,omitempty"`
	Headcount    string `json:"so_luong_tuyen,omitempty"`
	WorkType     string `json:"hinh_thuc_lam_viec,omitempty"`
	WorkTypeRaw  string `json:"hinh_thuc_lam_viec_raw,omitempty"`
	HeadcountRaw string `json:"so_luong_tuyen_raw,omitempty"`
}

// Section is one descriptive section of a job posting.
type Section struct {
	Type SectionType `json:"type"`
	Text string      `json:"text"`
	HTML string      `json:"html,omitempty"`
}

// JobRecord is a crawled job posting as the crawler/store boundary hands it
// to the indexer. Read-only to the retrieval core.
type JobRecord struct {
	ID         int64       `json:"id"`
	URL        string      `json:"url"`
	Title      string      `json:"title"`
	Salary     Salary      `json:"salary"`
	Experience Experience  `json:"experience"`
	Company    Company     `json:"company"`
	General    GeneralInfo `json:"general_info"`
	Locations  []string    `json:"locations"`
	Sections   []Section   `json:"sections"`
	Deadline   *time.Time  `json:"deadline,omitempty"`
	CrawledAt  *time.Time  `json:"crawled_at,omitempty"`
}

// Section returns the section with the given type, if present.
func (j *JobRecord) Section(t SectionType) (Section, bool) {
	for _, s := range j.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// OrderedSections returns the job's sections in SectionOrder, with unknown
// section types appended in their stored order.
func (j *JobRecord) OrderedSections() []Section {
	known := map[SectionType]bool{}
	var out []Section
	for _, t := range SectionOrder {
		if s, ok := j.Section(t); ok {
			out = append(out, s)
			known[t] = true
		}
	}
	for _, s := range j.Sections {
		if !known[s.Type] {
			out = append(out, s)
		}
	}
	return out
}
