package types

import "time"

// DocType distinguishes the single per-job overview document from section
// chunk documents.
type DocType string

// Document type constants, matching the doc_type column values.
const (
	DocTypeOverview DocType = "job_overview"
	DocTypeSection  DocType = "job_section"
)

// SectionSnapshot captures the section a chunk document was cut from.
type SectionSnapshot struct {
	Type       SectionType `json:"type"`
	Label      string      `json:"label"`
	Text       string      `json:"text"`
	ChunkIndex int         `json:"chunk_index"`
	ChunkText  string      `json:"chunk_text"`
}

// JobSnapshot is the denormalized metadata stored alongside every document of
// a job at index time. Retrieval filters read from it, never from the live
// job tables, so results reflect what was actually embedded.
type JobSnapshot struct {
	JobID      int64                  `json:"id"`
	URL        string                 `json:"url,omitempty"`
	Title      string                 `json:"title"`
	Salary     Salary                 `json:"salary"`
	Locations  []string               `json:"locations,omitempty"`
	Experience Experience             `json:"experience"`
	Company    Company                `json:"company"`
	General    GeneralInfo            `json:"general_info"`
	Sections   map[SectionType]string `json:"sections,omitempty"`
	Deadline   *time.Time             `json:"deadline,omitempty"`
	CrawledAt  *time.Time             `json:"crawled_at,omitempty"`
	IsActive   bool                   `json:"is_active"`
	Source     string                 `json:"source,omitempty"`
	Section    *SectionSnapshot       `json:"section,omitempty"` // section documents only
}

// Document is the unit of indexing and retrieval: one overview or one
// section chunk of a job, with the exact text that was embedded.
type Document struct {
	ID          int64       `json:"doc_id"`
	JobID       int64       `json:"job_id"`
	DocType     DocType     `json:"doc_type"`
	SectionType SectionType `json:"section_type,omitempty"`
	ChunkIndex  int         `json:"chunk_index"`
	Content     string      `json:"content"`
	Metadata    JobSnapshot `json:"metadata"`
	Embedding   []float32   `json:"-"`
	IsActive    bool        `json:"is_active"`
}

// RetrievedDocument pairs a document with its similarity score. Score is nil
// for documents that were pinned rather than ranked by vector distance.
type RetrievedDocument struct {
	Document Document `json:"document"`
	Score    *float64 `json:"score,omitempty"`
}
