// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "QueryFilters")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", ["string"], number|null
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent anything.\n")
	sb.WriteString("- Use null for numbers and [] for lists you cannot infer.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// QueryFiltersSchema returns the extraction schema for user questions about
// jobs. The questions are usually Vietnamese; salary amounts must come back
// as absolute VND ("10tr" / "10 triệu" means 10000000).
func QueryFiltersSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "QueryFilters",
		Description: `You are the query-analysis module of a job-search assistant. The user writes
questions in Vietnamese about job postings. Classify the question and extract
search filters from it.

intent values:
- "search_jobs": the user wants to FIND or get SUGGESTIONS for new jobs
  ("tìm giúp em việc marketing ở HCM", "có job IT nào lương trên 15tr không?")
- "ask_detail": the user asks about ONE specific job
  ("công việc này lương bao nhiêu?", "job kế toán bên ABC yêu cầu gì?")
- "compare_jobs": the user wants to COMPARE jobs
  ("giữa 2 job A và B thì job nào lương cao hơn?")
- "other": everything else.`,
		Fields: []SchemaField{
			{
				Name:        "intent",
				Type:        `"search_jobs"|"ask_detail"|"compare_jobs"|"other"`,
				Description: "question intent, always one of the four values",
				Required:    true,
			},
			{
				Name:        "job_keywords",
				Type:        `["string"]`,
				Description: `industry / role / field keywords, e.g. ["IT", "lập trình", "developer"]`,
			},
			{
				Name:        "locations",
				Type:        `["string"]`,
				Description: `place names, prefer province/city form, e.g. ["Hà Nội"]`,
			},
			{
				Name:        "min_salary_vnd",
				Type:        "number|null",
				Description: `minimum salary in absolute VND; "từ 10tr" / "trên 10 triệu" -> 10000000`,
			},
			{
				Name:        "max_salary_vnd",
				Type:        "number|null",
				Description: `maximum salary in absolute VND; "đến 20tr" -> 20000000`,
			},
			{
				Name:        "skills",
				Type:        `["string"]`,
				Description: `skills or requirements, e.g. ["thuyết trình", "tiếng Anh", "Python"]`,
			},
		},
	}
}
