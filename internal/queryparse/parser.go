// Package queryparse turns a free-text user question into structured
// QueryFilters. Extraction is best-effort and fail-soft: on any failure the
// parser returns the all-default filter set, never an error, so retrieval
// still works with zero structured filters.
package queryparse

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/llm"
	"github.com/jobfinder/job-assistant/internal/salary"
	"github.com/jobfinder/job-assistant/internal/types"
)

// filtersSchema validates the classifier's JSON before it is trusted.
// All fields are optional; unknown fields are rejected.
const filtersSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"intent": {
			"type": "string",
			"enum": ["search_jobs", "ask_detail", "compare_jobs", "other"]
		},
		"job_keywords": {"type": "array", "items": {"type": "string"}},
		"locations":    {"type": "array", "items": {"type": "string"}},
		"min_salary_vnd": {"type": ["number", "null"]},
		"max_salary_vnd": {"type": ["number", "null"]},
		"skills":       {"type": "array", "items": {"type": "string"}}
	}
}`

// rawFilters is the loosely-typed shape the model answers with. Salary
// figures arrive as floats and may use millions shorthand.
type rawFilters struct {
	Intent       string   `json:"intent"`
	JobKeywords  []string `json:"job_keywords"`
	Locations    []string `json:"locations"`
	MinSalaryVND *float64 `json:"min_salary_vnd"`
	MaxSalaryVND *float64 `json:"max_salary_vnd"`
	Skills       []string `json:"skills"`
}

// Parser extracts QueryFilters from user questions via the lite model tier.
type Parser struct {
	client llm.Client
	log    *zap.Logger
}

// New creates a Parser.
func New(client llm.Client, log *zap.Logger) *Parser {
	return &Parser{client: client, log: log}
}

// ParseQuery classifies a user question and extracts filters from it.
// Never fails: malformed model output, validation errors, and transport
// errors all degrade to the default filter set.
func (p *Parser) ParseQuery(ctx context.Context, text string) types.QueryFilters {
	base := types.DefaultQueryFilters()

	msg := strings.TrimSpace(text)
	if msg == "" {
		return base
	}

	prompt := llm.BuildExtractionPrompt(llm.QueryFiltersSchema(), msg)
	raw, err := p.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		p.log.Warn("query classification failed, using empty filters", zap.Error(err))
		return base
	}

	jsonStr := llm.ExtractJSONObject(raw)
	if jsonStr == "" {
		p.log.Warn("no JSON object in classifier output", zap.String("output", truncate(raw, 200)))
		return base
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(filtersSchema),
		gojsonschema.NewStringLoader(jsonStr),
	)
	if err != nil || !result.Valid() {
		p.log.Warn("classifier output failed schema validation", zap.String("output", truncate(jsonStr, 200)))
		return base
	}

	var parsed rawFilters
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		p.log.Warn("failed to decode classifier output", zap.Error(err))
		return base
	}

	return buildFilters(parsed)
}

// buildFilters converts validated raw output into QueryFilters, normalizing
// salary figures and discarding unusable values instead of failing.
func buildFilters(raw rawFilters) types.QueryFilters {
	f := types.DefaultQueryFilters()

	if intent := types.Intent(raw.Intent); intent.Valid() {
		f.Intent = intent
	}
	f.JobKeywords = cleanStrings(raw.JobKeywords)
	f.Locations = cleanStrings(raw.Locations)
	f.Skills = cleanStrings(raw.Skills)

	if raw.MinSalaryVND != nil && *raw.MinSalaryVND > 0 {
		v := salary.NormalizeVND(*raw.MinSalaryVND)
		f.MinSalaryVND = &v
	}
	if raw.MaxSalaryVND != nil && *raw.MaxSalaryVND > 0 {
		v := salary.NormalizeVND(*raw.MaxSalaryVND)
		f.MaxSalaryVND = &v
	}
	return f
}

func cleanStrings(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
