// Package retrieval turns a user question plus optional structured filters
// into a ranked, constraint-satisfying set of job documents: vector
// similarity search fused with fail-open hybrid filtering, fallback on
// over-pruning, and pinning of the currently viewed job.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/embedding"
	"github.com/jobfinder/job-assistant/internal/salary"
	"github.com/jobfinder/job-assistant/internal/types"
)

const (
	// overFetchFactor and minCandidates size the candidate pool. Hard
	// filtering may reject many nearest neighbors; fetching only top_k
	// would starve the filter stage.
	overFetchFactor = 5
	minCandidates   = 30

	// pinnedDocLimit caps how many documents of the currently viewed job
	// are force-included.
	pinnedDocLimit = 6
)

// ErrInvalidTopK is returned when the caller asks for fewer than one result.
var ErrInvalidTopK = errors.New("top_k must be >= 1")

// Store is the document persistence surface the retriever reads from. The
// retriever never writes.
type Store interface {
	NearestDocuments(ctx context.Context, vec []float32, k int, onlyActive bool) ([]types.RetrievedDocument, error)
	DocumentsByJob(ctx context.Context, jobID int64, limit int) ([]types.Document, error)
}

// Request carries one retrieval call's inputs.
type Request struct {
	Query           string
	TopK            int
	Filters         types.QueryFilters
	CurrentJobID    *int64 // job page the user is viewing, if any
	IncludeInactive bool   // include documents of expired jobs
}

// Retriever is a pure function of its inputs and the current store contents;
// no state is kept between calls, so concurrent retrievals need no locking.
type Retriever struct {
	store    Store
	embedder embedding.Provider
	log      *zap.Logger
}

// New creates a Retriever.
func New(store Store, embedder embedding.Provider, log *zap.Logger) *Retriever {
	return &Retriever{store: store, embedder: embedder, log: log}
}

// Retrieve returns up to req.TopK documents ranked by similarity to the
// query, plus any pinned documents of the currently viewed job prepended in
// front. An empty query returns an empty result without touching the
// embedder or the store.
func (r *Retriever) Retrieve(ctx context.Context, req Request) ([]types.RetrievedDocument, error) {
	if req.TopK <= 0 {
		return nil, fmt.Errorf("invalid request: %w (got %d)", ErrInvalidTopK, req.TopK)
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, nil
	}

	augmented := AugmentQuery(query, req.Filters)
	vec, err := r.embedder.Embed(ctx, augmented)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	candidateK := req.TopK * overFetchFactor
	if candidateK < minCandidates {
		candidateK = minCandidates
	}

	candidates, err := r.store.NearestDocuments(ctx, vec, candidateK, !req.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	r.log.Debug("retrieved candidates",
		zap.String("query", query),
		zap.Int("candidate_k", candidateK),
		zap.Int("got", len(candidates)))

	filtered := make([]types.RetrievedDocument, 0, len(candidates))
	for _, c := range candidates {
		if passesFilters(c.Document, req.Filters) {
			filtered = append(filtered, c)
		}
	}

	// Hard filtering over sparse metadata can prune everything. Returning
	// vector-similar documents beats returning nothing: an empty context
	// hurts the downstream answer far more than an imperfectly filtered one.
	final := filtered
	if len(final) == 0 {
		final = candidates
		if len(candidates) > 0 && !req.Filters.IsEmpty() {
			r.log.Debug("filters eliminated all candidates, falling back to unfiltered set",
				zap.Int("candidates", len(candidates)))
		}
	}

	sortByScore(final)
	if len(final) > req.TopK {
		final = final[:req.TopK]
	}

	if req.CurrentJobID != nil {
		final, err = r.pinJob(ctx, *req.CurrentJobID, final)
		if err != nil {
			return nil, err
		}
	}

	r.log.Info("retrieval complete",
		zap.String("query", query),
		zap.Int("top_k", req.TopK),
		zap.Int("returned", len(final)),
		zap.Int("passed_filters", len(filtered)))

	return final, nil
}

// AugmentQuery appends a compact textual summary of the non-empty filter
// fields to the query before embedding. The embedding model has no notion of
// structured filters; folding them into the text nudges similarity toward
// filter-consistent documents before any hard filtering runs.
func AugmentQuery(query string, f types.QueryFilters) string {
	if f.IsEmpty() {
		return query
	}

	var parts []string
	if len(f.JobKeywords) > 0 {
		parts = append(parts, "Từ khoá: "+strings.Join(f.JobKeywords, ", "))
	}
	if len(f.Locations) > 0 {
		parts = append(parts, "Địa điểm: "+strings.Join(f.Locations, ", "))
	}
	if len(f.Skills) > 0 {
		parts = append(parts, "Kỹ năng: "+strings.Join(f.Skills, ", "))
	}
	if f.MinSalaryVND != nil || f.MaxSalaryVND != nil {
		parts = append(parts, "Mức lương: "+salary.Text(types.Salary{
			Min: f.MinSalaryVND,
			Max: f.MaxSalaryVND,
		}))
	}
	return query + " | " + strings.Join(parts, "; ")
}

// sortByScore orders by score descending; documents without a score sort
// last. The sort is stable so ties keep their input order.
func sortByScore(docs []types.RetrievedDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		si, sj := docs[i].Score, docs[j].Score
		switch {
		case si != nil && sj != nil:
			return *si > *sj
		case si != nil:
			return true
		default:
			return false
		}
	})
}

// pinJob prepends up to pinnedDocLimit documents of the currently viewed job
// (overview first, then sections in order) regardless of similarity rank,
// dropping any ranked duplicate. When the user asks about the page they are
// on, that job's content must reach the answer synthesizer even if it scored
// poorly against the query embedding.
func (r *Retriever) pinJob(ctx context.Context, jobID int64, ranked []types.RetrievedDocument) ([]types.RetrievedDocument, error) {
	docs, err := r.store.DocumentsByJob(ctx, jobID, pinnedDocLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents for pinned job %d: %w", jobID, err)
	}
	if len(docs) == 0 {
		return ranked, nil
	}

	seen := make(map[int64]bool, len(docs))
	pinned := make([]types.RetrievedDocument, 0, len(docs)+len(ranked))
	for _, d := range docs {
		seen[d.ID] = true
		pinned = append(pinned, types.RetrievedDocument{Document: d})
	}
	for _, rd := range ranked {
		if !seen[rd.Document.ID] {
			pinned = append(pinned, rd)
		}
	}
	return pinned, nil
}
