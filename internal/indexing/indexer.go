// Package indexing converts crawled job records into embedded, retrievable
// documents and keeps the document store in sync with the jobs table.
package indexing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobfinder/job-assistant/internal/embedding"
	"github.com/jobfinder/job-assistant/internal/types"
)

// Mode selects which jobs a batch indexing run touches.
type Mode string

const (
	// ModeIncremental indexes active jobs that have no overview document yet.
	ModeIncremental Mode = "incremental"
	// ModeFull re-indexes every active job, plus freshly-expired jobs whose
	// stored snapshot still claims they are active.
	ModeFull Mode = "full"
)

// ParseMode converts a string flag into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeIncremental, ModeFull:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown index mode %q (want %q or %q)", s, ModeIncremental, ModeFull)
}

// Store is the persistence surface the indexer needs.
type Store interface {
	GetJob(ctx context.Context, jobID int64) (*types.JobRecord, error)
	SelectJobsToIndex(ctx context.Context, limit int, full bool) ([]int64, error)
	ReplaceJobDocuments(ctx context.Context, jobID int64, docs []types.Document) error
}

// Indexer builds and writes the document set for jobs. The write path is
// all-or-nothing per job: any failure leaves the previous document set in
// place.
type Indexer struct {
	store         Store
	embedder      embedding.Provider
	log           *zap.Logger
	chunkMaxChars int
	workers       int
}

// New creates an Indexer. chunkMaxChars bounds section chunk length; workers
// bounds batch-indexing concurrency.
func New(store Store, embedder embedding.Provider, log *zap.Logger, chunkMaxChars, workers int) *Indexer {
	if chunkMaxChars <= 0 {
		chunkMaxChars = 800
	}
	if workers <= 0 {
		workers = 1
	}
	return &Indexer{
		store:         store,
		embedder:      embedder,
		log:           log,
		chunkMaxChars: chunkMaxChars,
		workers:       workers,
	}
}

// IndexJob rebuilds all documents of one job: one overview document plus one
// document per section chunk. Returns the number of documents written.
// Fails without touching the store when the job does not exist or embedding
// fails.
func (ix *Indexer) IndexJob(ctx context.Context, jobID int64) (int, error) {
	job, err := ix.store.GetJob(ctx, jobID)
	if err != nil {
		return 0, err
	}

	snap := BuildSnapshot(job, time.Now().UTC())
	docs := ix.buildDocuments(job, snap)

	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	vectors, err := ix.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return 0, fmt.Errorf("failed to embed documents for job %d: %w", jobID, err)
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}

	if err := ix.store.ReplaceJobDocuments(ctx, jobID, docs); err != nil {
		return 0, err
	}

	ix.log.Info("indexed job",
		zap.Int64("job_id", jobID),
		zap.Int("documents", len(docs)),
		zap.Bool("is_active", snap.IsActive))
	return len(docs), nil
}

// buildDocuments assembles the unembedded document set for a job.
func (ix *Indexer) buildDocuments(job *types.JobRecord, snap types.JobSnapshot) []types.Document {
	docs := []types.Document{{
		JobID:      job.ID,
		DocType:    types.DocTypeOverview,
		ChunkIndex: 0,
		Content:    OverviewContent(snap),
		Metadata:   snap,
	}}

	for _, section := range job.OrderedSections() {
		text := strings.TrimSpace(section.Text)
		if text == "" {
			continue
		}
		for idx, chunk := range SplitChunks(text, ix.chunkMaxChars) {
			meta := snap
			meta.Section = &types.SectionSnapshot{
				Type:       section.Type,
				Label:      section.Type.Label(),
				Text:       text,
				ChunkIndex: idx,
				ChunkText:  chunk,
			}
			docs = append(docs, types.Document{
				JobID:       job.ID,
				DocType:     types.DocTypeSection,
				SectionType: section.Type,
				ChunkIndex:  idx,
				Content:     SectionContent(snap, section.Type, chunk),
				Metadata:    meta,
			})
		}
	}
	return docs
}

// IndexAll indexes every candidate job for the given mode. One job's failure
// is logged and skipped, never aborts the batch. The returned error covers
// only the candidate selection itself.
func (ix *Indexer) IndexAll(ctx context.Context, limit int, mode Mode) error {
	jobIDs, err := ix.store.SelectJobsToIndex(ctx, limit, mode == ModeFull)
	if err != nil {
		return err
	}

	ix.log.Info("starting batch index",
		zap.Int("jobs", len(jobIDs)),
		zap.String("mode", string(mode)))

	var g errgroup.Group
	g.SetLimit(ix.workers)
	for _, jobID := range jobIDs {
		g.Go(func() error {
			if _, err := ix.IndexJob(ctx, jobID); err != nil {
				ix.log.Error("failed to index job", zap.Int64("job_id", jobID), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are logged per job
	return nil
}
