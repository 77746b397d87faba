package indexing

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/types"
)

// fakeStore is an in-memory Store with per-job failure injection.
type fakeStore struct {
	mu       sync.Mutex
	jobs     map[int64]*types.JobRecord
	docs     map[int64][]types.Document
	failJobs map[int64]bool
	replaced int
}

func newFakeStore(jobs ...*types.JobRecord) *fakeStore {
	s := &fakeStore{
		jobs:     map[int64]*types.JobRecord{},
		docs:     map[int64][]types.Document{},
		failJobs: map[int64]bool{},
	}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *fakeStore) GetJob(_ context.Context, jobID int64) (*types.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failJobs[jobID] {
		return nil, fmt.Errorf("job %d: boom", jobID)
	}
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %d not found", jobID)
	}
	return job, nil
}

func (s *fakeStore) SelectJobsToIndex(_ context.Context, limit int, _ bool) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id := range s.jobs {
		ids = append(ids, id)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *fakeStore) ReplaceJobDocuments(_ context.Context, jobID int64, docs []types.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[jobID] = docs
	s.replaced++
	return nil
}

// fakeEmbedder returns constant-dimension vectors; fails when asked to.
type fakeEmbedder struct {
	fail  bool
	calls int
}

func (e *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if e.fail {
		return nil, fmt.Errorf("embedding unavailable")
	}
	return []float32{1, 0, 0}, nil
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.fail {
		return nil, fmt.Errorf("embedding unavailable")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (e *fakeEmbedder) Dimension() int { return 3 }

func TestIndexJob_OneOverviewPlusSectionChunks(t *testing.T) {
	store := newFakeStore(sampleJob())
	ix := New(store, &fakeEmbedder{}, zap.NewNop(), 800, 1)

	n, err := ix.IndexJob(context.Background(), 42)
	require.NoError(t, err)

	docs := store.docs[42]
	require.Len(t, docs, n)

	var overviews, sections int
	for _, d := range docs {
		switch d.DocType {
		case types.DocTypeOverview:
			overviews++
		case types.DocTypeSection:
			sections++
			require.NotNil(t, d.Metadata.Section)
			assert.Equal(t, d.SectionType, d.Metadata.Section.Type)
		}
		assert.Equal(t, int64(42), d.JobID)
		assert.Len(t, d.Embedding, 3)
	}
	assert.Equal(t, 1, overviews)
	assert.Equal(t, 2, sections) // blank benefits section produces no document
}

func TestIndexJob_ChunksLongSections(t *testing.T) {
	job := sampleJob()
	long := ""
	for i := 0; i < 40; i++ {
		long += fmt.Sprintf("Nhiệm vụ thứ %d của vị trí này là phối hợp với đội sản phẩm. ", i)
	}
	job.Sections = []types.Section{{Type: types.SectionDescription, Text: long}}

	store := newFakeStore(job)
	ix := New(store, &fakeEmbedder{}, zap.NewNop(), 200, 1)

	_, err := ix.IndexJob(context.Background(), 42)
	require.NoError(t, err)

	var chunkIdx []int
	for _, d := range store.docs[42] {
		if d.DocType == types.DocTypeSection {
			chunkIdx = append(chunkIdx, d.ChunkIndex)
		}
	}
	require.Greater(t, len(chunkIdx), 1)
	for i, idx := range chunkIdx {
		assert.Equal(t, i, idx)
	}
}

func TestIndexJob_EmbeddingFailureWritesNothing(t *testing.T) {
	store := newFakeStore(sampleJob())
	ix := New(store, &fakeEmbedder{fail: true}, zap.NewNop(), 800, 1)

	_, err := ix.IndexJob(context.Background(), 42)
	require.Error(t, err)
	assert.Empty(t, store.docs)
	assert.Zero(t, store.replaced)
}

func TestIndexJob_UnknownJob(t *testing.T) {
	store := newFakeStore()
	ix := New(store, &fakeEmbedder{}, zap.NewNop(), 800, 1)

	_, err := ix.IndexJob(context.Background(), 99)
	require.Error(t, err)
	assert.Zero(t, store.replaced)
}

func TestIndexJob_Idempotent(t *testing.T) {
	store := newFakeStore(sampleJob())
	ix := New(store, &fakeEmbedder{}, zap.NewNop(), 800, 1)

	n1, err := ix.IndexJob(context.Background(), 42)
	require.NoError(t, err)
	n2, err := ix.IndexJob(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, n1, n2)
	assert.Len(t, store.docs[42], n1)
}

func TestIndexAll_OneFailureDoesNotAbortBatch(t *testing.T) {
	jobA := sampleJob()
	jobB := sampleJob()
	jobB.ID = 43
	jobC := sampleJob()
	jobC.ID = 44

	store := newFakeStore(jobA, jobB, jobC)
	store.failJobs[43] = true

	ix := New(store, &fakeEmbedder{}, zap.NewNop(), 800, 2)
	require.NoError(t, ix.IndexAll(context.Background(), 0, ModeIncremental))

	assert.Contains(t, store.docs, int64(42))
	assert.Contains(t, store.docs, int64(44))
	assert.NotContains(t, store.docs, int64(43))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("full")
	require.NoError(t, err)
	assert.Equal(t, ModeFull, m)

	m, err = ParseMode("incremental")
	require.NoError(t, err)
	assert.Equal(t, ModeIncremental, m)

	_, err = ParseMode("everything")
	assert.Error(t, err)
}
