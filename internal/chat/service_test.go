package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/retrieval"
	"github.com/jobfinder/job-assistant/internal/types"
)

type fakeParser struct {
	filters types.QueryFilters
	calls   int
}

func (p *fakeParser) ParseQuery(_ context.Context, _ string) types.QueryFilters {
	p.calls++
	return p.filters
}

type fakeRetriever struct {
	docs    []types.RetrievedDocument
	err     error
	lastReq retrieval.Request
	calls   int
}

func (r *fakeRetriever) Retrieve(_ context.Context, req retrieval.Request) ([]types.RetrievedDocument, error) {
	r.calls++
	r.lastReq = req
	return r.docs, r.err
}

type fakeSynthesizer struct {
	answer     string
	err        error
	lastPrompt string
	calls      int
}

func (s *fakeSynthesizer) Synthesize(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.answer, s.err
}

func newTestService(p *fakeParser, r *fakeRetriever, s *fakeSynthesizer) *Service {
	return NewService(p, r, s, 5, zap.NewNop())
}

func TestChat_HappyPath(t *testing.T) {
	parser := &fakeParser{filters: types.QueryFilters{Intent: types.IntentSearchJobs}}
	retriever := &fakeRetriever{docs: []types.RetrievedDocument{
		retrieved(7, "Backend Engineer", "ABC Corp", f64(0.9), "Mô tả."),
	}}
	synth := &fakeSynthesizer{answer: "Mình gợi ý job Backend Engineer tại /jobs/7 nhé."}

	resp := newTestService(parser, retriever, synth).Chat(context.Background(), Request{
		Message: "tìm việc backend",
	})

	assert.Equal(t, "Mình gợi ý job Backend Engineer tại /jobs/7 nhé.", resp.Answer)
	require.Len(t, resp.ContextJobs, 1)
	assert.Equal(t, int64(7), resp.ContextJobs[0].JobID)
	assert.Equal(t, types.IntentSearchJobs, resp.QueryFilters.Intent)
	assert.Contains(t, synth.lastPrompt, "[JOB 7]")
}

func TestChat_EmptyMessage(t *testing.T) {
	parser := &fakeParser{}
	retriever := &fakeRetriever{}
	resp := newTestService(parser, retriever, &fakeSynthesizer{}).Chat(context.Background(), Request{Message: "  "})

	assert.Equal(t, emptyMessageReply, resp.Answer)
	assert.Empty(t, resp.ContextJobs)
	assert.Zero(t, parser.calls)
	assert.Zero(t, retriever.calls)
}

func TestChat_GreetingShortCircuits(t *testing.T) {
	parser := &fakeParser{}
	retriever := &fakeRetriever{}
	resp := newTestService(parser, retriever, &fakeSynthesizer{}).Chat(context.Background(), Request{Message: "xin chào"})

	assert.Contains(t, resp.Answer, "trợ lý JobFinder")
	assert.Zero(t, parser.calls)
	assert.Zero(t, retriever.calls)
}

func TestChat_RetrievalFailureDegrades(t *testing.T) {
	retriever := &fakeRetriever{err: fmt.Errorf("pgvector down")}
	synth := &fakeSynthesizer{}
	resp := newTestService(&fakeParser{}, retriever, synth).Chat(context.Background(), Request{Message: "tìm việc"})

	assert.Equal(t, retrievalFailedReply, resp.Answer)
	assert.Empty(t, resp.ContextJobs)
	assert.Zero(t, synth.calls)
}

func TestChat_SynthesisFailureDegrades(t *testing.T) {
	synth := &fakeSynthesizer{err: fmt.Errorf("model overloaded")}
	resp := newTestService(&fakeParser{}, &fakeRetriever{}, synth).Chat(context.Background(), Request{Message: "tìm việc"})

	assert.Equal(t, llmFailedReply, resp.Answer)
	assert.Empty(t, resp.ContextJobs)
}

func TestChat_BlankAnswerGetsFallbackText(t *testing.T) {
	synth := &fakeSynthesizer{answer: "   "}
	resp := newTestService(&fakeParser{}, &fakeRetriever{}, synth).Chat(context.Background(), Request{Message: "tìm việc"})

	assert.Contains(t, resp.Answer, "chưa nhận được phản hồi rõ ràng")
}

func TestChat_PassesHistoryAndPinIntoRetrieval(t *testing.T) {
	retriever := &fakeRetriever{}
	jobID := int64(99)

	newTestService(&fakeParser{}, retriever, &fakeSynthesizer{}).Chat(context.Background(), Request{
		Message:      "công việc này yêu cầu gì",
		History:      []Turn{{Role: "user", Content: "đang xem job backend"}},
		CurrentJobID: &jobID,
		TopK:         3,
	})

	assert.Contains(t, retriever.lastReq.Query, "Ngữ cảnh trước đó: đang xem job backend")
	require.NotNil(t, retriever.lastReq.CurrentJobID)
	assert.Equal(t, jobID, *retriever.lastReq.CurrentJobID)
	assert.Equal(t, 3, retriever.lastReq.TopK)
}

func TestChat_DefaultTopKApplies(t *testing.T) {
	retriever := &fakeRetriever{}
	newTestService(&fakeParser{}, retriever, &fakeSynthesizer{}).Chat(context.Background(), Request{Message: "tìm việc"})

	assert.Equal(t, 5, retriever.lastReq.TopK)
}
