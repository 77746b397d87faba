// Package chat orchestrates one conversational turn: query understanding,
// retrieval, grounded answer synthesis, and the degraded replies served when
// any downstream dependency fails.
package chat

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/llm"
	"github.com/jobfinder/job-assistant/internal/retrieval"
	"github.com/jobfinder/job-assistant/internal/types"
)

// Canned replies for inputs and failures that never reach the answer model.
// The user always gets a sentence, never an error page.
const (
	emptyMessageReply = "Bạn hãy nhập câu hỏi về công việc, mức lương hoặc kỹ năng nhé."

	greetingReply = "Chào bạn! Mình là trợ lý JobFinder.\n" +
		"- Tìm kiếm việc làm theo từ khoá, địa điểm, mức lương bạn mong muốn.\n" +
		"- Giải đáp thắc mắc chi tiết về từng job (mô tả, yêu cầu, quyền lợi) và gửi link /jobs/<id> cho bạn xem nhanh.\n" +
		"- Bạn có thể nói mong muốn hoặc gửi mã job đang xem, mình sẽ tư vấn thêm cho bạn."

	retrievalFailedReply = "Hiện tại mình đang gặp lỗi khi tìm kiếm dữ liệu công việc. " +
		"Bạn thử lại sau ít phút nhé."

	llmFailedReply = "Hiện chatbot đang gặp sự cố khi gọi mô hình ngôn ngữ. " +
		"Bạn vui lòng thử lại sau nhé."

	emptyAnswerReply = "Mình chưa nhận được phản hồi rõ ràng từ mô hình. " +
		"Bạn thử hỏi lại một cách cụ thể hơn nhé."
)

// QueryParser extracts structured filters from a user question.
type QueryParser interface {
	ParseQuery(ctx context.Context, text string) types.QueryFilters
}

// Retriever fetches the documents grounding the answer.
type Retriever interface {
	Retrieve(ctx context.Context, req retrieval.Request) ([]types.RetrievedDocument, error)
}

// Synthesizer turns a grounded prompt into answer text.
type Synthesizer interface {
	Synthesize(ctx context.Context, prompt string) (string, error)
}

// LLMSynthesizer answers with the standard-tier chat model.
type LLMSynthesizer struct {
	client llm.Client
}

// NewLLMSynthesizer wraps an LLM client as a Synthesizer.
func NewLLMSynthesizer(client llm.Client) *LLMSynthesizer {
	return &LLMSynthesizer{client: client}
}

// Synthesize generates the answer text.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, prompt string) (string, error) {
	return s.client.GenerateContent(ctx, prompt, llm.TierStandard)
}

// Request is one chat turn's input.
type Request struct {
	Message      string
	History      []Turn
	CurrentJobID *int64
	TopK         int
}

// Response is what the chat endpoint returns to the frontend.
type Response struct {
	Answer       string             `json:"answer"`
	ContextJobs  []ContextJob       `json:"context_jobs"`
	QueryFilters types.QueryFilters `json:"query_filters"`
}

// Service wires the chat pipeline together.
type Service struct {
	parser      QueryParser
	retriever   Retriever
	synthesizer Synthesizer
	log         *zap.Logger
	defaultTopK int
}

// NewService creates a chat Service. defaultTopK applies when a request does
// not specify its own.
func NewService(parser QueryParser, retriever Retriever, synthesizer Synthesizer, defaultTopK int, log *zap.Logger) *Service {
	return &Service{
		parser:      parser,
		retriever:   retriever,
		synthesizer: synthesizer,
		log:         log,
		defaultTopK: defaultTopK,
	}
}

// Chat runs one turn end to end. It never returns an error: every failure
// path degrades to a polite canned answer, because the chat widget has no
// error state of its own.
func (s *Service) Chat(ctx context.Context, req Request) Response {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{
			Answer:       emptyMessageReply,
			ContextJobs:  []ContextJob{},
			QueryFilters: types.DefaultQueryFilters(),
		}
	}

	if IsGreetingOnly(message) {
		return Response{
			Answer:       CleanAnswer(greetingReply),
			ContextJobs:  []ContextJob{},
			QueryFilters: types.DefaultQueryFilters(),
		}
	}

	filters := s.parser.ParseQuery(ctx, message)

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}

	docs, err := s.retriever.Retrieve(ctx, retrieval.Request{
		Query:        BuildRetrievalQuery(message, req.History),
		TopK:         topK,
		Filters:      filters,
		CurrentJobID: req.CurrentJobID,
	})
	if err != nil {
		s.log.Error("retrieval failed", zap.Error(err))
		return Response{
			Answer:       retrievalFailedReply,
			ContextJobs:  []ContextJob{},
			QueryFilters: filters,
		}
	}

	raw, err := s.synthesizer.Synthesize(ctx, BuildAnswerPrompt(message, filters, docs))
	if err != nil {
		s.log.Error("answer synthesis failed", zap.Error(err))
		return Response{
			Answer:       llmFailedReply,
			ContextJobs:  []ContextJob{},
			QueryFilters: filters,
		}
	}

	answer := CleanAnswer(raw)
	if answer == "" {
		answer = CleanAnswer(emptyAnswerReply)
	}

	return Response{
		Answer:       answer,
		ContextJobs:  ContextJobs(docs),
		QueryFilters: filters,
	}
}
