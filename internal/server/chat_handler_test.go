package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/chat"
)

type fakeChatService struct {
	lastReq chat.Request
	resp    chat.Response
}

func (f *fakeChatService) Chat(_ context.Context, req chat.Request) chat.Response {
	f.lastReq = req
	return f.resp
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func newTestServer(svc ChatService, db Pinger) *Server {
	return New(Config{Port: 0}, svc, db, zap.NewNop())
}

func postChat(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handleChat(w, req)
	return w
}

func TestHandleChat_OK(t *testing.T) {
	svc := &fakeChatService{resp: chat.Response{
		Answer:      "Mình tìm thấy 2 job phù hợp.",
		ContextJobs: []chat.ContextJob{{JobID: 7, Title: "BACKEND ENGINEER", URL: "/jobs/7"}},
	}}
	s := newTestServer(svc, &fakePinger{})

	w := postChat(t, s, `{
		"message": "tìm việc backend",
		"history": [{"role": "user", "content": "xin chào"}],
		"current_job_id": 7,
		"top_k": 5
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Mình tìm thấy 2 job phù hợp.", resp.Answer)
	require.Len(t, resp.ContextJobs, 1)

	assert.Equal(t, "tìm việc backend", svc.lastReq.Message)
	require.NotNil(t, svc.lastReq.CurrentJobID)
	assert.Equal(t, int64(7), *svc.lastReq.CurrentJobID)
	assert.Equal(t, 5, svc.lastReq.TopK)
	require.Len(t, svc.lastReq.History, 1)
	assert.Equal(t, "user", svc.lastReq.History[0].Role)
}

func TestHandleChat_InvalidJSON(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{})
	w := postChat(t, s, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_MissingMessage(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{})
	w := postChat(t, s, `{"history": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message is required")
}

func TestHandleChat_BadHistoryRole(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{})
	w := postChat(t, s, `{"message": "hỏi", "history": [{"role": "system", "content": "x"}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_TopKOutOfRange(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{})
	w := postChat(t, s, `{"message": "hỏi", "top_k": 500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat_OversizedMessage(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{})
	body, err := json.Marshal(map[string]string{"message": strings.Repeat("a", 3000)})
	require.NoError(t, err)

	w := postChat(t, s, string(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHealth_OK(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHandleHealth_DatabaseDown(t *testing.T) {
	s := newTestServer(&fakeChatService{}, &fakePinger{err: errors.New("dial refused")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
