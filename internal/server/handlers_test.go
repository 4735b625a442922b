package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-swarm/server/internal/agent/model"
	errx "github.com/agent-swarm/server/internal/core/error"
)

// stubRunner answers every query with a fixed result.
type stubRunner struct {
	result *model.Result
	err    error
	lastIn model.QueryInput
}

func (s *stubRunner) Invoke(_ context.Context, in model.QueryInput) (*model.Result, error) {
	s.lastIn = in
	return s.result, s.err
}

func newTestServer(r *stubRunner) *Server {
	return New(Config{Port: "0", CorsAllowedOrigins: "*"}, r)
}

func postQuery(t *testing.T, s *Server, body string) (int, QueryResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out QueryResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubRunner{result: &model.Result{}})

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]string
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestQuerySuccess(t *testing.T) {
	runner := &stubRunner{result: &model.Result{
		Response: "The debit fee is 1.99%.",
		Route:    model.RouteKnowledge,
	}}
	s := newTestServer(runner)

	code, out := postQuery(t, s, `{"message":"what are the fees?","user_id":"u-1"}`)
	assert.Equal(t, 200, code)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "The debit fee is 1.99%.", out.Messages[0].Content)
	assert.Equal(t, "AIMessage", out.Messages[0].Type)
	assert.Empty(t, out.Error)
	assert.Equal(t, "u-1", runner.lastIn.ConversationID)
	assert.Equal(t, "what are the fees?", runner.lastIn.Message)
}

func TestQueryGeneratesConversationIDWhenMissing(t *testing.T) {
	runner := &stubRunner{result: &model.Result{Response: "hi"}}
	s := newTestServer(runner)

	code, _ := postQuery(t, s, `{"message":"hello"}`)
	assert.Equal(t, 200, code)
	assert.NotEmpty(t, runner.lastIn.ConversationID)
}

func TestQueryFailedRunStillReturns200(t *testing.T) {
	appErr := errx.Generation(errors.New("provider down"))
	runner := &stubRunner{
		result: &model.Result{
			Response: "I'm sorry, I wasn't able to answer that right now.",
			Err:      appErr.Error(),
		},
		err: appErr,
	}
	s := newTestServer(runner)

	code, out := postQuery(t, s, `{"message":"what are the fees?"}`)
	assert.Equal(t, 200, code)
	require.Len(t, out.Messages, 1)
	assert.NotEmpty(t, out.Messages[0].Content)
	assert.Contains(t, out.Error, "generation")
}

func TestQueryInvalidBody(t *testing.T) {
	runner := &stubRunner{result: &model.Result{Response: "unused"}}
	s := newTestServer(runner)

	req := httptest.NewRequest("POST", "/query", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var out QueryResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Messages, 1)
	assert.NotEmpty(t, out.Messages[0].Content)
	assert.Equal(t, "invalid request body", out.Error)
	assert.Empty(t, runner.lastIn.Message, "malformed payloads never reach the pipeline")
}

func TestQueryWarningsPassedThrough(t *testing.T) {
	runner := &stubRunner{result: &model.Result{
		Response: "answer",
		Warnings: []string{"knowledge retrieval unavailable"},
	}}
	s := newTestServer(runner)

	code, out := postQuery(t, s, `{"message":"fees?"}`)
	assert.Equal(t, 200, code)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "retrieval")
}
