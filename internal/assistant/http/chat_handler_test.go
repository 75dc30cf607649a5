package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/llm"
	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/service"
	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/tools"
	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

type stubModel struct {
	responses []*llm.Message
	err       error
}

func (m *stubModel) ChatCompletion(ctx context.Context, messages []llm.Message, declared []llm.Tool) (*llm.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

type stubStore struct {
	projects []domain.Project
}

func (s *stubStore) List(ctx context.Context) ([]domain.Project, error) { return s.projects, nil }
func (s *stubStore) Delete(ctx context.Context, id string) error        { return nil }

func chatRouter(model *stubModel, store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.NewChatService(model, tools.NewRegistry(store, nil, nil)))
	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r
}

func postChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestChat_PlainText(t *testing.T) {
	model := &stubModel{responses: []*llm.Message{
		{Role: "assistant", Content: "Hej!"},
	}}
	r := chatRouter(model, &stubStore{})

	rr := postChat(r, `{"messages":[{"role":"user","content":"hello"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Hej!", resp["message"])
	assert.Contains(t, resp, "capabilities")
	assert.NotContains(t, resp, "functionCalled")
}

func TestChat_ToolTurn(t *testing.T) {
	model := &stubModel{responses: []*llm.Message{
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:       "call-1",
				Type:     "function",
				Function: llm.FunctionCall{Name: "get_projects", Arguments: "{}"},
			}},
		},
		{Role: "assistant", Content: "Du har ett projekt."},
	}}
	store := &stubStore{projects: []domain.Project{{ID: "1", Name: "Shop"}}}
	r := chatRouter(model, store)

	rr := postChat(r, `{"messages":[{"role":"user","content":"list my projects"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Message        string `json:"message"`
		FunctionCalled string `json:"functionCalled"`
		Result         struct {
			Projects []domain.Project `json:"projects"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Du har ett projekt.", resp.Message)
	assert.Equal(t, "get_projects", resp.FunctionCalled)
	require.Len(t, resp.Result.Projects, 1)
	assert.Equal(t, "Shop", resp.Result.Projects[0].Name)
}

func TestChat_EmptyMessages(t *testing.T) {
	r := chatRouter(&stubModel{}, &stubStore{})

	rr := postChat(r, `{"messages":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postChat(r, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChat_UpstreamError(t *testing.T) {
	model := &stubModel{err: &llm.UpstreamError{Status: 503, Body: "overloaded"}}
	r := chatRouter(model, &stubStore{})

	rr := postChat(r, `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
	// Raw upstream body must not leak to the caller.
	assert.NotContains(t, rr.Body.String(), "overloaded")
}

func TestChat_InternalError(t *testing.T) {
	model := &stubModel{responses: []*llm.Message{
		{
			Role: "assistant",
			ToolCalls: []llm.ToolCall{{
				ID:       "call-1",
				Type:     "function",
				Function: llm.FunctionCall{Name: "unknown_tool", Arguments: "{}"},
			}},
		},
	}}
	r := chatRouter(model, &stubStore{})

	rr := postChat(r, `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal server error")
}
