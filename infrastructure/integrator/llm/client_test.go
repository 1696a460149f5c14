package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

func newTestClient(url string) *Client {
	return NewClient(config.Assistant{URL: url + "/v1/", APIKey: "sk-test", Model: "gpt-4o-mini", Timeout: 5 * time.Second}, nil)
}

func TestClient_Answer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", gjson.GetBytes(body, "model").String())
		assert.Equal(t, int64(300), gjson.GetBytes(body, "max_tokens").Int())
		assert.Equal(t, "system", gjson.GetBytes(body, "messages.0.role").String())
		assert.Equal(t, `Qual o "melhor" anúncio?`, gjson.GetBytes(body, "messages.1.content").String())

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "O anúncio B."}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 8, "total_tokens": 128}
		}`))
	}))
	defer server.Close()

	answer, err := newTestClient(server.URL).Answer(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "contexto"},
		{Role: domain.RoleUser, Content: `Qual o "melhor" anúncio?`},
	}, 300)

	require.NoError(t, err)
	assert.Equal(t, "O anúncio B.", answer.Text)
	assert.Equal(t, domain.TokenUsage{PromptTokens: 120, CompletionTokens: 8, TotalTokens: 128}, answer.Usage)
}

func TestClient_AnswerErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		validate func(t *testing.T, err error)
	}{
		{
			name:   "erro do provedor",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"message": "Rate limit reached", "type": "requests"}}`,
			validate: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
				assert.Equal(t, "Rate limit reached", apiErr.Message)
				assert.Equal(t, "requests", apiErr.Type)
			},
		},
		{
			name:   "corpo sem mensagem",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			validate: func(t *testing.T, err error) {
				assert.EqualError(t, err, "LLM API Error (502): Bad Gateway")
			},
		},
		{
			name:   "resposta sem choices",
			status: http.StatusOK,
			body:   `{"choices": []}`,
			validate: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "choices.0.message.content")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Answer(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "oi"}}, 0)
			tt.validate(t, err)
		})
	}
}

func TestBuildRequestBody_OmitsMaxTokens(t *testing.T) {
	body, err := buildRequestBody("m", nil, 0)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(body, "max_tokens").Exists())
	assert.Equal(t, "m", gjson.GetBytes(body, "model").String())
}
