package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

const opChatCompletion = "chat_completion"

// APIError é uma resposta não-200 do provedor
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LLM API Error (%d): %s", e.Status, e.Message)
}

// Client fala com qualquer endpoint compatível com /chat/completions da OpenAI
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(cfg config.Assistant, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: m,
	}
}

func (c *Client) Answer(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (answer *domain.Answer, err error) {
	started := time.Now()
	defer func() {
		c.metrics.RecordUpstream(opChatCompletion, started, err)
	}()

	body, err := buildRequestBody(c.model, messages, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("llm: erro ao montar requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: erro na requisição: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := parseError(resp.StatusCode, respBody)
		log.ForContext(ctx).WithFields(log.Fields{
			"status": resp.StatusCode,
			"type":   apiErr.Type,
		}).Warn("llm: resposta de erro do provedor")
		return nil, apiErr
	}

	return parseAnswer(respBody)
}

func buildRequestBody(model string, messages []domain.ChatMessage, maxTokens int) ([]byte, error) {
	body := []byte(`{}`)

	body, err := sjson.SetBytes(body, "model", model)
	if err != nil {
		return nil, err
	}

	if maxTokens > 0 {
		if body, err = sjson.SetBytes(body, "max_tokens", maxTokens); err != nil {
			return nil, err
		}
	}

	for i, message := range messages {
		if body, err = sjson.SetBytes(body, fmt.Sprintf("messages.%d.role", i), message.Role); err != nil {
			return nil, err
		}
		if body, err = sjson.SetBytes(body, fmt.Sprintf("messages.%d.content", i), message.Content); err != nil {
			return nil, err
		}
	}

	return body, nil
}

func parseAnswer(body []byte) (*domain.Answer, error) {
	parsed := gjson.ParseBytes(body)

	content := parsed.Get("choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("llm: resposta sem choices.0.message.content")
	}

	return &domain.Answer{
		Text: content.String(),
		Usage: domain.TokenUsage{
			PromptTokens:     parsed.Get("usage.prompt_tokens").Int(),
			CompletionTokens: parsed.Get("usage.completion_tokens").Int(),
			TotalTokens:      parsed.Get("usage.total_tokens").Int(),
		},
	}, nil
}

func parseError(status int, body []byte) *APIError {
	parsed := gjson.ParseBytes(body)

	message := parsed.Get("error.message").String()
	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{
		Status:  status,
		Type:    parsed.Get("error.type").String(),
		Message: message,
	}
}
