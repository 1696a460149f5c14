package assisting

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/assisting_mock.go -package=mocks

var (
	ErrEmptyQuestion = errors.New("pergunta obrigatória")
	ErrUnavailable   = errors.New("assistente não configurado")
)

const DefaultMaxTokens = 1000

// Answerer é o modelo de linguagem por trás do assistente
type Answerer interface {
	Answer(ctx context.Context, messages []domain.ChatMessage, maxTokens int) (*domain.Answer, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error)
}

type Service struct {
	answerer  Answerer
	maxTokens int
	metrics   *metrics.Metrics
}

func NewService(answerer Answerer, maxTokens int, m *metrics.Metrics) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Service{
		answerer:  answerer,
		maxTokens: maxTokens,
		metrics:   m,
	}
}

func (s *Service) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, ErrEmptyQuestion
	}

	if s.answerer == nil {
		return nil, ErrUnavailable
	}

	messages := BuildMessages(req)

	answer, err := s.answerer.Answer(ctx, messages, s.maxTokens)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("assisting: falha ao consultar o modelo")
		return nil, err
	}

	s.metrics.RecordAssistantUsage(answer.Usage.PromptTokens, answer.Usage.CompletionTokens)

	log.ForContext(ctx).WithFields(log.Fields{
		"messages":      len(messages),
		"prompt_tokens": answer.Usage.PromptTokens,
		"total_tokens":  answer.Usage.TotalTokens,
	}).Debug("assisting: resposta gerada")

	return &domain.AnalyzeResponse{
		Response: answer.Text,
		Usage:    answer.Usage,
	}, nil
}
