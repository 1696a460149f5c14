package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/config"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Operações registradas nas métricas
const (
	opInsights      = "insights"
	opCreative      = "creative"
	opCampaigns     = "campaigns"
	opExchangeToken = "exchange_token"
)

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks
type Client interface {
	GetInsights(ctx context.Context, req domain.InsightsRequest) ([]domain.InsightRow, error)
	GetAdCreative(ctx context.Context, adID, accessToken string) (*domain.Creative, error)
	GetCampaigns(ctx context.Context, accountID, accessToken string) ([]domain.Campaign, error)
	ExchangeToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error)
}

type MetaClient struct {
	baseURL    string
	appID      string
	appSecret  string
	maxPages   int
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(cfg config.Meta, m *metrics.Metrics) *MetaClient {
	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/%s", cfg.BaseURL, cfg.Version)
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	return &MetaClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		appID:     cfg.AppID,
		appSecret: cfg.AppSecret,
		maxPages:  maxPages,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		metrics: m,
	}
}

func (c *MetaClient) endpoint(path string, params url.Values) string {
	return fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(path, "/"), params.Encode())
}

// get executa a chamada e devolve o corpo quando o status é 200.
// Qualquer outro status vira *metadomain.APIError.
func (c *MetaClient) get(ctx context.Context, operation, requestURL string) (body []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.RecordUpstream(operation, started, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("metaclient: erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("metaclient: erro ao fazer a requisição")
		return nil, fmt.Errorf("metaclient: %s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("metaclient: erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := metadomain.ParseAPIError(resp.StatusCode, body)

		log.ForContext(ctx).WithFields(log.Fields{
			"operation":   operation,
			"status_code": resp.StatusCode,
			"code":        apiErr.Code,
			"subcode":     apiErr.Subcode,
			"error":       apiErr.Message,
		}).Warn("metaclient: Graph API respondeu com erro")

		return nil, apiErr
	}

	return body, nil
}
