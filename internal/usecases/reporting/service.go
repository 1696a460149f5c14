package reporting

import (
	"context"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultShortTTL = 30 * time.Minute
	DefaultLongTTL  = 24 * time.Hour

	dashboardTopCampaigns = 5
)

//go:generate mockgen -source=service.go -destination=mocks/reporter_mock.go -package=mocks

type Reporter interface {
	GetInsights(ctx context.Context, userID int, query domain.InsightQuery) ([]domain.InsightRow, error)
	GetMetrics(ctx context.Context, userID int, query domain.InsightQuery) (*domain.AggregatedMetrics, error)
	GetRankings(ctx context.Context, userID int, query domain.InsightQuery) ([]domain.RankedRow, error)
	GetAdCreative(ctx context.Context, userID int, adID string) (*domain.Creative, error)
	GetDashboard(ctx context.Context, userID int, query domain.InsightQuery) (*domain.Dashboard, error)
	GetCreativesOverview(ctx context.Context, userID int, query domain.InsightQuery) ([]domain.AdPerformance, error)
	GetCampaigns(ctx context.Context, userID int) ([]domain.Campaign, error)
}

// Service consulta o cache por (usuário, chave) antes de chamar a Graph API
// e grava o resultado calculado com o TTL da view.
type Service struct {
	integrator  meta.Integrator
	cache       repository.CacheRepository
	credentials repository.CredentialsRepository
	metrics     *metrics.Metrics

	shortTTL time.Duration
	longTTL  time.Duration
	now      func() time.Time
}

type Option func(*Service)

func WithTTLs(short, long time.Duration) Option {
	return func(s *Service) {
		if short > 0 {
			s.shortTTL = short
		}
		if long > 0 {
			s.longTTL = long
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	integrator meta.Integrator,
	cache repository.CacheRepository,
	credentials repository.CredentialsRepository,
	opts ...Option,
) *Service {
	s := &Service{
		integrator:  integrator,
		cache:       cache,
		credentials: credentials,
		shortTTL:    DefaultShortTTL,
		longTTL:     DefaultLongTTL,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) GetInsights(ctx context.Context, userID int, query domain.InsightQuery) ([]domain.InsightRow, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	level := query.Level
	if level == "" {
		level = domain.DefaultLevel
	}

	key := BuildCacheKey(ViewInsights, query, level)

	return cached(ctx, s, userID, ViewInsights, key, s.shortTTL, func() ([]domain.InsightRow, error) {
		return s.integrator.GetInsights(ctx, s.insightsRequest(credentials, query, level))
	})
}

func (s *Service) GetMetrics(ctx context.Context, userID int, query domain.InsightQuery) (*domain.AggregatedMetrics, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ViewMetrics, query)

	return cached(ctx, s, userID, ViewMetrics, key, s.shortTTL, func() (*domain.AggregatedMetrics, error) {
		rows, err := s.integrator.GetInsights(ctx, s.insightsRequest(credentials, query, domain.LevelAccount))
		if err != nil {
			return nil, err
		}

		aggregated := insighting.Aggregate(rows)
		return &aggregated, nil
	})
}

func (s *Service) GetRankings(ctx context.Context, userID int, query domain.InsightQuery) ([]domain.RankedRow, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = ranking.DefaultSortBy
	}

	limit := ranking.DefaultLimit
	if query.Limit != nil {
		limit = *query.Limit
	}

	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ViewRankings, query, sortBy, strconv.Itoa(limit))

	return cached(ctx, s, userID, ViewRankings, key, s.shortTTL, func() ([]domain.RankedRow, error) {
		rows, err := s.integrator.GetInsights(ctx, s.insightsRequest(credentials, query, domain.LevelAd))
		if err != nil {
			return nil, err
		}

		return ranking.Rank(rows, sortBy, limit)
	})
}

// GetAdCreative devolve nil quando o criativo não está disponível; o nil também fica em cache
func (s *Service) GetAdCreative(ctx context.Context, userID int, adID string) (*domain.Creative, error) {
	if !isNumericID(adID) {
		return nil, fmt.Errorf("%w: ad id %q deve ser numérico", ErrInvalidQuery, adID)
	}

	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := ViewCreative + "_" + adID

	return cached(ctx, s, userID, ViewCreative, key, s.longTTL, func() (*domain.Creative, error) {
		return s.integrator.GetAdCreative(ctx, adID, credentials.AccessToken)
	})
}

// GetDashboard busca conta, anúncios e campanhas em sequência e monta a visão consolidada
func (s *Service) GetDashboard(ctx context.Context, userID int, query domain.InsightQuery) (*domain.Dashboard, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ViewDashboard, query)

	return cached(ctx, s, userID, ViewDashboard, key, s.shortTTL, func() (*domain.Dashboard, error) {
		accountRows, err := s.integrator.GetInsights(ctx, s.insightsRequest(credentials, query, domain.LevelAccount))
		if err != nil {
			return nil, err
		}

		adRows, err := s.integrator.GetInsights(ctx, s.insightsRequest(credentials, query, domain.LevelAd))
		if err != nil {
			return nil, err
		}

		campaignRows, err := s.integrator.GetInsights(ctx, s.insightsRequest(credentials, query, domain.LevelCampaign))
		if err != nil {
			return nil, err
		}

		revenue := insighting.CalculateRevenue(adRows)
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id":          userID,
			"input_rows":       revenue.Diagnostics.InputRows,
			"unique_rows":      revenue.Diagnostics.UniqueRows,
			"distinct_ads":     revenue.Diagnostics.DistinctAdIDs,
			"purchase_actions": revenue.Diagnostics.MatchedPurchaseActions,
		}).Debug("reporting: receita deduplicada")

		return &domain.Dashboard{
			Metrics:      insighting.Aggregate(accountRows),
			Revenue:      revenue,
			Timeline:     insighting.BuildTimeline(adRows),
			TopCampaigns: insighting.TopCampaigns(campaignRows, dashboardTopCampaigns),
		}, nil
	})
}

func (s *Service) GetCreativesOverview(ctx context.Context, userID int, query domain.InsightQuery) ([]domain.AdPerformance, error) {
	if err := s.validateQuery(query); err != nil {
		return nil, err
	}

	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := BuildCacheKey(ViewCreatives, query)

	return cached(ctx, s, userID, ViewCreatives, key, s.shortTTL, func() ([]domain.AdPerformance, error) {
		req := s.insightsRequest(credentials, query, domain.LevelAd)
		req.Fields = metaclient.CreativeInsightFields()

		rows, err := s.integrator.GetInsights(ctx, req)
		if err != nil {
			return nil, err
		}

		return insighting.AdPerformances(rows), nil
	})
}

func (s *Service) GetCampaigns(ctx context.Context, userID int) ([]domain.Campaign, error) {
	credentials, err := s.loadCredentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	return cached(ctx, s, userID, ViewCampaigns, ViewCampaigns, s.shortTTL, func() ([]domain.Campaign, error) {
		return s.integrator.GetCampaigns(ctx, credentials.AccountID, credentials.AccessToken)
	})
}

func (s *Service) insightsRequest(credentials *domain.Credentials, query domain.InsightQuery, level string) domain.InsightsRequest {
	req := domain.InsightsRequest{
		AccountID:   credentials.AccountID,
		AccessToken: credentials.AccessToken,
		Level:       level,
		TimeRange:   query.TimeRange,
	}

	if query.TimeRange == nil {
		req.DatePreset = query.DatePreset
		if req.DatePreset == "" {
			req.DatePreset = domain.DefaultDatePreset
		}
	}

	return req
}

func (s *Service) loadCredentials(ctx context.Context, userID int) (*domain.Credentials, error) {
	credentials, err := s.credentials.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reporting: erro ao carregar credenciais: %w", err)
	}

	if credentials == nil || credentials.AccountID == "" || credentials.AccessToken == "" {
		return nil, ErrNoCredentials
	}

	return credentials, nil
}

// IDs da Graph API são só dígitos; isso mantém a chave creative_{id} sem ambiguidade
func isNumericID(id string) bool {
	if id == "" {
		return false
	}

	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func (s *Service) validateQuery(query domain.InsightQuery) error {
	if query.Level != "" && !domain.IsValidLevel(query.Level) {
		return fmt.Errorf("%w: nível %q", ErrInvalidQuery, query.Level)
	}

	if query.SortBy != "" && !ranking.IsValidSortKey(query.SortBy) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidQuery, ranking.ErrInvalidSortKey, query.SortBy)
	}

	if query.Limit != nil && *query.Limit < 0 {
		return fmt.Errorf("%w: limit não pode ser negativo", ErrInvalidQuery)
	}

	if query.DatePreset != "" && !domain.IsValidDatePreset(query.DatePreset) {
		return fmt.Errorf("%w: date_preset %q", ErrInvalidQuery, query.DatePreset)
	}

	if query.TimeRange != nil {
		if err := utils.ValidateDateRange(query.TimeRange.Since, query.TimeRange.Until, s.now(), domain.MaxTimeRangeDays); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
	}

	return nil
}

// cached aplica o fluxo lookup -> fetch -> store. Falhas do cache nunca
// derrubam a consulta: leitura com erro conta como miss e escrita com erro só é logada.
func cached[T any](
	ctx context.Context,
	s *Service,
	userID int,
	view, key string,
	ttl time.Duration,
	fetch func() (T, error),
) (T, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   userID,
		"cache_key": key,
	})

	data, found, err := s.cache.Get(ctx, userID, key)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup(view, metrics.CacheError)
		logger.WithError(err).Warn("reporting: falha ao ler cache, seguindo para a API")
	case found:
		var result T
		if err := json.Unmarshal(data, &result); err == nil {
			s.metrics.RecordCacheLookup(view, metrics.CacheHit)
			logger.Debug("reporting: cache hit")
			return result, nil
		}
		s.metrics.RecordCacheLookup(view, metrics.CacheError)
		logger.Warn("reporting: payload de cache inválido, descartando")
	default:
		s.metrics.RecordCacheLookup(view, metrics.CacheMiss)
		logger.Debug("reporting: cache miss")
	}

	result, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		logger.WithError(err).Error("reporting: erro ao serializar resultado para o cache")
		return result, nil
	}

	if err := s.cache.Set(ctx, userID, key, payload, ttl); err != nil {
		s.metrics.RecordCacheWriteError(view)
		logger.WithError(err).Warn("reporting: falha ao gravar cache")
	}

	return result, nil
}
