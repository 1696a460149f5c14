package meta

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/integrator_mock.go -package=mocks
type Integrator interface {
	GetInsights(ctx context.Context, req domain.InsightsRequest) ([]domain.InsightRow, error)
	GetAdCreative(ctx context.Context, adID, accessToken string) (*domain.Creative, error)
	GetCampaigns(ctx context.Context, accountID, accessToken string) ([]domain.Campaign, error)
	ExchangeToken(ctx context.Context, accessToken string) (string, error)
}

// MetaIntegrator adapta o cliente da Graph API para os casos de uso
type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) GetInsights(ctx context.Context, req domain.InsightsRequest) ([]domain.InsightRow, error) {
	if req.Level == "" {
		req.Level = domain.DefaultLevel
	}
	if req.TimeRange == nil && req.DatePreset == "" {
		req.DatePreset = domain.DefaultDatePreset
	}

	rows, err := s.Client.GetInsights(ctx, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": req.AccountID,
			"level":      req.Level,
			"error":      err.Error(),
		}).Error("insights: failed to get insights from API")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": req.AccountID,
		"level":      req.Level,
		"rows":       len(rows),
	}).Debug("insights: successfully retrieved insights")

	return rows, nil
}

// GetAdCreative devolve nil sem erro quando o anúncio foi removido ou o
// token perdeu acesso a ele. Limite, falha de rede e 5xx são propagados.
func (s *MetaIntegrator) GetAdCreative(ctx context.Context, adID, accessToken string) (*domain.Creative, error) {
	creative, err := s.Client.GetAdCreative(ctx, adID, accessToken)
	if err == nil {
		return creative, nil
	}

	if apiErr, ok := IsRemoteError(err); ok && apiErr.IsUnavailable() {
		logrus.WithFields(logrus.Fields{
			"ad_id":     adID,
			"meta_code": apiErr.Code,
			"error":     err.Error(),
		}).Warn("creative: criativo indisponível, retornando vazio")
		return nil, nil
	}

	logrus.WithFields(logrus.Fields{
		"ad_id": adID,
		"error": err.Error(),
	}).Error("creative: failed to get creative from API")
	return nil, err
}

func (s *MetaIntegrator) GetCampaigns(ctx context.Context, accountID, accessToken string) ([]domain.Campaign, error) {
	campaigns, err := s.Client.GetCampaigns(ctx, accountID, accessToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("campaigns: failed to get campaigns from API")
		return nil, err
	}

	return campaigns, nil
}

// ExchangeToken devolve o token de longa duração
func (s *MetaIntegrator) ExchangeToken(ctx context.Context, accessToken string) (string, error) {
	token, err := s.Client.ExchangeToken(ctx, accessToken)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// IsRemoteError indica se o erro veio da Graph API
func IsRemoteError(err error) (*metadomain.APIError, bool) {
	var apiErr *metadomain.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
