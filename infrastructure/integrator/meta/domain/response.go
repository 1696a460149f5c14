package metadomain

import (
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

type Paging struct {
	Next string `json:"next,omitempty"`
}

// InsightsResponse é uma página de /act_{id}/insights
type InsightsResponse struct {
	Data   []domain.InsightRow `json:"data"`
	Paging Paging              `json:"paging"`
}

// CampaignsResponse é uma página de /act_{id}/campaigns
type CampaignsResponse struct {
	Data   []domain.Campaign `json:"data"`
	Paging Paging            `json:"paging"`
}

// AdResponse é o nó do anúncio com o criativo expandido
type AdResponse struct {
	ID       string           `json:"id"`
	Creative *domain.Creative `json:"creative,omitempty"`
}

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
