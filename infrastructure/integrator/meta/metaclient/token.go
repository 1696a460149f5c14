package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

var ErrExchangeNotConfigured = errors.New("metaclient: META_APP_ID e META_APP_SECRET são necessários para trocar tokens")

// ExchangeToken troca um token de curta duração por um de longa duração
func (c *MetaClient) ExchangeToken(ctx context.Context, accessToken string) (*metadomain.TokenResponse, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("metaclient: token de acesso não pode ser vazio")
	}

	if c.appID == "" || c.appSecret == "" {
		return nil, ErrExchangeNotConfigured
	}

	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("fb_exchange_token", accessToken)

	body, err := c.get(ctx, opExchangeToken, c.endpoint("oauth/access_token", params))
	if err != nil {
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("metaclient: erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("metaclient: token retornado pela API é vazio")
	}

	log.ForContext(ctx).Infof("metaclient: token de longa duração obtido. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
