package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

const campaignFields = "id,name,status,objective,daily_budget,lifetime_budget"

func (c *MetaClient) GetCampaigns(ctx context.Context, accountID, accessToken string) ([]domain.Campaign, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("fields", campaignFields)

	campaigns := make([]domain.Campaign, 0)
	next := c.endpoint(fmt.Sprintf("act_%s/campaigns", accountID), params)

	for page := 1; next != "" && page <= c.maxPages; page++ {
		body, err := c.get(ctx, opCampaigns, next)
		if err != nil {
			return nil, err
		}

		var response metadomain.CampaignsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("metaclient: resposta de campanhas inválida: %w", err)
		}

		campaigns = append(campaigns, response.Data...)
		next = response.Paging.Next
	}

	return campaigns, nil
}
