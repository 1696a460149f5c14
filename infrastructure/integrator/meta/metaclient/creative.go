package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

const creativeFields = "creative{id,name,title,body,image_url,video_id,thumbnail_url,object_story_spec}"

// GetAdCreative devolve o criativo do anúncio ou nil quando o anúncio não tem criativo
func (c *MetaClient) GetAdCreative(ctx context.Context, adID, accessToken string) (*domain.Creative, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("fields", creativeFields)

	body, err := c.get(ctx, opCreative, c.endpoint(url.PathEscape(adID), params))
	if err != nil {
		return nil, err
	}

	var response metadomain.AdResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("metaclient: resposta de criativo inválida: %w", err)
	}

	return response.Creative, nil
}
