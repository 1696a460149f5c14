package meta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

func TestMetaIntegrator_GetInsights_AppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetInsights(gomock.Any(), domain.InsightsRequest{
			AccountID:  "1",
			Level:      domain.LevelAd,
			DatePreset: domain.DefaultDatePreset,
		}).
		Return([]domain.InsightRow{{AdID: "a"}}, nil)

	rows, err := New(client).GetInsights(context.Background(), domain.InsightsRequest{AccountID: "1"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMetaIntegrator_GetInsights_KeepsTimeRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	timeRange := &domain.TimeRange{Since: "2024-01-01", Until: "2024-01-02"}

	client.EXPECT().
		GetInsights(gomock.Any(), domain.InsightsRequest{AccountID: "1", Level: domain.LevelAccount, TimeRange: timeRange}).
		Return(nil, nil)

	_, err := New(client).GetInsights(context.Background(), domain.InsightsRequest{AccountID: "1", Level: domain.LevelAccount, TimeRange: timeRange})
	require.NoError(t, err)
}

func TestMetaIntegrator_GetAdCreative_Errors(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		wantErr   bool
	}{
		{
			name:      "anúncio removido vira nil",
			clientErr: &metadomain.APIError{Status: 400, Code: 100, Message: "Meta Ads API Error: Unsupported get request"},
		},
		{
			name:      "sem permissão vira nil",
			clientErr: &metadomain.APIError{Status: 403, Code: 200, Message: "Meta Ads API Error: Permissions error"},
		},
		{
			name:      "não encontrado vira nil",
			clientErr: &metadomain.APIError{Status: 404, Message: "Meta Ads API Error: status 404 Not Found"},
		},
		{
			name:      "limite de requisições propaga",
			clientErr: &metadomain.APIError{Status: 400, Code: 17, Message: "Meta Ads API Error: User request limit reached"},
			wantErr:   true,
		},
		{
			name:      "429 propaga",
			clientErr: &metadomain.APIError{Status: 429, Message: "Meta Ads API Error: status 429 Too Many Requests"},
			wantErr:   true,
		},
		{
			name:      "erro interno propaga",
			clientErr: &metadomain.APIError{Status: 500, Code: 2, Message: "Meta Ads API Error: Service temporarily unavailable"},
			wantErr:   true,
		},
		{
			name:      "token expirado propaga",
			clientErr: &metadomain.APIError{Status: 400, Code: 190, Type: "OAuthException", Message: "Meta Ads API Error: Session has expired"},
			wantErr:   true,
		},
		{
			name:      "falha de rede propaga",
			clientErr: errors.New("dial tcp: connection refused"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			client.EXPECT().GetAdCreative(gomock.Any(), "9", "tok").Return(nil, tt.clientErr)

			creative, err := New(client).GetAdCreative(context.Background(), "9", "tok")

			assert.Nil(t, creative)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.clientErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMetaIntegrator_GetAdCreative_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client.EXPECT().GetAdCreative(gomock.Any(), "9", "tok").Return(nil, context.Canceled)

	creative, err := New(client).GetAdCreative(ctx, "9", "tok")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, creative)
}

func TestMetaIntegrator_ExchangeToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().ExchangeToken(gomock.Any(), "short").Return(&metadomain.TokenResponse{AccessToken: "long"}, nil)
	client.EXPECT().ExchangeToken(gomock.Any(), "bad").Return(nil, errors.New("boom"))

	integrator := New(client)

	token, err := integrator.ExchangeToken(context.Background(), "short")
	require.NoError(t, err)
	assert.Equal(t, "long", token)

	_, err = integrator.ExchangeToken(context.Background(), "bad")
	assert.Error(t, err)
}

func TestIsRemoteError(t *testing.T) {
	apiErr, ok := IsRemoteError(errors.Join(errors.New("ctx"), &metadomain.APIError{Code: 17}))
	require.True(t, ok)
	assert.True(t, apiErr.IsRateLimited())

	_, ok = IsRemoteError(errors.New("plain"))
	assert.False(t, ok)
}
