package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/sqlite"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/account"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// storeFixture usa os repositórios SQL reais sobre sqlite em memória
type storeFixture struct {
	clock       *testClock
	cache       repository.CacheRepository
	credentials repository.CredentialsRepository
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.NewConnection(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, migration.Up(ctx, db, migration.DialectSQLite))
	t.Cleanup(func() { _ = db.Close() })

	clock := &testClock{now: fixedNow}

	return &storeFixture{
		clock:       clock,
		cache:       repository.NewCacheRepository(db, repository.DialectSQLite, repository.WithClock(clock.Now)),
		credentials: repository.NewCredentialsRepository(db, repository.DialectSQLite, repository.WithClock(clock.Now)),
	}
}

func (f *storeFixture) service(integrator meta.Integrator) *Service {
	return NewService(integrator, f.cache, f.credentials,
		WithTTLs(30*time.Minute, 24*time.Hour),
		WithClock(f.clock.Now),
	)
}

func (f *storeFixture) saveCredentials(t *testing.T, accountID string) {
	t.Helper()

	require.NoError(t, f.credentials.Upsert(context.Background(), &domain.Credentials{
		UserID:      userID,
		AccountID:   accountID,
		AccessToken: "token",
	}))
}

func TestService_GetMetrics_ExpiredEntryCallsRemoteAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	integrator := metamocks.NewMockIntegrator(ctrl)
	f := newStoreFixture(t)
	f.saveCredentials(t, "123")

	remoteCalls := 0
	integrator.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.InsightsRequest) ([]domain.InsightRow, error) {
			remoteCalls++
			return []domain.InsightRow{{Spend: "100", Impressions: "1000"}}, nil
		}).
		Times(2)

	service := f.service(integrator)
	ctx := context.Background()

	_, err := service.GetMetrics(ctx, userID, domain.InsightQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, remoteCalls)

	f.clock.Advance(29 * time.Minute)
	got, err := service.GetMetrics(ctx, userID, domain.InsightQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, remoteCalls, "entrada dentro do TTL deve vir do cache")
	assert.Equal(t, 100.0, got.TotalSpend)

	f.clock.Advance(2 * time.Minute)
	_, err = service.GetMetrics(ctx, userID, domain.InsightQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, remoteCalls, "entrada expirada deve buscar na API de novo")
}

func TestService_SwitchingAccountRefreshesResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	integrator := metamocks.NewMockIntegrator(ctrl)
	f := newStoreFixture(t)

	spendByAccount := map[string]string{"111": "100", "222": "999"}
	integrator.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.InsightsRequest) ([]domain.InsightRow, error) {
			return []domain.InsightRow{{Spend: spendByAccount[req.AccountID]}}, nil
		}).
		Times(2)

	accounts := account.NewService(f.credentials, f.cache, integrator, false)
	service := f.service(integrator)
	ctx := context.Background()

	_, err := accounts.SaveCredentials(ctx, userID, "act_111", "token-a")
	require.NoError(t, err)

	got, err := service.GetMetrics(ctx, userID, domain.InsightQuery{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.TotalSpend)

	_, err = accounts.SaveCredentials(ctx, userID, "act_222", "token-b")
	require.NoError(t, err)

	got, err = service.GetMetrics(ctx, userID, domain.InsightQuery{})
	require.NoError(t, err)
	assert.Equal(t, 999.0, got.TotalSpend)
}

func TestService_GetAdCreative_RateLimitIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := metamocks.NewMockClient(ctrl)
	f := newStoreFixture(t)
	f.saveCredentials(t, "123")

	rateLimited := &metadomain.APIError{Status: 400, Code: 17, Message: "Meta Ads API Error: User request limit reached"}
	gomock.InOrder(
		client.EXPECT().GetAdCreative(gomock.Any(), "99", "token").Return(nil, rateLimited),
		client.EXPECT().GetAdCreative(gomock.Any(), "99", "token").Return(&domain.Creative{ID: "c-99", Title: "Oferta"}, nil),
	)

	service := f.service(meta.New(client))
	ctx := context.Background()

	creative, err := service.GetAdCreative(ctx, userID, "99")
	assert.ErrorIs(t, err, rateLimited)
	assert.Nil(t, creative)

	creative, err = service.GetAdCreative(ctx, userID, "99")
	require.NoError(t, err)
	require.NotNil(t, creative)
	assert.Equal(t, "c-99", creative.ID)

	// o criativo encontrado fica em cache
	creative, err = service.GetAdCreative(ctx, userID, "99")
	require.NoError(t, err)
	assert.Equal(t, "Oferta", creative.Title)
}

func TestService_GetAdCreative_DeletedAdIsCachedAsAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := metamocks.NewMockClient(ctrl)
	f := newStoreFixture(t)
	f.saveCredentials(t, "123")

	client.EXPECT().GetAdCreative(gomock.Any(), "99", "token").
		Return(nil, &metadomain.APIError{Status: 400, Code: 100, Message: "Meta Ads API Error: Unsupported get request"}).
		Times(1)

	service := f.service(meta.New(client))
	ctx := context.Background()

	for range 2 {
		creative, err := service.GetAdCreative(ctx, userID, "99")
		require.NoError(t, err)
		assert.Nil(t, creative)
	}
}
