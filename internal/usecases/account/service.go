package account

import (
	"context"
	"strings"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/log"
)

const accountPrefix = "act_"

//go:generate mockgen -source=service.go -destination=mocks/account_mock.go -package=mocks

type AccountService interface {
	GetCredentials(ctx context.Context, userID int) (*domain.CredentialsStatus, error)
	SaveCredentials(ctx context.Context, userID int, accountID, accessToken string) (*domain.CredentialsStatus, error)
	DeleteCredentials(ctx context.Context, userID int) error
}

type Service struct {
	credentialsRepository repository.CredentialsRepository
	cacheRepository       repository.CacheRepository
	metaService           meta.Integrator
	exchangeTokens        bool
}

// NewService recebe exchangeTokens=true quando há app do Meta configurado
// para trocar tokens de curta duração por tokens de longa duração.
func NewService(
	credentialsRepository repository.CredentialsRepository,
	cacheRepository repository.CacheRepository,
	metaService meta.Integrator,
	exchangeTokens bool,
) *Service {
	return &Service{
		credentialsRepository: credentialsRepository,
		cacheRepository:       cacheRepository,
		metaService:           metaService,
		exchangeTokens:        exchangeTokens,
	}
}

// GetCredentials devolve nil sem erro quando o usuário ainda não configurou a conta
func (s *Service) GetCredentials(ctx context.Context, userID int) (*domain.CredentialsStatus, error) {
	credentials, err := s.credentialsRepository.GetByUserID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("account: erro ao buscar credenciais")
		return nil, NewUserAccountError(ErrFetchCredentials, apiErrors.ErrDatabaseOperation, userID, "Falha ao consultar credenciais no banco de dados")
	}

	return credentials.Status(), nil
}

func (s *Service) SaveCredentials(ctx context.Context, userID int, accountID, accessToken string) (*domain.CredentialsStatus, error) {
	accountID = NormalizeAccountID(accountID)
	accessToken = strings.TrimSpace(accessToken)

	if accountID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "Informe o ID da conta de anúncios")
	}

	if accessToken == "" {
		return nil, NewAccountError(ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData, "Informe o token de acesso")
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":    userID,
		"account_id": accountID,
	})

	if s.exchangeTokens {
		longLived, err := s.metaService.ExchangeToken(ctx, accessToken)
		if err != nil {
			logger.WithError(err).Warn("account: falha ao trocar token por longa duração, mantendo o token informado")
		} else if longLived != "" {
			accessToken = longLived
			logger.Info("account: token trocado por longa duração")
		}
	}

	// sem leitura anterior confiável o cache é tratado como de outra conta
	previous, lookupErr := s.credentialsRepository.GetByUserID(ctx, userID)
	if lookupErr != nil {
		logger.WithError(lookupErr).Warn("account: não foi possível ler as credenciais anteriores")
	}

	credentials := &domain.Credentials{
		UserID:      userID,
		AccountID:   accountID,
		AccessToken: accessToken,
	}

	if err := s.credentialsRepository.Upsert(ctx, credentials); err != nil {
		logger.WithError(err).Error("account: erro ao salvar credenciais")
		return nil, NewUserAccountError(ErrSaveCredentials, apiErrors.ErrDatabaseOperation, userID, "Falha ao salvar credenciais no banco de dados")
	}

	logger.Info("account: credenciais salvas")

	if lookupErr != nil || credentialsChanged(previous, credentials) {
		s.purgeCache(ctx, userID)
	}

	return credentials.Status(), nil
}

// DeleteCredentials remove as credenciais e limpa o cache do usuário,
// já que os resultados guardados pertencem à conta anterior.
func (s *Service) DeleteCredentials(ctx context.Context, userID int) error {
	if err := s.credentialsRepository.Delete(ctx, userID); err != nil {
		log.ForContext(ctx).WithError(err).Error("account: erro ao remover credenciais")
		return NewUserAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Falha ao remover credenciais")
	}

	s.purgeCache(ctx, userID)

	return nil
}

// purgeCache apaga as entradas do usuário; uma falha aqui não desfaz a
// operação nas credenciais, apenas fica registrada.
func (s *Service) purgeCache(ctx context.Context, userID int) {
	logger := log.ForContext(ctx).WithField("user_id", userID)

	removed, err := s.cacheRepository.DeleteByUser(ctx, userID)
	if err != nil {
		logger.WithError(err).Warn("account: credenciais alteradas mas o cache não foi limpo")
		return
	}

	logger.WithField("removed_entries", removed).Info("account: cache do usuário removido")
}

// As chaves de cache não carregam a conta, então trocar conta ou token
// invalida tudo que foi guardado para o usuário.
func credentialsChanged(previous, current *domain.Credentials) bool {
	if previous == nil {
		return true
	}

	return previous.AccountID != current.AccountID || previous.AccessToken != current.AccessToken
}

// NormalizeAccountID remove espaços e o prefixo act_ do ID da conta
func NormalizeAccountID(accountID string) string {
	return strings.TrimPrefix(strings.TrimSpace(accountID), accountPrefix)
}
