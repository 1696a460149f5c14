package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

const credentialsTable = "meta_ads_credentials"

//go:generate mockgen -source=credentials.go -destination=mocks/credentials_mock.go -package=mocks
type CredentialsRepository interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Credentials, error)
	Upsert(ctx context.Context, credentials *domain.Credentials) error
	Delete(ctx context.Context, userID int) error
}

type credentialsRepository struct {
	sqlStore
}

func NewCredentialsRepository(db *sql.DB, dialect string, opts ...StoreOption) CredentialsRepository {
	return &credentialsRepository{sqlStore: newSQLStore(db, dialect, opts...)}
}

// GetByUserID devolve nil, nil quando o usuário ainda não configurou credenciais
func (r *credentialsRepository) GetByUserID(ctx context.Context, userID int) (*domain.Credentials, error) {
	query, args, err := r.builder.
		Select("user_id", "account_id", "access_token", "created_at", "updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		credentials domain.Credentials
		createdAt   int64
		updatedAt   int64
	)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&credentials.UserID,
		&credentials.AccountID,
		&credentials.AccessToken,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("credentials get", err)
	}

	credentials.CreatedAt = fromUnix(createdAt)
	credentials.UpdatedAt = fromUnix(updatedAt)

	return &credentials, nil
}

// Upsert grava as credenciais do usuário, substituindo conta e token existentes
func (r *credentialsRepository) Upsert(ctx context.Context, credentials *domain.Credentials) error {
	now := toUnix(r.now())

	query, args, err := r.builder.
		Insert(credentialsTable).
		Columns("user_id", "account_id", "access_token", "created_at", "updated_at").
		Values(credentials.UserID, credentials.AccountID, credentials.AccessToken, now, now).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				access_token = EXCLUDED.access_token,
				updated_at = EXCLUDED.updated_at
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return dbError("credentials upsert", err)
	}

	return nil
}

func (r *credentialsRepository) Delete(ctx context.Context, userID int) error {
	query, args, err := r.builder.
		Delete(credentialsTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return dbError("credentials delete", err)
	}

	return nil
}
