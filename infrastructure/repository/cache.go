package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

const cacheTable = "meta_ads_cache"

//go:generate mockgen -source=cache.go -destination=mocks/cache_mock.go -package=mocks

// CacheRepository guarda resultados serializados por (usuário, chave) com expiração
type CacheRepository interface {
	// Get devolve o payload ainda válido. found=false quando ausente ou expirado.
	Get(ctx context.Context, userID int, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, userID int, key string, data []byte, ttl time.Duration) error
	DeleteByUser(ctx context.Context, userID int) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type cacheRepository struct {
	sqlStore
}

func NewCacheRepository(db *sql.DB, dialect string, opts ...StoreOption) CacheRepository {
	return &cacheRepository{sqlStore: newSQLStore(db, dialect, opts...)}
}

func (r *cacheRepository) Get(ctx context.Context, userID int, key string) ([]byte, bool, error) {
	query, args, err := r.builder.
		Select("id", "user_id", "cache_key", "data", "expires_at", "created_at").
		From(cacheTable).
		Where(squirrel.Eq{"user_id": userID, "cache_key": key}).
		Where(squirrel.Gt{"expires_at": toUnix(r.now())}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build query: %w", err)
	}

	entry, err := r.deserializeEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, dbError("cache get", err)
	}

	return entry.Data, true, nil
}

func (r *cacheRepository) deserializeEntry(row *sql.Row) (*domain.CacheEntry, error) {
	var (
		entry     domain.CacheEntry
		data      string
		expiresAt int64
		createdAt int64
	)

	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CacheKey,
		&data,
		&expiresAt,
		&createdAt,
	); err != nil {
		return nil, err
	}

	entry.Data = []byte(data)
	entry.ExpiresAt = fromUnix(expiresAt)
	entry.CreatedAt = fromUnix(createdAt)

	return &entry, nil
}

func (r *cacheRepository) Set(ctx context.Context, userID int, key string, data []byte, ttl time.Duration) error {
	now := r.now()

	query, args, err := r.builder.
		Insert(cacheTable).
		Columns("user_id", "cache_key", "data", "expires_at", "created_at").
		Values(userID, key, string(data), toUnix(now.Add(ttl)), toUnix(now)).
		Suffix(`
			ON CONFLICT (user_id, cache_key) DO UPDATE SET
				data = EXCLUDED.data,
				expires_at = EXCLUDED.expires_at,
				created_at = EXCLUDED.created_at
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return dbError("cache set", err)
	}

	return nil
}

// DeleteByUser apaga todo o cache do usuário, usado quando as credenciais mudam
func (r *cacheRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	return r.delete(ctx, "cache delete by user", squirrel.Eq{"user_id": userID})
}

// DeleteExpired remove entradas vencidas, chamado pelo agendador de limpeza
func (r *cacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return r.delete(ctx, "cache delete expired", squirrel.LtOrEq{"expires_at": toUnix(r.now())})
}

func (r *cacheRepository) delete(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	query, args, err := r.builder.
		Delete(cacheTable).
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, dbError(op, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error getting rows affected: %w", err)
	}

	return deleted, nil
}
