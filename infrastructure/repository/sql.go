package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// Dialetos SQL suportados pelos repositórios
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// sqlStore concentra o que os repositórios SQL compartilham: a conexão,
// o formato de placeholder do dialeto e o relógio usado nos timestamps.
type sqlStore struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

type StoreOption func(*sqlStore)

// WithClock troca o relógio usado em timestamps e expiração
func WithClock(now func() time.Time) StoreOption {
	return func(s *sqlStore) {
		s.now = now
	}
}

func newSQLStore(db *sql.DB, dialect string, opts ...StoreOption) sqlStore {
	placeholder := squirrel.PlaceholderFormat(squirrel.Dollar)
	if dialect == DialectSQLite {
		placeholder = squirrel.Question
	}

	store := sqlStore{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(&store)
	}

	return store
}

// dbError padroniza os erros de execução, incluindo o código do postgres quando houver
func dbError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: database error: %w (code: %s)", op, pqErr, pqErr.Code)
	}

	return fmt.Errorf("%s: failed to execute query: %w", op, err)
}

func toUnix(t time.Time) int64 {
	return t.Unix()
}

func fromUnix(seconds int64) time.Time {
	return time.Unix(seconds, 0).UTC()
}
