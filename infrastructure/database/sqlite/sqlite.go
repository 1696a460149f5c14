package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// MemoryPath abre um banco em memória, usado nos testes
const MemoryPath = ":memory:"

// NewConnection abre o arquivo SQLite usado como cache de nó único.
// Uma única conexão aberta mantém o banco em memória vivo entre chamadas
// e serializa as escritas.
func NewConnection(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: falha ao abrir banco: %w", err)
	}

	db.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: falha ao habilitar WAL: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping falhou: %w", err)
	}

	logrus.WithField("path", path).Info("sqlite: banco inicializado")

	return db, nil
}
