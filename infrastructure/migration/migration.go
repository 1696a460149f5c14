package migration

import (
	"context"
	"database/sql"
	"embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dialetos suportados pelo schema
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed sql/*.sql
var schemas embed.FS

// Up aplica o schema do dialeto. Todas as instruções são idempotentes.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	statements, err := Statements(dialect)
	if err != nil {
		return err
	}

	for i, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return errors.Wrapf(err, "migration: falha na instrução %d (%s)", i+1, dialect)
		}
	}

	logrus.WithFields(logrus.Fields{
		"dialect":    dialect,
		"statements": len(statements),
	}).Info("migration: schema aplicado")

	return nil
}

// Statements devolve as instruções do schema na ordem do arquivo
func Statements(dialect string) ([]string, error) {
	content, err := schemas.ReadFile("sql/" + dialect + ".sql")
	if err != nil {
		return nil, errors.Wrapf(err, "migration: dialeto sem schema: %q", dialect)
	}

	statements := make([]string, 0)
	for _, part := range strings.Split(string(content), ";") {
		statement := strings.TrimSpace(part)
		if statement == "" {
			continue
		}
		statements = append(statements, statement)
	}

	return statements, nil
}
