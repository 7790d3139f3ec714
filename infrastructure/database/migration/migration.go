package migration

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	migrationsDir = "migrations"
	tableName     = "schema_migrations"
)

func configureGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetTableName(tableName)
	goose.SetLogger(logrus.StandardLogger())

	return goose.SetDialect("postgres")
}

// Up aplica todas as migrações pendentes do schema de tarifas
func Up(ctx context.Context, db *sql.DB) error {
	if err := configureGoose(); err != nil {
		return errors.Wrap(err, "erro ao configurar goose")
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return errors.Wrap(err, "erro ao aplicar migrações")
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return errors.Wrap(err, "erro ao obter versão do schema")
	}

	logrus.WithField("version", version).Info("Migrações aplicadas")
	return nil
}

// Down desfaz a última migração aplicada
func Down(ctx context.Context, db *sql.DB) error {
	if err := configureGoose(); err != nil {
		return errors.Wrap(err, "erro ao configurar goose")
	}

	return goose.DownContext(ctx, db, migrationsDir)
}
