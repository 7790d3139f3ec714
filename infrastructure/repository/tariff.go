// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/tariff-sync/infrastructure/database/postgres"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/pkg/log"
)

const (
	tariffTable = "tariffs"

	opUpsertAll  = "tariffs.upsert_all"
	opListByDate = "tariffs.list_by_date"
)

type TariffRepository interface {
	UpsertAll(ctx context.Context, records []*domain.TariffRecord) (int, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.TariffRecord, error)
}

type tariffRepository struct {
	conn postgres.Conn
}

func NewTariffRepository(conn postgres.Conn) TariffRepository {
	return &tariffRepository{
		conn: conn,
	}
}

// UpsertAll grava o lote inteiro em uma única transação. Em conflito na chave natural
// apenas coefficient e updated_at são atualizados; qualquer erro desfaz o lote.
func (r *tariffRepository) UpsertAll(ctx context.Context, records []*domain.TariffRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			query := squirrel.
				Insert(tariffTable).
				Columns(
					"date",
					"box_size",
					"coefficient",
					"warehouse_name",
					"geo_name",
					"is_marketplace",
				).
				Values(
					record.Date.Format(time.DateOnly),
					record.BoxSize,
					record.Coefficient,
					record.WarehouseName,
					record.GeoName,
					record.IsMarketplace,
				).
				Suffix(`
					ON CONFLICT (date, box_size, warehouse_name, is_marketplace) DO UPDATE SET
						coefficient = EXCLUDED.coefficient,
						updated_at = NOW()
				`).
				PlaceholderFormat(squirrel.Dollar).
				RunWith(tx)

			if _, err := query.ExecContext(ctx); err != nil {
				return fmt.Errorf("erro ao gravar tarifa %s/%t: %w", record.WarehouseName, record.IsMarketplace, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, domain.NewPersistenceError(opUpsertAll, pgDetails(err), err)
	}

	log.ForContext(ctx).WithField("persisted", len(records)).Debug("Lote de tarifas gravado")

	return len(records), nil
}

func (r *tariffRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.TariffRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(
			"id",
			"date",
			"box_size",
			"coefficient",
			"warehouse_name",
			"geo_name",
			"is_marketplace",
			"updated_at",
		).
		From(tariffTable).
		Where(squirrel.Eq{"date": date.Format(time.DateOnly)}).
		OrderBy("coefficient ASC", "warehouse_name ASC", "is_marketplace ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, domain.NewPersistenceError(opListByDate, pgDetails(err), err)
	}
	defer rows.Close()

	tariffs := make([]*domain.TariffRecord, 0)
	for rows.Next() {
		tariff, err := scanTariff(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tarifa: %w", err)
		}
		tariffs = append(tariffs, tariff)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return tariffs, nil
}

func scanTariff(rows *sql.Rows) (*domain.TariffRecord, error) {
	var (
		tariff  domain.TariffRecord
		geoName sql.NullString
	)

	err := rows.Scan(
		&tariff.ID,
		&tariff.Date,
		&tariff.BoxSize,
		&tariff.Coefficient,
		&tariff.WarehouseName,
		&geoName,
		&tariff.IsMarketplace,
		&tariff.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if geoName.Valid {
		tariff.GeoName = &geoName.String
	}
	tariff.Date = domain.TruncateToDay(tariff.Date)

	return &tariff, nil
}

// pgDetails extrai o código SQLSTATE quando a falha veio do postgres
func pgDetails(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("postgres %s (%s)", pqErr.Code, pqErr.Code.Name())
	}
	return ""
}
