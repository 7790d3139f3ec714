// Package memory implementa o repositório de tarifas em memória, usado em execuções
// locais (DB_DRIVER=memory) e em testes do pipeline.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/vfg2006/tariff-sync/infrastructure/repository"
	"github.com/vfg2006/tariff-sync/internal/domain"
)

const (
	opUpsertAll = "memory.upsert_all"
	maxVarchar  = 255
)

type TariffRepository struct {
	mu     sync.RWMutex
	rows   map[domain.TariffKey]*domain.TariffRecord
	nextID int64
	now    func() time.Time
}

var _ repository.TariffRepository = (*TariffRepository)(nil)

func NewTariffRepository() *TariffRepository {
	return &TariffRepository{
		rows: make(map[domain.TariffKey]*domain.TariffRecord),
		now:  time.Now,
	}
}

// UpsertAll valida o lote inteiro antes de aplicar, emulando as restrições da tabela
func (r *TariffRepository) UpsertAll(ctx context.Context, records []*domain.TariffRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, domain.NewPersistenceError(opUpsertAll, "contexto encerrado", err)
	}

	for i, record := range records {
		if err := validate(record); err != nil {
			return 0, domain.NewPersistenceError(opUpsertAll, fmt.Sprintf("registro %d", i), err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, record := range records {
		key := record.Key()
		coefficient := roundNumeric(record.Coefficient)

		if existing, ok := r.rows[key]; ok {
			existing.Coefficient = coefficient
			existing.UpdatedAt = now
			continue
		}

		r.nextID++
		stored := *record
		stored.ID = r.nextID
		stored.Date = domain.TruncateToDay(record.Date)
		stored.Coefficient = coefficient
		stored.UpdatedAt = now
		if record.GeoName != nil {
			geo := *record.GeoName
			stored.GeoName = &geo
		}
		r.rows[key] = &stored
	}

	return len(records), nil
}

func (r *TariffRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.TariffRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewPersistenceError("memory.list_by_date", "contexto encerrado", err)
	}

	day := date.Format(time.DateOnly)

	r.mu.RLock()
	tariffs := make([]*domain.TariffRecord, 0)
	for key, row := range r.rows {
		if key.Date == day {
			copied := *row
			tariffs = append(tariffs, &copied)
		}
	}
	r.mu.RUnlock()

	sort.Slice(tariffs, func(i, j int) bool {
		a, b := tariffs[i], tariffs[j]
		if a.Coefficient != b.Coefficient {
			return a.Coefficient < b.Coefficient
		}
		if a.WarehouseName != b.WarehouseName {
			return a.WarehouseName < b.WarehouseName
		}
		return !a.IsMarketplace && b.IsMarketplace
	})

	return tariffs, nil
}

// Count retorna o número de linhas armazenadas
func (r *TariffRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func validate(record *domain.TariffRecord) error {
	switch {
	case record == nil:
		return fmt.Errorf("registro nulo")
	case record.Date.IsZero():
		return fmt.Errorf("null value in column \"date\"")
	case math.IsNaN(record.Coefficient) || math.Abs(roundNumeric(record.Coefficient)) >= 1000:
		return fmt.Errorf("numeric field overflow: %v", record.Coefficient)
	case utf8.RuneCountInString(record.WarehouseName) > maxVarchar:
		return fmt.Errorf("value too long for type character varying(%d)", maxVarchar)
	case record.GeoName != nil && utf8.RuneCountInString(*record.GeoName) > maxVarchar:
		return fmt.Errorf("value too long for type character varying(%d)", maxVarchar)
	}
	return nil
}

func roundNumeric(value float64) float64 {
	return math.Round(value*100) / 100
}
