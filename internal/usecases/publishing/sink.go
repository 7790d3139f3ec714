// Package publishing define o destino de publicação das tarifas e utilitários
// compartilhados entre as implementações (Google Sheets, XLSX).
package publishing

import (
	"context"
	"sort"

	"github.com/vfg2006/tariff-sync/internal/domain"
)

// Header é a primeira linha de toda publicação
var Header = []string{"Box Size", "Coefficient", "Warehouse", "Region", "Marketplace"}

// Sink recebe o snapshot completo de tarifas de uma execução
type Sink interface {
	Publish(ctx context.Context, records []*domain.TariffRecord) error
}

// SortByCoefficient retorna uma cópia ordenada de forma estável pelo coeficiente
func SortByCoefficient(records []*domain.TariffRecord) []*domain.TariffRecord {
	sorted := make([]*domain.TariffRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Coefficient < sorted[j].Coefficient
	})

	return sorted
}

// Rows converte os registros em linhas, cabeçalho incluído. Números permanecem
// numéricos para que os destinos possam ordenar e somar as colunas.
func Rows(records []*domain.TariffRecord) [][]any {
	rows := make([][]any, 0, len(records)+1)

	header := make([]any, len(Header))
	for i, title := range Header {
		header[i] = title
	}
	rows = append(rows, header)

	for _, record := range records {
		rows = append(rows, []any{
			record.BoxSize,
			record.Coefficient,
			record.WarehouseName,
			record.Region(),
			marketplaceLabel(record.IsMarketplace),
		})
	}

	return rows
}

func marketplaceLabel(isMarketplace bool) string {
	if isMarketplace {
		return "Yes"
	}
	return "No"
}

type chain []Sink

// Chain publica em cada destino na ordem; o primeiro erro interrompe os seguintes
func Chain(sinks ...Sink) Sink {
	filtered := make(chain, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return filtered
}

func (c chain) Publish(ctx context.Context, records []*domain.TariffRecord) error {
	for _, sink := range c {
		if err := sink.Publish(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
