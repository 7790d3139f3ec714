package publishing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/usecases/publishing/mocks"
	"go.uber.org/mock/gomock"
)

func tariff(warehouse string, coefficient float64, marketplace bool) *domain.TariffRecord {
	return &domain.TariffRecord{
		BoxSize:       domain.DefaultBoxSize,
		Coefficient:   coefficient,
		WarehouseName: warehouse,
		IsMarketplace: marketplace,
	}
}

func TestSortByCoefficient(t *testing.T) {
	records := []*domain.TariffRecord{
		tariff("C", 120, false),
		tariff("A", 87.3, false),
		tariff("B", 87.3, true),
		tariff("D", 0, false),
	}

	sorted := SortByCoefficient(records)

	assert.Equal(t, []string{"D", "A", "B", "C"}, []string{
		sorted[0].WarehouseName, sorted[1].WarehouseName, sorted[2].WarehouseName, sorted[3].WarehouseName,
	})
	assert.Equal(t, "C", records[0].WarehouseName, "a entrada não deve ser alterada")

	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Coefficient, sorted[i].Coefficient)
	}
}

func TestRows(t *testing.T) {
	geo := "ЦФО"
	withGeo := tariff("Коледино", 100.5, false)
	withGeo.GeoName = &geo

	rows := Rows([]*domain.TariffRecord{withGeo, tariff("Казань", 87.3, true)})

	assert.Equal(t, [][]any{
		{"Box Size", "Coefficient", "Warehouse", "Region", "Marketplace"},
		{30, 100.5, "Коледино", "ЦФО", "No"},
		{30, 87.3, "Казань", "", "Yes"},
	}, rows)
}

func TestRows_Empty(t *testing.T) {
	rows := Rows(nil)
	assert.Len(t, rows, 1)
	assert.Len(t, rows[0], len(Header))
}

func TestChain(t *testing.T) {
	records := []*domain.TariffRecord{tariff("A", 1, false)}

	t.Run("publica em ordem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := mocks.NewMockSink(ctrl)
		second := mocks.NewMockSink(ctrl)

		gomock.InOrder(
			first.EXPECT().Publish(gomock.Any(), records).Return(nil),
			second.EXPECT().Publish(gomock.Any(), records).Return(nil),
		)

		assert.NoError(t, Chain(first, nil, second).Publish(context.Background(), records))
	})

	t.Run("para no primeiro erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		first := mocks.NewMockSink(ctrl)
		second := mocks.NewMockSink(ctrl)

		boom := errors.New("boom")
		first.EXPECT().Publish(gomock.Any(), records).Return(boom)

		err := Chain(first, second).Publish(context.Background(), records)
		assert.ErrorIs(t, err, boom)
	})
}
