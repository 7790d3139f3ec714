package wildberries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wbdomain "github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/mocks"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"go.uber.org/mock/gomock"
)

func responseWith(warehouses []wbdomain.WarehouseTariff) *wbdomain.BoxTariffsResponse {
	return &wbdomain.BoxTariffsResponse{
		Response: &wbdomain.BoxTariffsEnvelope{
			Data: &wbdomain.BoxTariffsData{WarehouseList: &warehouses},
		},
	}
}

func TestNormalize(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		warehouses []wbdomain.WarehouseTariff
		assertFn   func(t *testing.T, records []*domain.TariffRecord)
		wantKind   error
	}{
		{
			name: "emite registro padrão e marketplace",
			warehouses: []wbdomain.WarehouseTariff{
				{WarehouseName: "Коледино", GeoName: "ЦФО", BoxDeliveryCoefExpr: "100,5", BoxDeliveryMarketplaceCoefExpr: "87.30"},
			},
			assertFn: func(t *testing.T, records []*domain.TariffRecord) {
				require.Len(t, records, 2)
				assert.False(t, records[0].IsMarketplace)
				assert.Equal(t, 100.5, records[0].Coefficient)
				assert.True(t, records[1].IsMarketplace)
				assert.Equal(t, 87.3, records[1].Coefficient)
				for _, r := range records {
					assert.Equal(t, "Коледино", r.WarehouseName)
					assert.Equal(t, "ЦФО", r.Region())
					assert.Equal(t, domain.DefaultBoxSize, r.BoxSize)
					assert.Equal(t, date, r.Date)
				}
			},
		},
		{
			name: "ignora traço e vazio",
			warehouses: []wbdomain.WarehouseTariff{
				{WarehouseName: "Казань", BoxDeliveryCoefExpr: "-", BoxDeliveryMarketplaceCoefExpr: "120"},
				{WarehouseName: "Тула", BoxDeliveryCoefExpr: "", BoxDeliveryMarketplaceCoefExpr: "-"},
			},
			assertFn: func(t *testing.T, records []*domain.TariffRecord) {
				require.Len(t, records, 1)
				assert.Equal(t, "Казань", records[0].WarehouseName)
				assert.True(t, records[0].IsMarketplace)
				assert.Nil(t, records[0].GeoName)
			},
		},
		{
			name: "armazém sem coeficientes não exige nome",
			warehouses: []wbdomain.WarehouseTariff{
				{WarehouseName: "", BoxDeliveryCoefExpr: "-", BoxDeliveryMarketplaceCoefExpr: "-"},
			},
			assertFn: func(t *testing.T, records []*domain.TariffRecord) {
				assert.Empty(t, records)
			},
		},
		{
			name:       "coeficiente inválido",
			warehouses: []wbdomain.WarehouseTariff{{WarehouseName: "A", BoxDeliveryCoefExpr: "abc"}},
			wantKind:   domain.ErrParse,
		},
		{
			name:       "coeficiente negativo",
			warehouses: []wbdomain.WarehouseTariff{{WarehouseName: "A", BoxDeliveryCoefExpr: "-5"}},
			wantKind:   domain.ErrParse,
		},
		{
			name:       "coeficiente acima de NUMERIC(5,2)",
			warehouses: []wbdomain.WarehouseTariff{{WarehouseName: "A", BoxDeliveryCoefExpr: "1000"}},
			wantKind:   domain.ErrParse,
		},
		{
			name:       "nome do armazém vazio",
			warehouses: []wbdomain.WarehouseTariff{{WarehouseName: " ", BoxDeliveryCoefExpr: "10"}},
			wantKind:   domain.ErrSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Normalize(tt.warehouses, date)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)
				assert.Nil(t, records)
				return
			}
			require.NoError(t, err)
			tt.assertFn(t, records)
		})
	}
}

func TestFetchTariffs(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	t.Run("usa a data do fuso configurado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		service := New(client, moscow)
		// 22:30 UTC já é o dia seguinte em Moscou
		service.now = func() time.Time { return time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC) }

		client.EXPECT().
			GetBoxTariffs(gomock.Any(), "2025-03-15").
			Return(responseWith([]wbdomain.WarehouseTariff{
				{WarehouseName: "Коледино", BoxDeliveryCoefExpr: "100,5"},
			}), nil)

		records, err := service.FetchTariffs(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), records[0].Date)
	})

	t.Run("warehouseList ausente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		service := New(client, time.UTC)

		client.EXPECT().
			GetBoxTariffs(gomock.Any(), gomock.Any()).
			Return(&wbdomain.BoxTariffsResponse{Response: &wbdomain.BoxTariffsEnvelope{Data: &wbdomain.BoxTariffsData{}}}, nil)

		_, err := service.FetchTariffs(context.Background())
		assert.ErrorIs(t, err, domain.ErrSchema)
	})

	t.Run("erro de transporte é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		service := New(client, time.UTC)

		transportErr := domain.NewTransportError("wildberries.get_box_tariffs", "", errors.New("connection refused"))
		client.EXPECT().GetBoxTariffs(gomock.Any(), gomock.Any()).Return(nil, transportErr)

		_, err := service.FetchTariffs(context.Background())
		assert.ErrorIs(t, err, domain.ErrTransport)
	})
}
