package wildberries

import (
	"context"
	"fmt"
	"strings"
	"time"

	wbdomain "github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/wbclient"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/pkg/log"
	"github.com/vfg2006/tariff-sync/pkg/utils"
)

const opNormalize = "wildberries.normalize"

type WildberriesIntegrator interface {
	FetchTariffs(ctx context.Context) ([]*domain.TariffRecord, error)
}

type WildberriesService struct {
	Client   wbclient.Client
	location *time.Location
	now      func() time.Time
}

func New(client wbclient.Client, location *time.Location) *WildberriesService {
	if location == nil {
		location = time.UTC
	}

	return &WildberriesService{
		Client:   client,
		location: location,
		now:      time.Now,
	}
}

// FetchTariffs busca as tarifas do dia corrente e as converte em TariffRecord.
// Qualquer falha de parsing aborta a busca inteira.
func (s *WildberriesService) FetchTariffs(ctx context.Context) ([]*domain.TariffRecord, error) {
	logger := log.ForContext(ctx)

	today := domain.TruncateToDay(s.now().In(s.location))

	resp, err := s.Client.GetBoxTariffs(ctx, today.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}

	warehouses, ok := resp.Warehouses()
	if !ok {
		return nil, domain.NewSchemaError(opNormalize, "campo response.data.warehouseList ausente", nil)
	}

	records, err := Normalize(warehouses, today)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"fetched":    len(records),
		"warehouses": len(warehouses),
	}).Infof("Tarifas do Wildberries obtidas para %s", today.Format(time.DateOnly))

	return records, nil
}

// Normalize gera até dois registros por armazém: entrega padrão e marketplace
func Normalize(warehouses []wbdomain.WarehouseTariff, date time.Time) ([]*domain.TariffRecord, error) {
	records := make([]*domain.TariffRecord, 0, len(warehouses)*2)

	for i, warehouse := range warehouses {
		modes := []struct {
			expr          wbdomain.CoefficientExpr
			isMarketplace bool
		}{
			{expr: warehouse.BoxDeliveryCoefExpr, isMarketplace: false},
			{expr: warehouse.BoxDeliveryMarketplaceCoefExpr, isMarketplace: true},
		}

		for _, mode := range modes {
			if !mode.expr.Available() {
				continue
			}

			if strings.TrimSpace(warehouse.WarehouseName) == "" {
				return nil, domain.NewSchemaError(opNormalize, fmt.Sprintf("armazém na posição %d sem warehouseName", i), nil)
			}

			coefficient, err := parseCoefficient(mode.expr)
			if err != nil {
				return nil, domain.NewParseError(
					opNormalize,
					fmt.Sprintf("coeficiente %q do armazém %q", mode.expr, warehouse.WarehouseName),
					err,
				)
			}

			records = append(records, &domain.TariffRecord{
				Date:          date,
				BoxSize:       domain.DefaultBoxSize,
				Coefficient:   coefficient,
				WarehouseName: warehouse.WarehouseName,
				GeoName:       geoName(warehouse.GeoName),
				IsMarketplace: mode.isMarketplace,
			})
		}
	}

	return records, nil
}

func parseCoefficient(expr wbdomain.CoefficientExpr) (float64, error) {
	value, err := utils.ParseDecimal(expr.String())
	if err != nil {
		return 0, err
	}

	value = utils.RoundWithTwoDecimalPlace(value)

	if value < 0 {
		return 0, fmt.Errorf("valor negativo")
	}
	if value > domain.MaxCoefficient {
		return 0, fmt.Errorf("valor excede NUMERIC(5,2)")
	}

	return value, nil
}

func geoName(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
