package wbdomain

import (
	"bytes"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Valor usado pelo Wildberries quando o armazém não oferece a modalidade
const unavailableExpr = "-"

// BoxTariffsResponse é o corpo retornado por GET /api/v1/tariffs/box
type BoxTariffsResponse struct {
	Response *BoxTariffsEnvelope `json:"response"`
}

type BoxTariffsEnvelope struct {
	Data *BoxTariffsData `json:"data"`
}

type BoxTariffsData struct {
	DtNextBox     string             `json:"dtNextBox"`
	DtTillMax     string             `json:"dtTillMax"`
	WarehouseList *[]WarehouseTariff `json:"warehouseList"`
}

// WarehouseTariff representa os coeficientes de um armazém
type WarehouseTariff struct {
	WarehouseName                  string          `json:"warehouseName"`
	GeoName                        string          `json:"geoName"`
	BoxDeliveryBase                CoefficientExpr `json:"boxDeliveryBase"`
	BoxDeliveryLiter               CoefficientExpr `json:"boxDeliveryLiter"`
	BoxDeliveryCoefExpr            CoefficientExpr `json:"boxDeliveryCoefExpr"`
	BoxDeliveryMarketplaceBase     CoefficientExpr `json:"boxDeliveryMarketplaceBase"`
	BoxDeliveryMarketplaceLiter    CoefficientExpr `json:"boxDeliveryMarketplaceLiter"`
	BoxDeliveryMarketplaceCoefExpr CoefficientExpr `json:"boxDeliveryMarketplaceCoefExpr"`
	BoxStorageBase                 CoefficientExpr `json:"boxStorageBase"`
	BoxStorageLiter                CoefficientExpr `json:"boxStorageLiter"`
	BoxStorageCoefExpr             CoefficientExpr `json:"boxStorageCoefExpr"`
}

// Warehouses retorna a lista de armazéns ou false quando o campo não existe
func (r *BoxTariffsResponse) Warehouses() ([]WarehouseTariff, bool) {
	if r == nil || r.Response == nil || r.Response.Data == nil || r.Response.Data.WarehouseList == nil {
		return nil, false
	}
	return *r.Response.Data.WarehouseList, true
}

// CoefficientExpr é o texto de um coeficiente. O provedor envia strings como
// "100,5", mas números JSON também são aceitos.
type CoefficientExpr string

func (c *CoefficientExpr) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*c = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = CoefficientExpr(s)
		return nil
	}

	var n jsoniter.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("coeficiente deve ser string ou número, recebido %s", string(trimmed))
	}
	*c = CoefficientExpr(n.String())
	return nil
}

// Available indica se a modalidade existe para o armazém (não vazio e diferente de "-")
func (c CoefficientExpr) Available() bool {
	value := strings.TrimSpace(string(c))
	return value != "" && value != unavailableExpr
}

func (c CoefficientExpr) String() string {
	return string(c)
}
