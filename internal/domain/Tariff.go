// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"
)

// DefaultBoxSize é o tamanho de caixa convencional. A API do Wildberries não informa
// o tamanho real da caixa, então todos os registros usam este valor fixo.
const DefaultBoxSize = 30

// MaxCoefficient é o maior valor que cabe em NUMERIC(5,2)
const MaxCoefficient = 999.99

// TariffRecord representa o coeficiente de entrega de um armazém em um dia
type TariffRecord struct {
	ID            int64     `json:"id,omitempty"`
	Date          time.Time `json:"date"`
	BoxSize       int       `json:"box_size"`
	Coefficient   float64   `json:"coefficient"`
	WarehouseName string    `json:"warehouse_name"`
	GeoName       *string   `json:"geo_name"`
	IsMarketplace bool      `json:"is_marketplace"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// TariffKey é a chave natural de uma tarifa: (date, box_size, warehouse_name, is_marketplace)
type TariffKey struct {
	Date          string
	BoxSize       int
	WarehouseName string
	IsMarketplace bool
}

// Key retorna a chave natural do registro
func (t *TariffRecord) Key() TariffKey {
	return TariffKey{
		Date:          t.Date.Format(time.DateOnly),
		BoxSize:       t.BoxSize,
		WarehouseName: t.WarehouseName,
		IsMarketplace: t.IsMarketplace,
	}
}

// Region retorna o nome da região ou string vazia quando ausente
func (t *TariffRecord) Region() string {
	if t.GeoName == nil {
		return ""
	}
	return *t.GeoName
}

// TariffListResponse é a resposta da listagem de tarifas por dia
type TariffListResponse struct {
	Date    string          `json:"date"`
	Total   int             `json:"total"`
	Tariffs []*TariffRecord `json:"tariffs"`
}

// TruncateToDay normaliza um instante para a meia-noite UTC do seu dia civil
// no fuso horário em que foi observado.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
