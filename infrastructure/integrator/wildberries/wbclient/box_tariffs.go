package wbclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	wbdomain "github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/tariff-sync/internal/domain"
)

const (
	opGetBoxTariffs = "wildberries.get_box_tariffs"
	maxErrorBody    = 512
)

// GetBoxTariffs consulta os coeficientes de entrega de caixas de um dia (YYYY-MM-DD)
func (c *WildberriesClient) GetBoxTariffs(ctx context.Context, date string) (*wbdomain.BoxTariffsResponse, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, domain.NewTransportError(opGetBoxTariffs, "URL base inválida", err)
	}

	query := endpoint.Query()
	query.Set("date", date)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, domain.NewTransportError(opGetBoxTariffs, "erro ao criar a requisição", err)
	}

	// O Wildberries espera a chave crua, sem o prefixo Bearer
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(opGetBoxTariffs, "erro ao executar a requisição", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(opGetBoxTariffs, "erro ao ler a resposta", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, domain.NewTransportError(
			opGetBoxTariffs,
			fmt.Sprintf("requisição falhou com status: %s", resp.Status),
			errors.New(string(snippet)),
		)
	}

	var response wbdomain.BoxTariffsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, domain.NewSchemaError(opGetBoxTariffs, "erro ao decodificar a resposta", errors.Wrap(err, "json inválido"))
	}

	return &response, nil
}
