package wbclient

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	wbdomain "github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/tariff-sync/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetBoxTariffs(ctx context.Context, date string) (*wbdomain.BoxTariffsResponse, error)
}

type WildberriesClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient cria o cliente HTTP da API de tarifas do Wildberries
func NewClient(cfg config.Wildberries) Client {
	return &WildberriesClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
	}
}
