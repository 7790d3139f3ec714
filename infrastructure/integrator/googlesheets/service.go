package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/tariff-sync/infrastructure/integrator/googlesheets/sheetsclient"
	"github.com/vfg2006/tariff-sync/internal/config"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/usecases/publishing"
	"github.com/vfg2006/tariff-sync/pkg/log"
)

const (
	opPublish   = "googlesheets.publish"
	lastColumn  = "E"
	headerWidth = int64(5)
)

type GoogleSheetsService struct {
	Client sheetsclient.Client
	cfg    config.GoogleSheets
}

var _ publishing.Sink = (*GoogleSheetsService)(nil)

func New(client sheetsclient.Client, cfg config.GoogleSheets) *GoogleSheetsService {
	return &GoogleSheetsService{
		Client: client,
		cfg:    cfg,
	}
}

// Publish substitui o conteúdo da aba configurada em cada planilha, na ordem de SHEET_IDS.
// Por padrão a primeira falha interrompe as planilhas seguintes.
func (s *GoogleSheetsService) Publish(ctx context.Context, records []*domain.TariffRecord) error {
	logger := log.ForContext(ctx)

	values := publishing.Rows(publishing.SortByCoefficient(records))

	var failures []error
	for _, spreadsheetID := range s.cfg.SheetIDs {
		if err := s.publishTo(ctx, spreadsheetID, values); err != nil {
			logger.WithError(err).WithField("destination", spreadsheetID).Error("Erro ao publicar tarifas no Google Sheets")

			if !s.cfg.ContinueOnError {
				return domain.NewPublishError(opPublish, "planilha "+spreadsheetID, err)
			}

			failures = append(failures, fmt.Errorf("planilha %s: %w", spreadsheetID, err))
			continue
		}

		logger.WithFields(log.Fields{
			"destination": spreadsheetID,
			"rows":        len(values) - 1,
		}).Info("Tarifas publicadas no Google Sheets")
	}

	if len(failures) > 0 {
		return domain.NewPublishError(
			opPublish,
			fmt.Sprintf("%d de %d planilhas falharam", len(failures), len(s.cfg.SheetIDs)),
			errors.Join(failures...),
		)
	}

	return nil
}

// publishTo grava o snapshot por cima do anterior e só depois limpa as linhas que
// sobraram abaixo dele. Se a escrita falhar, a planilha continua com o último snapshot.
func (s *GoogleSheetsService) publishTo(ctx context.Context, spreadsheetID string, values [][]any) error {
	if err := s.Client.UpdateValues(ctx, spreadsheetID, s.rangeFrom(1), values); err != nil {
		return err
	}

	if err := s.Client.ClearValues(ctx, spreadsheetID, s.rangeFrom(len(values)+1)); err != nil {
		return fmt.Errorf("erro ao limpar linhas excedentes: %w", err)
	}

	return s.Client.BoldHeader(ctx, spreadsheetID, s.cfg.SheetGID, headerWidth)
}

// rangeFrom retorna o intervalo A{row}:E da aba configurada
func (s *GoogleSheetsService) rangeFrom(row int) string {
	name := strings.ReplaceAll(s.cfg.SheetName, "'", "''")
	return fmt.Sprintf("'%s'!A%d:%s", name, row, lastColumn)
}
