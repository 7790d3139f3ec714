// Package xlsx publica o snapshot de tarifas em uma planilha Excel local
package xlsx

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/usecases/publishing"
	"github.com/vfg2006/tariff-sync/pkg/log"
	"github.com/xuri/excelize/v2"
)

const (
	opPublish = "xlsx.publish"
	SheetName = "Tariffs"
)

type Sink struct {
	path string
}

var _ publishing.Sink = (*Sink)(nil)

func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Publish regrava o arquivo inteiro; o arquivo anterior só é substituído após a escrita completa
func (s *Sink) Publish(ctx context.Context, records []*domain.TariffRecord) error {
	if err := ctx.Err(); err != nil {
		return domain.NewPublishError(opPublish, s.path, err)
	}

	rows := publishing.Rows(publishing.SortByCoefficient(records))

	content, err := buildWorkbook(rows)
	if err != nil {
		return domain.NewPublishError(opPublish, "erro ao montar planilha", err)
	}

	if err := writeAtomic(s.path, content); err != nil {
		return domain.NewPublishError(opPublish, s.path, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"destination": s.path,
		"rows":        len(rows) - 1,
	}).Info("Tarifas exportadas para XLSX")

	return nil
}

func buildWorkbook(rows [][]any) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), SheetName); err != nil {
		return nil, errors.Wrap(err, "erro ao renomear aba")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := xl.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "erro ao escrever linha %d", i+1)
		}
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar estilo")
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(publishing.Header), 1)
	if err != nil {
		return nil, err
	}
	if err := xl.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, errors.Wrap(err, "erro ao aplicar negrito no cabeçalho")
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar planilha")
	}

	return buf.Bytes(), nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tariffs-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
