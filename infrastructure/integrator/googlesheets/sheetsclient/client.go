package sheetsclient

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

type Client interface {
	ClearValues(ctx context.Context, spreadsheetID, rangeA1 string) error
	UpdateValues(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) error
	BoldHeader(ctx context.Context, spreadsheetID string, sheetID int64, columns int64) error
}

type SheetsClient struct {
	service *sheets.Service
}

// NewClient autentica com a conta de serviço indicada em credentialsPath
func NewClient(ctx context.Context, credentialsPath string) (Client, error) {
	return NewClientWithOptions(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente do Google Sheets")
	}

	return &SheetsClient{service: service}, nil
}

func (c *SheetsClient) ClearValues(ctx context.Context, spreadsheetID, rangeA1 string) error {
	_, err := c.service.Spreadsheets.Values.
		Clear(spreadsheetID, rangeA1, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "erro ao limpar %s", rangeA1)
	}
	return nil
}

func (c *SheetsClient) UpdateValues(ctx context.Context, spreadsheetID, rangeA1 string, values [][]any) error {
	_, err := c.service.Spreadsheets.Values.
		Update(spreadsheetID, rangeA1, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "erro ao escrever %s", rangeA1)
	}
	return nil
}

// BoldHeader aplica negrito na primeira linha da aba sheetID
func (c *SheetsClient) BoldHeader(ctx context.Context, spreadsheetID string, sheetID int64, columns int64) error {
	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   columns,
						// Campos zerados são omitidos do JSON sem ForceSendFields
						ForceSendFields: []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat.bold",
				},
			},
		},
	}

	_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, request).Context(ctx).Do()
	if err != nil {
		return errors.Wrap(err, "erro ao formatar cabeçalho")
	}
	return nil
}
