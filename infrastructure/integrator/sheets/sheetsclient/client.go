package sheetsclient

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputOption = "USER_ENTERED"

// Client é o cliente de uma planilha de destino, autenticado com as credenciais de um usuário
type Client struct {
	service *sheets.Service
}

// New cria o cliente com as opções informadas (credenciais, endpoint, http client)
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do Google Sheets: %w", err)
	}

	return &Client{service: service}, nil
}

// NewFromCredentials cria o cliente a partir do JSON de credenciais (service account ou usuário autorizado)
func NewFromCredentials(ctx context.Context, cfg *config.Config, credentialsJSON []byte) (*Client, error) {
	opts := []option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	}
	if cfg.Google.SheetsEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Google.SheetsEndpoint))
	}

	return New(ctx, opts...)
}

// LastRow devolve o tamanho da maior coluna da aba, que é a última linha usada
func (c *Client) LastRow(ctx context.Context, spreadsheetID, sheetName string) (int, error) {
	resp, err := c.service.Spreadsheets.Values.
		Get(spreadsheetID, utils.QuoteSheetName(sheetName)).
		MajorDimension("COLUMNS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("erro ao ler a aba %q: %w", sheetName, err)
	}

	lastRow := 0
	for _, column := range resp.Values {
		lastRow = max(lastRow, len(column))
	}

	return lastRow, nil
}

// ClearRanges limpa os intervalos em uma única chamada
func (c *Client) ClearRanges(ctx context.Context, spreadsheetID string, ranges []string) error {
	if len(ranges) == 0 {
		return nil
	}

	_, err := c.service.Spreadsheets.Values.
		BatchClear(spreadsheetID, &sheets.BatchClearValuesRequest{Ranges: ranges}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("erro ao limpar intervalos: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"spreadsheet_id": spreadsheetID,
		"ranges":         ranges,
	}).Debug("sheets: intervalos limpos")

	return nil
}

// BatchWrite escreve todos os blocos em uma única chamada values:batchUpdate
func (c *Client) BatchWrite(ctx context.Context, spreadsheetID string, data []domain.SheetRangeValues) error {
	if len(data) == 0 {
		return nil
	}

	valueRanges := make([]*sheets.ValueRange, 0, len(data))
	for _, d := range data {
		valueRanges = append(valueRanges, &sheets.ValueRange{
			Range:          d.Range,
			MajorDimension: "ROWS",
			Values:         d.Values,
		})
	}

	resp, err := c.service.Spreadsheets.Values.
		BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: valueInputOption,
			Data:             valueRanges,
		}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("erro ao escrever intervalos: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"spreadsheet_id": spreadsheetID,
		"ranges":         len(data),
		"updated_cells":  resp.TotalUpdatedCells,
	}).Debug("sheets: escrita em lote concluída")

	return nil
}
