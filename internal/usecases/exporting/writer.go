package exporting

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-exporter/internal/domain"
)

// A linha 1 é o cabeçalho e nunca é escrita nem limpa
const firstDataRow = 2

type Destination struct {
	SpreadsheetID string
	SheetName     string
}

// Writer aplica o modo de escrita (append ou overwrite) sobre uma planilha
type Writer struct {
	sheet SheetWriter
}

func NewWriter(sheet SheetWriter) *Writer {
	return &Writer{sheet: sheet}
}

// Execute escreve as linhas projetadas nos grupos de colunas e devolve o número de linhas escritas.
// Todos os grupos vão numa única chamada de escrita em lote.
func (w *Writer) Execute(ctx context.Context, groups []RangeGroup, rows []ProjectedRow, mode domain.WriteMode, dest Destination) (int, error) {
	if len(groups) == 0 {
		return 0, ErrEmptyMapping
	}

	startRow, err := w.prepare(ctx, groups, mode, dest)
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		logrus.WithFields(logrus.Fields{
			"spreadsheet_id": dest.SpreadsheetID,
			"sheet_name":     dest.SheetName,
			"write_mode":     mode,
		}).Info("export: nenhuma linha para escrever")
		return 0, nil
	}

	endRow := startRow + len(rows) - 1
	data := make([]domain.SheetRangeValues, 0, len(groups))

	for _, g := range groups {
		data = append(data, domain.SheetRangeValues{
			Range:  A1Range(dest.SheetName, g.StartIndex, g.EndIndex, startRow, endRow),
			Values: groupValues(g, rows),
		})
	}

	if err := w.sheet.BatchWrite(ctx, dest.SpreadsheetID, data); err != nil {
		return 0, fmt.Errorf("erro ao escrever na planilha: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"spreadsheet_id": dest.SpreadsheetID,
		"sheet_name":     dest.SheetName,
		"write_mode":     mode,
		"start_row":      startRow,
		"rows":           len(rows),
		"ranges":         len(data),
	}).Debug("export: linhas escritas")

	return len(rows), nil
}

// prepare devolve a primeira linha a ser escrita; no overwrite limpa antes as colunas mapeadas
func (w *Writer) prepare(ctx context.Context, groups []RangeGroup, mode domain.WriteMode, dest Destination) (int, error) {
	switch mode {
	case domain.WriteModeOverwrite:
		ranges := make([]string, 0, len(groups))
		for _, g := range groups {
			ranges = append(ranges, A1Range(dest.SheetName, g.StartIndex, g.EndIndex, firstDataRow, 0))
		}
		if err := w.sheet.ClearRanges(ctx, dest.SpreadsheetID, ranges); err != nil {
			return 0, fmt.Errorf("erro ao limpar colunas da planilha: %w", err)
		}
		return firstDataRow, nil

	case domain.WriteModeAppend:
		lastRow, err := w.sheet.LastRow(ctx, dest.SpreadsheetID, dest.SheetName)
		if err != nil {
			return 0, fmt.Errorf("erro ao obter última linha da planilha: %w", err)
		}
		return max(lastRow+1, firstDataRow), nil
	}

	return 0, invalidRequest("modo de escrita desconhecido %q", mode)
}

// groupValues monta o retângulo linhas x largura do grupo
func groupValues(g RangeGroup, rows []ProjectedRow) [][]any {
	values := make([][]any, 0, len(rows))

	for _, row := range rows {
		byIndex := make(map[int]string, len(row))
		for _, cell := range row {
			byIndex[cell.ColumnIndex] = cell.Value
		}

		line := make([]any, g.Width())
		for i := range line {
			line[i] = byIndex[g.StartIndex+i]
		}
		values = append(values, line)
	}

	return values
}
