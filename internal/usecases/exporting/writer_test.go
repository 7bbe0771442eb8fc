package exporting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting"
	"github.com/vfg2006/insights-exporter/internal/usecases/exporting/mocks"
	"go.uber.org/mock/gomock"
)

// Mapeamento com lacuna em E: dois grupos, C:D e F:F
func writerFixture(t *testing.T) ([]exporting.RangeGroup, []exporting.ProjectedRow) {
	t.Helper()

	p, err := exporting.NewProjector(domain.ColumnMapping{
		{MetricKey: "ad_id", Column: "C"},
		{MetricKey: "spend", Column: "D"},
		{MetricKey: domain.SkipMetric, Column: "E"},
		{MetricKey: "reach", Column: "F"},
	})
	require.NoError(t, err)

	rows := p.ProjectAll([]domain.InsightRow{
		{"ad_id": "1", "spend": "10", "reach": "100"},
		{"ad_id": "2", "spend": "20", "reach": "200"},
	}, false)

	return exporting.BatchRanges(p.Columns()), rows
}

func TestWriter_Execute(t *testing.T) {
	dest := exporting.Destination{SpreadsheetID: "sheet-1", SheetName: "Dados"}

	tests := []struct {
		name         string
		mode         domain.WriteMode
		setup        func(sheet *mocks.MockSheetWriter)
		expectedRows int
		expectedErr  bool
	}{
		{
			name: "append depois de 10 linhas escreve a partir da linha 11",
			mode: domain.WriteModeAppend,
			setup: func(sheet *mocks.MockSheetWriter) {
				sheet.EXPECT().LastRow(gomock.Any(), "sheet-1", "Dados").Return(10, nil)
				sheet.EXPECT().BatchWrite(gomock.Any(), "sheet-1", []domain.SheetRangeValues{
					{Range: "'Dados'!C11:D12", Values: [][]any{{"1", "10"}, {"2", "20"}}},
					{Range: "'Dados'!F11:F12", Values: [][]any{{"100"}, {"200"}}},
				}).Return(nil)
			},
			expectedRows: 2,
		},
		{
			name: "append em aba vazia preserva o cabeçalho",
			mode: domain.WriteModeAppend,
			setup: func(sheet *mocks.MockSheetWriter) {
				sheet.EXPECT().LastRow(gomock.Any(), "sheet-1", "Dados").Return(0, nil)
				sheet.EXPECT().BatchWrite(gomock.Any(), "sheet-1", gomock.Cond(func(data []domain.SheetRangeValues) bool {
					return len(data) == 2 && data[0].Range == "'Dados'!C2:D3" && data[1].Range == "'Dados'!F2:F3"
				})).Return(nil)
			},
			expectedRows: 2,
		},
		{
			name: "overwrite limpa só as colunas mapeadas a partir da linha 2",
			mode: domain.WriteModeOverwrite,
			setup: func(sheet *mocks.MockSheetWriter) {
				gomock.InOrder(
					sheet.EXPECT().ClearRanges(gomock.Any(), "sheet-1", []string{"'Dados'!C2:D", "'Dados'!F2:F"}).Return(nil),
					sheet.EXPECT().BatchWrite(gomock.Any(), "sheet-1", []domain.SheetRangeValues{
						{Range: "'Dados'!C2:D3", Values: [][]any{{"1", "10"}, {"2", "20"}}},
						{Range: "'Dados'!F2:F3", Values: [][]any{{"100"}, {"200"}}},
					}).Return(nil),
				)
			},
			expectedRows: 2,
		},
		{
			name: "falha na escrita aborta",
			mode: domain.WriteModeAppend,
			setup: func(sheet *mocks.MockSheetWriter) {
				sheet.EXPECT().LastRow(gomock.Any(), "sheet-1", "Dados").Return(3, nil)
				sheet.EXPECT().BatchWrite(gomock.Any(), "sheet-1", gomock.Any()).Return(errors.New("quota exceeded"))
			},
			expectedErr: true,
		},
		{
			name: "falha ao limpar aborta sem escrever",
			mode: domain.WriteModeOverwrite,
			setup: func(sheet *mocks.MockSheetWriter) {
				sheet.EXPECT().ClearRanges(gomock.Any(), "sheet-1", gomock.Any()).Return(errors.New("forbidden"))
			},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sheet := mocks.NewMockSheetWriter(ctrl)
			tt.setup(sheet)

			groups, rows := writerFixture(t)
			written, err := exporting.NewWriter(sheet).Execute(context.Background(), groups, rows, tt.mode, dest)

			if tt.expectedErr {
				assert.Error(t, err)
				assert.Zero(t, written)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRows, written)
		})
	}
}

func TestWriter_Execute_NoRows(t *testing.T) {
	dest := exporting.Destination{SpreadsheetID: "sheet-1", SheetName: "Dados"}
	groups, _ := writerFixture(t)

	t.Run("overwrite ainda limpa", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sheet := mocks.NewMockSheetWriter(ctrl)
		sheet.EXPECT().ClearRanges(gomock.Any(), "sheet-1", gomock.Len(2)).Return(nil)

		written, err := exporting.NewWriter(sheet).Execute(context.Background(), groups, nil, domain.WriteModeOverwrite, dest)
		require.NoError(t, err)
		assert.Zero(t, written)
	})

	t.Run("append não escreve", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sheet := mocks.NewMockSheetWriter(ctrl)
		sheet.EXPECT().LastRow(gomock.Any(), "sheet-1", "Dados").Return(10, nil)

		written, err := exporting.NewWriter(sheet).Execute(context.Background(), groups, nil, domain.WriteModeAppend, dest)
		require.NoError(t, err)
		assert.Zero(t, written)
	})
}
