package exporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-exporter/internal/domain"
)

func TestNewProjector_Validation(t *testing.T) {
	tests := []struct {
		name        string
		mapping     domain.ColumnMapping
		expectedErr error
	}{
		{
			name:        "mapeamento vazio",
			mapping:     domain.ColumnMapping{},
			expectedErr: ErrEmptyMapping,
		},
		{
			name: "apenas colunas ignoradas",
			mapping: domain.ColumnMapping{
				{MetricKey: domain.SkipMetric, Column: "A"},
				{MetricKey: "", Column: "B"},
			},
			expectedErr: ErrEmptyMapping,
		},
		{
			name: "coluna repetida",
			mapping: domain.ColumnMapping{
				{MetricKey: "spend", Column: "C"},
				{MetricKey: "reach", Column: "c"},
			},
			expectedErr: ErrInvalidRequest,
		},
		{
			name: "coluna inválida",
			mapping: domain.ColumnMapping{
				{MetricKey: "spend", Column: "C3"},
			},
			expectedErr: ErrInvalidRequest,
		},
		{
			name: "coluna ignorada pode repetir a letra de uma ativa",
			mapping: domain.ColumnMapping{
				{MetricKey: "spend", Column: "C"},
				{MetricKey: domain.SkipMetric, Column: "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProjector(tt.mapping)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestProject(t *testing.T) {
	mapping := domain.ColumnMapping{
		{MetricKey: "ad_id", Column: "B"},
		{MetricKey: domain.SkipMetric, Column: "C"},
		{MetricKey: "spend", Column: "D"},
		{MetricKey: "messages", Column: "A"},
	}
	row := domain.InsightRow{"ad_id": "42", "spend": "3.10"}

	p, err := NewProjector(mapping)
	require.NoError(t, err)

	cells := p.Project(row)
	assert.Equal(t, ProjectedRow{
		{ColumnIndex: 1, Value: "42"},
		{ColumnIndex: 3, Value: "3.10"},
		{ColumnIndex: 0, Value: "0"},
	}, cells)
}

func TestProjectAll_FiltroDeLinhasZeradas(t *testing.T) {
	rows := []domain.InsightRow{
		{"ad_id": "1", "date_start": "2024-06-10", "spend": "0", "impressions": "0"},
		{"ad_id": "2", "date_start": "2024-06-10", "spend": "0.00", "impressions": "15"},
		{"ad_id": "3", "date_start": "2024-06-10"},
		{"ad_id": "4", "date_start": "2024-06-10", "spend": "1.5"},
		{"ad_id": "5", "date_start": "2024-06-10", "spend": "n/a"},
	}

	tests := []struct {
		name        string
		mapping     domain.ColumnMapping
		expectedIDs []string
	}{
		{
			name: "com colunas de estatística remove as linhas zeradas",
			mapping: domain.ColumnMapping{
				{MetricKey: "ad_id", Column: "A"},
				{MetricKey: "date", Column: "B"},
				{MetricKey: "spend", Column: "C"},
				{MetricKey: "impressions", Column: "D"},
			},
			expectedIDs: []string{"2", "4", "5"},
		},
		{
			name: "sem colunas de estatística mantém todas as linhas",
			mapping: domain.ColumnMapping{
				{MetricKey: "ad_id", Column: "A"},
				{MetricKey: "date", Column: "B"},
			},
			expectedIDs: []string{"1", "2", "3", "4", "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProjector(tt.mapping)
			require.NoError(t, err)

			kept := p.ProjectAll(rows, true)
			ids := make([]string, 0, len(kept))
			for _, cells := range kept {
				ids = append(ids, cells[0].Value)
			}
			assert.Equal(t, tt.expectedIDs, ids)

			assert.Len(t, p.ProjectAll(rows, false), len(rows))
		})
	}
}
