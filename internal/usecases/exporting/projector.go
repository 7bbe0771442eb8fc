package exporting

import (
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

// ActiveColumn é uma entrada ativa do mapeamento já resolvida
type ActiveColumn struct {
	Column string
	Index  int
	Metric MetricDefinition
}

type ProjectedCell struct {
	ColumnIndex int
	Value       string
}

type ProjectedRow []ProjectedCell

// Projector transforma linhas de insights em células das colunas mapeadas
type Projector struct {
	columns       []ActiveColumn
	hasStatistics bool
}

// NewProjector resolve o mapeamento. Ignora entradas "skip", rejeita colunas
// inválidas ou repetidas e exige ao menos uma entrada ativa.
func NewProjector(mapping domain.ColumnMapping) (*Projector, error) {
	active := mapping.Active()
	if len(active) == 0 {
		return nil, ErrEmptyMapping
	}

	p := &Projector{columns: make([]ActiveColumn, 0, len(active))}
	used := make(map[int]string, len(active))

	for _, entry := range active {
		index, err := ColumnIndex(entry.Column)
		if err != nil {
			return nil, invalidRequest("métrica %q: %v", entry.MetricKey, err)
		}
		if other, dup := used[index]; dup {
			return nil, invalidRequest("coluna %s usada por %q e %q", ColumnLetter(index), other, entry.MetricKey)
		}
		used[index] = entry.MetricKey

		metric := ResolveMetric(entry.MetricKey)
		if metric.Kind == KindNumeric {
			p.hasStatistics = true
		}

		p.columns = append(p.columns, ActiveColumn{
			Column: ColumnLetter(index),
			Index:  index,
			Metric: metric,
		})
	}

	return p, nil
}

func (p *Projector) Columns() []ActiveColumn {
	return p.columns
}

// HasStatistics indica se alguma coluna numérica está mapeada
func (p *Projector) HasStatistics() bool {
	return p.hasStatistics
}

// RequiredFields são os campos remotos necessários para o mapeamento
func (p *Projector) RequiredFields() []string {
	defs := make([]MetricDefinition, 0, len(p.columns))
	for _, c := range p.columns {
		defs = append(defs, c.Metric)
	}
	return RequiredFields(defs)
}

// Project produz uma célula por coluna ativa, na ordem do mapeamento
func (p *Projector) Project(row domain.InsightRow) ProjectedRow {
	cells := make(ProjectedRow, 0, len(p.columns))
	for _, c := range p.columns {
		cells = append(cells, ProjectedCell{ColumnIndex: c.Index, Value: c.Metric.Value(row)})
	}
	return cells
}

// ProjectAll projeta as linhas. Com filterZero descarta as linhas em que todas as
// colunas numéricas mapeadas valem zero; sem colunas numéricas nada é removido.
func (p *Projector) ProjectAll(rows []domain.InsightRow, filterZero bool) []ProjectedRow {
	projected := make([]ProjectedRow, 0, len(rows))
	for _, row := range rows {
		cells := p.Project(row)
		if filterZero && p.isZeroRow(cells) {
			continue
		}
		projected = append(projected, cells)
	}
	return projected
}

func (p *Projector) isZeroRow(cells ProjectedRow) bool {
	if !p.hasStatistics {
		return false
	}

	for i, c := range p.columns {
		if c.Metric.Kind != KindNumeric {
			continue
		}
		d, ok := utils.ToDecimal(cells[i].Value)
		if !ok || !d.IsZero() {
			return false
		}
	}
	return true
}
