package exporting

import "sort"

// RangeGroup é uma sequência máxima de colunas adjacentes, escrita como um único retângulo
type RangeGroup struct {
	StartIndex int
	EndIndex   int
	Columns    []ActiveColumn
}

func (g RangeGroup) Width() int {
	return g.EndIndex - g.StartIndex + 1
}

// BatchRanges ordena as colunas pelo índice e agrupa as adjacentes.
// Colunas vizinhas no mapeamento mas não na planilha nunca são unidas.
func BatchRanges(columns []ActiveColumn) []RangeGroup {
	if len(columns) == 0 {
		return nil
	}

	sorted := make([]ActiveColumn, len(columns))
	copy(sorted, columns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	groups := make([]RangeGroup, 0, len(sorted))
	current := RangeGroup{StartIndex: sorted[0].Index, EndIndex: sorted[0].Index, Columns: []ActiveColumn{sorted[0]}}

	for _, col := range sorted[1:] {
		if col.Index == current.EndIndex+1 {
			current.EndIndex = col.Index
			current.Columns = append(current.Columns, col)
			continue
		}
		groups = append(groups, current)
		current = RangeGroup{StartIndex: col.Index, EndIndex: col.Index, Columns: []ActiveColumn{col}}
	}

	return append(groups, current)
}
