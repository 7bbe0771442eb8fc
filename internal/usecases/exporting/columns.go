package exporting

import (
	"fmt"
	"strings"

	"github.com/vfg2006/insights-exporter/pkg/utils"
)

// maxColumnLetters limita as colunas a ZZZ, a última do Google Sheets
const maxColumnLetters = 3

// ColumnIndex converte a letra da coluna em índice base zero: A=0, Z=25, AA=26
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return 0, fmt.Errorf("coluna vazia")
	}
	if len(letter) > maxColumnLetters {
		return 0, fmt.Errorf("coluna %q além de ZZZ", letter)
	}

	index := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("coluna inválida %q", letter)
		}
		index = index*26 + int(r-'A'+1)
	}

	return index - 1, nil
}

// ColumnLetter é a inversa de ColumnIndex
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}

	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// A1Range monta o intervalo 'Aba'!F2:H11. endRow <= 0 deixa o intervalo aberto para baixo ('Aba'!F2:H).
func A1Range(sheetName string, startIndex, endIndex, startRow, endRow int) string {
	start := fmt.Sprintf("%s%d", ColumnLetter(startIndex), startRow)
	end := ColumnLetter(endIndex)
	if endRow > 0 {
		end = fmt.Sprintf("%s%d", end, endRow)
	}
	return fmt.Sprintf("%s!%s:%s", utils.QuoteSheetName(sheetName), start, end)
}
