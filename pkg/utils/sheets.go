package utils

import "strings"

// QuoteSheetName devolve o nome da aba entre aspas simples para notação A1,
// dobrando as aspas simples internas
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
