package domain

// InsightRow é um registro (conta, anúncio, dia) retornado pela API de insights.
// Os valores são escalares (string ou json.Number) ou listas de ações
// ([]any de map[string]any com action_type e value).
type InsightRow map[string]any

func (r InsightRow) AccountID() string {
	v, _ := r["account_id"].(string)
	return v
}

func (r InsightRow) AdID() string {
	v, _ := r["ad_id"].(string)
	return v
}

func (r InsightRow) Date() string {
	v, _ := r["date_start"].(string)
	return v
}

// SheetRangeValues é um bloco retangular a ser escrito em notação A1
type SheetRangeValues struct {
	Range  string
	Values [][]any
}
