package metadomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging carrega os cursores e a URL absoluta da próxima página, quando houver
type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
}

// InsightsPage é uma página de act_{id}/insights. As linhas ficam genéricas
// porque o conjunto de campos depende do mapeamento de colunas.
type InsightsPage struct {
	Data   []map[string]any `json:"data"`
	Paging Paging           `json:"paging"`
}

// BaseInsightFields são sempre pedidos, independente do mapeamento
var BaseInsightFields = []string{
	"account_id",
	"account_name",
	"campaign_id",
	"campaign_name",
	"adset_id",
	"adset_name",
	"ad_id",
	"ad_name",
	"date_start",
	"date_stop",
}
