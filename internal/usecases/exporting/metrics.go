package exporting

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

type MetricKind int

const (
	// KindText é emitido como veio, vazio quando ausente
	KindText MetricKind = iota
	// KindNumeric vira "0" quando ausente, nulo ou vazio; entra no filtro de linhas zeradas
	KindNumeric
)

// extractionRule lê o valor bruto de uma métrica a partir da linha
type extractionRule interface {
	extract(row domain.InsightRow) (any, bool)
}

// MetricDefinition descreve como obter uma métrica do mapeamento
type MetricDefinition struct {
	Key    string
	Kind   MetricKind
	Fields []string
	rule   extractionRule
}

// scalarRule lê o campo sem transformação
type scalarRule struct {
	field string
}

func (r scalarRule) extract(row domain.InsightRow) (any, bool) {
	v, ok := row[r.field]
	return v, ok && v != nil
}

// actionTypeRule devolve o value da primeira ação cujo action_type começa com um dos prefixos
type actionTypeRule struct {
	field    string
	prefixes []string
}

func (r actionTypeRule) extract(row domain.InsightRow) (any, bool) {
	raw, ok := row[r.field]
	if !ok || raw == nil {
		return nil, false
	}

	entries, isList := actionEntries(raw)
	if !isList {
		return raw, true
	}

	for _, entry := range entries {
		actionType, _ := entry["action_type"].(string)
		for _, prefix := range r.prefixes {
			if strings.HasPrefix(actionType, prefix) {
				v, found := entry["value"]
				return v, found && v != nil
			}
		}
	}

	return nil, false
}

// sumValuesRule soma os values de todas as entradas da lista
type sumValuesRule struct {
	field string
}

func (r sumValuesRule) extract(row domain.InsightRow) (any, bool) {
	raw, ok := row[r.field]
	if !ok || raw == nil {
		return nil, false
	}

	entries, isList := actionEntries(raw)
	if !isList {
		if d, isNum := utils.ToDecimal(raw); isNum {
			return d, true
		}
		return raw, true
	}

	total := decimal.Zero
	for _, entry := range entries {
		if d, isNum := utils.ToDecimal(entry["value"]); isNum {
			total = total.Add(d)
		}
	}

	return total, true
}

// videoTimeRule converte segundos em MM.SS, sem virar horas (3600 => 60.00)
type videoTimeRule struct {
	field string
}

func (r videoTimeRule) extract(row domain.InsightRow) (any, bool) {
	raw, ok := row[r.field]
	if !ok || raw == nil {
		return nil, false
	}

	if entries, isList := actionEntries(raw); isList {
		raw = nil
		for _, entry := range entries {
			if actionType, _ := entry["action_type"].(string); actionType == "video_view" {
				raw = entry["value"]
				break
			}
		}
		if raw == nil && len(entries) > 0 {
			raw = entries[0]["value"]
		}
	}

	seconds, isNum := utils.ToDecimal(raw)
	if !isNum {
		return nil, false
	}

	return FormatVideoTime(seconds), true
}

// FormatVideoTime arredonda para o segundo mais próximo e formata como MM.SS
func FormatVideoTime(seconds decimal.Decimal) string {
	total := seconds.Round(0).IntPart()
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d.%02d", total/60, total%60)
}

func actionEntries(raw any) ([]map[string]any, bool) {
	switch list := raw.(type) {
	case []map[string]any:
		return list, true
	case []any:
		entries := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if entry, ok := item.(map[string]any); ok {
				entries = append(entries, entry)
			}
		}
		return entries, true
	}
	return nil, false
}

func text(key, field string) MetricDefinition {
	return MetricDefinition{Key: key, Kind: KindText, Fields: []string{field}, rule: scalarRule{field: field}}
}

func numeric(key, field string) MetricDefinition {
	return MetricDefinition{Key: key, Kind: KindNumeric, Fields: []string{field}, rule: scalarRule{field: field}}
}

func action(key, field string, prefixes ...string) MetricDefinition {
	return MetricDefinition{Key: key, Kind: KindNumeric, Fields: []string{field}, rule: actionTypeRule{field: field, prefixes: prefixes}}
}

func sum(key, field string) MetricDefinition {
	return MetricDefinition{Key: key, Kind: KindNumeric, Fields: []string{field}, rule: sumValuesRule{field: field}}
}

func videoTime(key, field string) MetricDefinition {
	return MetricDefinition{Key: key, Kind: KindNumeric, Fields: []string{field}, rule: videoTimeRule{field: field}}
}

// metricCatalog é a tabela de métricas conhecidas. Nova métrica = nova entrada.
var metricCatalog = buildCatalog(
	text("date", "date_start"),
	text("date_start", "date_start"),
	text("date_stop", "date_stop"),
	text("account_id", "account_id"),
	text("account_name", "account_name"),
	text("campaign_id", "campaign_id"),
	text("campaign_name", "campaign_name"),
	text("adset_id", "adset_id"),
	text("adset_name", "adset_name"),
	text("ad_id", "ad_id"),
	text("ad_name", "ad_name"),
	text("objective", "objective"),

	numeric("spend", "spend"),
	numeric("impressions", "impressions"),
	numeric("reach", "reach"),
	numeric("frequency", "frequency"),
	numeric("clicks", "clicks"),
	numeric("unique_clicks", "unique_clicks"),
	numeric("link_clicks", "inline_link_clicks"),
	numeric("ctr", "ctr"),
	numeric("cpc", "cpc"),
	numeric("cpm", "cpm"),
	numeric("cpp", "cpp"),

	action("messages", "actions", "onsite_conversion.messaging_conversation_started"),
	action("leads", "actions", "lead", "onsite_conversion.lead_grouped"),
	action("link_click_actions", "actions", "link_click"),
	action("post_engagement", "actions", "post_engagement"),
	action("purchases", "actions", "offsite_conversion.fb_pixel_purchase", "purchase"),
	action("purchase_value", "action_values", "offsite_conversion.fb_pixel_purchase", "purchase"),
	action("video_3s_views", "actions", "video_view"),
	action("video_p25", "video_p25_watched_actions", "video_view"),
	action("video_p50", "video_p50_watched_actions", "video_view"),
	action("video_p75", "video_p75_watched_actions", "video_view"),
	action("video_p95", "video_p95_watched_actions", "video_view"),
	action("video_p100", "video_p100_watched_actions", "video_view"),
	action("thruplays", "video_thruplay_watched_actions", "video_view"),

	sum("conversions", "conversions"),
	sum("conversion_values", "conversion_values"),

	videoTime("video_avg_time", "video_avg_time_watched_actions"),
)

func buildCatalog(defs ...MetricDefinition) map[string]MetricDefinition {
	catalog := make(map[string]MetricDefinition, len(defs))
	for _, def := range defs {
		catalog[def.Key] = def
	}
	return catalog
}

// ResolveMetric devolve a definição da métrica. Chaves desconhecidas são lidas
// literalmente da linha e classificadas pelo nome (date*, *_id, *_name => texto).
func ResolveMetric(key string) MetricDefinition {
	if def, ok := metricCatalog[key]; ok {
		return def
	}

	if isTextKey(key) {
		return text(key, key)
	}
	return numeric(key, key)
}

func isTextKey(key string) bool {
	return strings.HasPrefix(key, "date") ||
		strings.HasSuffix(key, "_id") ||
		strings.HasSuffix(key, "_name")
}

// Value extrai e coage o valor da métrica para a string escrita na planilha
func (d MetricDefinition) Value(row domain.InsightRow) string {
	raw, ok := d.rule.extract(row)

	if d.Kind == KindText {
		if !ok {
			return ""
		}
		return stringify(raw)
	}

	if !ok {
		return "0"
	}

	value := strings.TrimSpace(stringify(raw))
	if value == "" {
		return "0"
	}
	return value
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d.String()
		}
		return t.String()
	case decimal.Decimal:
		return t.String()
	case float64:
		return decimal.NewFromFloat(t).String()
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// RequiredFields une os campos remotos de todas as métricas, sem repetição e na ordem
func RequiredFields(defs []MetricDefinition) []string {
	seen := make(map[string]struct{})
	fields := make([]string, 0, len(defs))

	for _, def := range defs {
		for _, field := range def.Fields {
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			fields = append(fields, field)
		}
	}

	return fields
}
