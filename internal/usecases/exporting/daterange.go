package exporting

import (
	"strings"
	"time"

	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/pkg/utils"
)

const explicitRangeSeparator = ".."

// ResolveDateRange converte o período da requisição em [since, until] inclusivo,
// calculando "hoje" no fuso informado e não no fuso do processo.
// last_7_days segue o last_7d do Graph: os sete dias anteriores, sem hoje.
func ResolveDateRange(dateRange string, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	today := utils.StartOfDay(now, loc)

	switch strings.TrimSpace(dateRange) {
	case domain.DateRangeToday:
		return today, today, nil
	case domain.DateRangeYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return yesterday, yesterday, nil
	case domain.DateRangeLast7Days:
		return today.AddDate(0, 0, -7), today.AddDate(0, 0, -1), nil
	case "":
		return time.Time{}, time.Time{}, invalidRequest("período não informado")
	}

	if sinceStr, untilStr, found := strings.Cut(dateRange, explicitRangeSeparator); found {
		since, err := parseLocalDate(sinceStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		until, err := parseLocalDate(untilStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if until.Before(since) {
			return time.Time{}, time.Time{}, invalidRequest("período %q com fim antes do início", dateRange)
		}
		return since, until, nil
	}

	day, err := parseLocalDate(dateRange, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day, nil
}

func parseLocalDate(value string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, invalidRequest("data %q fora do formato AAAA-MM-DD", value)
	}
	return day, nil
}
