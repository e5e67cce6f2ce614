package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradevision/pnl-analyzer/internal/domain"
)

// MonthPnL is one entry of a calendar-year monthly series.
type MonthPnL struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	MonthName string          `json:"month_name"`
	PnL       decimal.Decimal `json:"pnl"`
}

// MonthlySeries expands the by-month breakdown of a result into a full
// January..December series for one year, zero-filling months without trades.
// Charts rendered from this series always span the whole calendar year.
func MonthlySeries(result domain.AggregateResult, year int) []MonthPnL {
	series := make([]MonthPnL, 0, 12)

	for month := time.January; month <= time.December; month++ {
		pnl := decimal.Zero
		if sum, ok := result.ByMonth[domain.MonthKey{Year: year, Month: month}]; ok {
			pnl = sum
		}

		series = append(series, MonthPnL{
			Year:      year,
			Month:     month,
			MonthName: month.String(),
			PnL:       pnl,
		})
	}

	return series
}

// Years lists the distinct years present in a result, ascending.
func Years(result domain.AggregateResult) []int {
	seen := make(map[int]struct{})
	for key := range result.ByMonth {
		seen[key.Year] = struct{}{}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)

	return years
}
