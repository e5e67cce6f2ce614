package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradevision/pnl-analyzer/internal/domain"
)

// Aggregate computes the PnL breakdowns for a validated record set in a
// single pass. Decimal summation keeps the result exact, so two runs over
// the same records are identical regardless of input order. An empty input
// yields a zero total and empty mappings.
func Aggregate(records []domain.TradeRecord) domain.AggregateResult {
	result := domain.AggregateResult{
		TotalPnL: decimal.Zero,
		ByMonth:  make(map[domain.MonthKey]decimal.Decimal, 12),
		ByDay:    make(map[time.Time]decimal.Decimal, len(records)),
		ByAsset:  make(map[string]decimal.Decimal),
	}

	for _, record := range records {
		day := domain.Day(record.Date)
		month := domain.MonthKey{Year: day.Year(), Month: day.Month()}

		result.TotalPnL = result.TotalPnL.Add(record.PnL)
		result.ByMonth[month] = result.ByMonth[month].Add(record.PnL)
		result.ByDay[day] = result.ByDay[day].Add(record.PnL)
		result.ByAsset[record.Asset] = result.ByAsset[record.Asset].Add(record.PnL)
	}

	return result
}

// MeanPnL is the average PnL per trade, zero for an empty set.
func MeanPnL(records []domain.TradeRecord) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, record := range records {
		sum = sum.Add(record.PnL)
	}

	return sum.Div(decimal.NewFromInt(int64(len(records))))
}
