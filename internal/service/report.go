package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradevision/pnl-analyzer/internal/analytics"
	"github.com/tradevision/pnl-analyzer/internal/domain"
)

// MonthlyPnL is one by-month row of a report, sorted chronologically.
type MonthlyPnL struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	PnL   decimal.Decimal `json:"pnl"`
}

// DailyPnL is one by-day row of a report, sorted chronologically.
type DailyPnL struct {
	Date time.Time       `json:"date"`
	PnL  decimal.Decimal `json:"pnl"`
}

// AssetPnL is one by-asset row of a report, sorted by asset identifier.
type AssetPnL struct {
	Asset string          `json:"asset"`
	PnL   decimal.Decimal `json:"pnl"`
}

// Report is the complete outcome of one analysis run, shaped for JSON
// serving and caching. The breakdown maps of the aggregate are flattened
// into deterministically ordered slices.
type Report struct {
	Checksum    string              `json:"checksum"`
	FileName    string              `json:"file_name"`
	RecordCount int                 `json:"record_count"`
	TotalPnL    decimal.Decimal     `json:"total_pnl"`
	MeanPnL     decimal.Decimal     `json:"mean_pnl"`
	ByMonth     []MonthlyPnL        `json:"by_month"`
	ByDay       []DailyPnL          `json:"by_day"`
	ByAsset     []AssetPnL          `json:"by_asset"`
	Stats       domain.WinLossStats `json:"stats"`
	Years       []int               `json:"years"`
	GeneratedAt time.Time           `json:"generated_at"`
}

func buildReport(fileName, checksum string, records []domain.TradeRecord, result domain.AggregateResult) *Report {
	report := &Report{
		Checksum:    checksum,
		FileName:    fileName,
		RecordCount: len(records),
		TotalPnL:    result.TotalPnL,
		MeanPnL:     analytics.MeanPnL(records),
		ByMonth:     make([]MonthlyPnL, 0, len(result.ByMonth)),
		ByDay:       make([]DailyPnL, 0, len(result.ByDay)),
		ByAsset:     make([]AssetPnL, 0, len(result.ByAsset)),
		Stats:       analytics.ComputeWinLossStats(records),
		Years:       analytics.Years(result),
		GeneratedAt: time.Now().UTC(),
	}

	for key, pnl := range result.ByMonth {
		report.ByMonth = append(report.ByMonth, MonthlyPnL{Year: key.Year, Month: key.Month, PnL: pnl})
	}
	sort.Slice(report.ByMonth, func(i, j int) bool {
		a, b := report.ByMonth[i], report.ByMonth[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	for day, pnl := range result.ByDay {
		report.ByDay = append(report.ByDay, DailyPnL{Date: day, PnL: pnl})
	}
	sort.Slice(report.ByDay, func(i, j int) bool {
		return report.ByDay[i].Date.Before(report.ByDay[j].Date)
	})

	for asset, pnl := range result.ByAsset {
		report.ByAsset = append(report.ByAsset, AssetPnL{Asset: asset, PnL: pnl})
	}
	sort.Slice(report.ByAsset, func(i, j int) bool {
		return report.ByAsset[i].Asset < report.ByAsset[j].Asset
	})

	return report
}
