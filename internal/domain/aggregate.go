package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey identifies a (year, month) bucket.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// AggregateResult holds the summed PnL breakdowns for one analysis run.
// It is built in a single pass and never mutated afterwards; every mapping
// covers only keys actually present in the input.
type AggregateResult struct {
	TotalPnL decimal.Decimal
	ByMonth  map[MonthKey]decimal.Decimal
	ByDay    map[time.Time]decimal.Decimal
	ByAsset  map[string]decimal.Decimal
}

// WinLossStats summarizes trade outcomes for a record set.
// ProfitFactor is only meaningful when ProfitFactorValid is true
// (a set with no losing trades has no defined profit factor).
type WinLossStats struct {
	TotalTrades   int             `json:"total_trades"`
	WinningTrades int             `json:"winning_trades"`
	LosingTrades  int             `json:"losing_trades"`
	NeutralTrades int             `json:"neutral_trades"`
	WinRate       float64         `json:"win_rate"`
	AvgWin        decimal.Decimal `json:"avg_win"`
	AvgLoss       decimal.Decimal `json:"avg_loss"`
	MaxWin        decimal.Decimal `json:"max_win"`
	MaxLoss       decimal.Decimal `json:"max_loss"`

	ProfitFactor      float64 `json:"profit_factor,omitempty"`
	ProfitFactorValid bool    `json:"profit_factor_valid"`
}
