package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is one validated row of an imported trading file.
// Date carries calendar-day precision only (midnight UTC).
type TradeRecord struct {
	Date  time.Time       `json:"date"`
	Asset string          `json:"asset"`
	PnL   decimal.Decimal `json:"pnl"`
}

// Day normalizes t to midnight UTC so it can serve as a grouping key.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
