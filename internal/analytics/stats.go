package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/tradevision/pnl-analyzer/internal/domain"
)

// ComputeWinLossStats derives trade outcome statistics from a record set.
// WinRate is a percentage over all trades. The profit factor (gross wins
// over gross losses) is flagged invalid when there are no losing trades.
func ComputeWinLossStats(records []domain.TradeRecord) domain.WinLossStats {
	stats := domain.WinLossStats{
		TotalTrades: len(records),
		AvgWin:      decimal.Zero,
		AvgLoss:     decimal.Zero,
		MaxWin:      decimal.Zero,
		MaxLoss:     decimal.Zero,
	}

	totalWins := decimal.Zero
	totalLosses := decimal.Zero

	for _, record := range records {
		switch record.PnL.Sign() {
		case 1:
			stats.WinningTrades++
			totalWins = totalWins.Add(record.PnL)
			if record.PnL.GreaterThan(stats.MaxWin) {
				stats.MaxWin = record.PnL
			}
		case -1:
			stats.LosingTrades++
			totalLosses = totalLosses.Add(record.PnL)
			if record.PnL.LessThan(stats.MaxLoss) {
				stats.MaxLoss = record.PnL
			}
		default:
			stats.NeutralTrades++
		}
	}

	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	}

	if stats.WinningTrades > 0 {
		stats.AvgWin = totalWins.Div(decimal.NewFromInt(int64(stats.WinningTrades)))
	}

	if stats.LosingTrades > 0 {
		stats.AvgLoss = totalLosses.Div(decimal.NewFromInt(int64(stats.LosingTrades)))

		grossLoss := totalLosses.Abs()
		factor, _ := totalWins.Div(grossLoss).Float64()
		stats.ProfitFactor = factor
		stats.ProfitFactorValid = true
	}

	return stats
}
