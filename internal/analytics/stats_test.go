package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradevision/pnl-analyzer/internal/domain"
)

func TestComputeWinLossStats(t *testing.T) {
	records := []domain.TradeRecord{
		record("2023-01-01", "BTC", "100"),
		record("2023-01-02", "BTC", "50"),
		record("2023-01-03", "ETH", "-25"),
		record("2023-01-04", "ETH", "-75"),
		record("2023-01-05", "SOL", "0"),
	}

	stats := ComputeWinLossStats(records)

	assert.Equal(t, 5, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 2, stats.LosingTrades)
	assert.Equal(t, 1, stats.NeutralTrades)
	assert.InDelta(t, 40.0, stats.WinRate, 1e-9)

	assert.Equal(t, "75", stats.AvgWin.String())
	assert.Equal(t, "-50", stats.AvgLoss.String())
	assert.Equal(t, "100", stats.MaxWin.String())
	assert.Equal(t, "-75", stats.MaxLoss.String())

	// gross wins 150 / gross losses 100
	assert.True(t, stats.ProfitFactorValid)
	assert.InDelta(t, 1.5, stats.ProfitFactor, 1e-9)
}

func TestComputeWinLossStats_NoLosses(t *testing.T) {
	records := []domain.TradeRecord{
		record("2023-01-01", "BTC", "10"),
		record("2023-01-02", "BTC", "20"),
	}

	stats := ComputeWinLossStats(records)

	assert.Equal(t, 2, stats.WinningTrades)
	assert.Zero(t, stats.LosingTrades)
	assert.False(t, stats.ProfitFactorValid, "profit factor is undefined without losses")
	assert.True(t, stats.AvgLoss.IsZero())
	assert.True(t, stats.MaxLoss.IsZero())
}

func TestComputeWinLossStats_Empty(t *testing.T) {
	stats := ComputeWinLossStats(nil)

	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.WinRate)
	assert.False(t, stats.ProfitFactorValid)
}
