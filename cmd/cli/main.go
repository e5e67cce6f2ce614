package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tradevision/pnl-analyzer/internal/analytics"
	"github.com/tradevision/pnl-analyzer/internal/config"
	"github.com/tradevision/pnl-analyzer/internal/domain"
	"github.com/tradevision/pnl-analyzer/internal/ingestion"
	"github.com/tradevision/pnl-analyzer/internal/service"
	"github.com/tradevision/pnl-analyzer/internal/validate"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "pnl-analyzer",
		Short: "Trading PnL Analyzer CLI",
		Long: `CLI for analyzing trading record files (CSV/XLSX).
Computes total PnL, monthly/daily/per-asset breakdowns and win/loss statistics.`,
	}

	var analyzeCmd = &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Analyze one or more trading files",
		Long: `Analyzes trading files and prints the full PnL report for each.
Accepts multiple files; they are processed concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeFiles(args)
		},
	}

	var monthsCmd = &cobra.Command{
		Use:   "months FILE",
		Short: "Print the monthly PnL calendar for one year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			return printMonths(args[0], year)
		},
	}

	monthsCmd.Flags().IntP("year", "y", 0, "Year to display (default: latest year in the file)")

	var statsCmd = &cobra.Command{
		Use:   "stats FILE",
		Short: "Print win/loss statistics for a trading file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStats(args[0])
		},
	}

	rootCmd.AddCommand(analyzeCmd, monthsCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newAnalysisService(cfg *config.Config) *service.AnalysisService {
	loader := ingestion.NewLoader(cfg.Separator())
	validator := validate.NewValidator()

	// The CLI always computes fresh, no cache.
	return service.NewAnalysisService(loader, validator, nil)
}

func analyzeFiles(files []string) error {
	ctx := context.Background()
	cfg := config.Load()

	analysis := newAnalysisService(cfg)

	pool := service.NewWorkerPool(cfg.Workers, analysis)
	pool.Start(ctx)
	defer pool.Stop()

	results := make(chan service.JobResult, len(files))

	fmt.Printf("Analyzing %d file(s)...\n", len(files))

	for _, file := range files {
		pool.Submit(service.Job{
			FilePath: file,
			Result:   results,
		})
	}

	failures := 0
	for i := 0; i < len(files); i++ {
		result := <-results
		if result.Error != nil {
			failures++
			fmt.Printf("\n❌ %s: %v\n", result.FilePath, result.Error)
			continue
		}
		printReport(result.Report)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(files))
	}

	return nil
}

func printReport(report *service.Report) {
	fmt.Printf("\n📊 %s\n", report.FileName)
	fmt.Printf("├─ Trades:      %d\n", report.RecordCount)
	fmt.Printf("├─ Total PnL:   %s\n", formatPnL(report.TotalPnL))
	fmt.Printf("└─ Mean PnL:    %s\n", formatPnL(report.MeanPnL))

	if len(report.ByAsset) > 0 {
		fmt.Println("\nPer asset:")
		for _, row := range report.ByAsset {
			fmt.Printf("  %-12s %s\n", row.Asset, formatPnL(row.PnL))
		}
	}

	if len(report.ByMonth) > 0 {
		fmt.Println("\nPer month:")
		for _, row := range report.ByMonth {
			fmt.Printf("  %d-%02d       %s\n", row.Year, int(row.Month), formatPnL(row.PnL))
		}
	}

	if len(report.ByDay) > 0 {
		fmt.Println("\nPer day:")
		for _, row := range report.ByDay {
			fmt.Printf("  %s   %s\n", row.Date.Format("2006-01-02"), formatPnL(row.PnL))
		}
	}
}

func printMonths(file string, year int) error {
	ctx := context.Background()
	cfg := config.Load()

	analysis := newAnalysisService(cfg)

	report, err := analysis.AnalyzeFile(ctx, file)
	if err != nil {
		return err
	}

	if year == 0 {
		if len(report.Years) == 0 {
			fmt.Println("No trades in file.")
			return nil
		}
		year = report.Years[len(report.Years)-1]
	}

	result := aggregateFromReport(report)
	series := analytics.MonthlySeries(result, year)

	fmt.Printf("📅 Monthly PnL %d — %s\n\n", year, report.FileName)
	for _, month := range series {
		fmt.Printf("  %-10s %s\n", month.MonthName, formatPnL(month.PnL))
	}

	return nil
}

func printStats(file string) error {
	ctx := context.Background()
	cfg := config.Load()

	analysis := newAnalysisService(cfg)

	report, err := analysis.AnalyzeFile(ctx, file)
	if err != nil {
		return err
	}

	stats := report.Stats

	fmt.Printf("📈 Win/Loss statistics — %s\n\n", report.FileName)
	fmt.Printf("  Trades:        %d (W:%d / L:%d / N:%d)\n",
		stats.TotalTrades, stats.WinningTrades, stats.LosingTrades, stats.NeutralTrades)
	fmt.Printf("  Win rate:      %.1f%%\n", stats.WinRate)

	if stats.ProfitFactorValid {
		fmt.Printf("  Profit factor: %.2f\n", stats.ProfitFactor)
	} else {
		fmt.Printf("  Profit factor: n/a (no losing trades)\n")
	}

	fmt.Printf("  Avg win:       %s\n", formatPnL(stats.AvgWin))
	fmt.Printf("  Avg loss:      %s\n", formatPnL(stats.AvgLoss))
	fmt.Printf("  Max win:       %s\n", formatPnL(stats.MaxWin))
	fmt.Printf("  Max loss:      %s\n", formatPnL(stats.MaxLoss))

	return nil
}

// aggregateFromReport rebuilds the month mapping needed by MonthlySeries
// from the flattened report rows.
func aggregateFromReport(report *service.Report) domain.AggregateResult {
	result := domain.AggregateResult{
		ByMonth: make(map[domain.MonthKey]decimal.Decimal, len(report.ByMonth)),
	}

	for _, row := range report.ByMonth {
		result.ByMonth[domain.MonthKey{Year: row.Year, Month: row.Month}] = row.PnL
	}

	return result
}

func formatPnL(value decimal.Decimal) string {
	formatted := value.StringFixed(2)
	if value.Sign() > 0 {
		return "+" + formatted
	}
	return formatted
}
