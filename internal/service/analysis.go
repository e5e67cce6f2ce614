package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tradevision/pnl-analyzer/internal/analytics"
	"github.com/tradevision/pnl-analyzer/internal/ingestion"
	"github.com/tradevision/pnl-analyzer/internal/storage/cache"
	"github.com/tradevision/pnl-analyzer/internal/validate"
	"github.com/tradevision/pnl-analyzer/pkg/logger"
	"github.com/tradevision/pnl-analyzer/pkg/metrics"
	"go.uber.org/zap"
)

// AnalysisService runs the loader -> validator -> aggregator pipeline and
// shapes the outcome into a Report. The Redis cache is optional: when nil,
// every request is computed fresh.
type AnalysisService struct {
	loader    *ingestion.Loader
	validator *validate.Validator
	cache     *cache.ReportCache
}

func NewAnalysisService(loader *ingestion.Loader, validator *validate.Validator, reportCache *cache.ReportCache) *AnalysisService {
	return &AnalysisService{
		loader:    loader,
		validator: validator,
		cache:     reportCache,
	}
}

// Analyze processes one uploaded file. The content checksum doubles as the
// cache key, so re-uploading an identical file is served from cache.
func (s *AnalysisService) Analyze(ctx context.Context, fileName string, reader io.Reader) (*Report, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		metrics.RecordFileAnalyzed("read_error")
		return nil, fmt.Errorf("reading input: %w", err)
	}

	checksum := contentChecksum(content)

	if cached, err := s.CachedReport(ctx, checksum); err == nil {
		metrics.RecordCacheHit()
		metrics.RecordReportRequest("cache")
		logger.Debug("report served from cache",
			zap.String("file", fileName),
			zap.String("checksum", checksum))
		return cached, nil
	}
	metrics.RecordCacheMiss()

	report, err := s.compute(fileName, checksum, content)
	if err != nil {
		metrics.RecordFileAnalyzed("error")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(checksum), report); err != nil {
			logger.Warn("failed to cache report",
				zap.String("checksum", checksum),
				zap.Error(err))
		}
	}

	metrics.RecordFileAnalyzed("success")
	metrics.RecordReportRequest("computed")
	logger.Info("file analyzed",
		zap.String("file", fileName),
		zap.String("checksum", checksum),
		zap.Int("records", report.RecordCount))

	return report, nil
}

// AnalyzeFile is the path-based variant used by the CLI.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		metrics.RecordFileAnalyzed("read_error")
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return s.Analyze(ctx, filepath.Base(path), file)
}

// CachedReport fetches a previously computed report by checksum.
func (s *AnalysisService) CachedReport(ctx context.Context, checksum string) (*Report, error) {
	if s.cache == nil {
		return nil, cache.ErrNotFound
	}

	var report Report
	if err := s.cache.Get(ctx, cacheKey(checksum), &report); err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *AnalysisService) compute(fileName, checksum string, content []byte) (*Report, error) {
	parseTimer := metrics.NewTimer()
	table, err := s.loader.Read(fileName, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	parseTimer.ObserveDuration(metrics.AnalysisDuration.WithLabelValues("parse"))

	validateTimer := metrics.NewTimer()
	records, err := s.validator.Validate(table)
	if err != nil {
		metrics.RecordRowsValidated("rejected", len(table.Rows))
		return nil, err
	}
	metrics.RecordRowsValidated("accepted", len(records))
	validateTimer.ObserveDuration(metrics.AnalysisDuration.WithLabelValues("validate"))

	aggregateTimer := metrics.NewTimer()
	result := analytics.Aggregate(records)
	report := buildReport(fileName, checksum, records, result)
	aggregateTimer.ObserveDuration(metrics.AnalysisDuration.WithLabelValues("aggregate"))

	return report, nil
}

func contentChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func cacheKey(checksum string) string {
	return "report:" + checksum
}
