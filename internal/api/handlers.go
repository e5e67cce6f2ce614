package api

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tradevision/pnl-analyzer/internal/domain"
	"github.com/tradevision/pnl-analyzer/internal/service"
	"github.com/tradevision/pnl-analyzer/internal/storage/cache"
	"github.com/tradevision/pnl-analyzer/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	analysisService *service.AnalysisService
	reportCache     *cache.ReportCache
}

func NewHandler(analysisService *service.AnalysisService, reportCache *cache.ReportCache) *Handler {
	return &Handler{
		analysisService: analysisService,
		reportCache:     reportCache,
	}
}

// CreateReport accepts a multipart upload ("file") of a CSV or XLSX trading
// file and responds with the computed report. Schema and data-type failures
// come back as 422 with the actionable validation message.
func (h *Handler) CreateReport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.errorJSON(c, fiber.StatusBadRequest, "multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.errorJSON(c, fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer file.Close()

	logger.Info("analyzing uploaded file",
		zap.String("file", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
		zap.String("request_id", getRequestID(c)))

	report, err := h.analysisService.Analyze(c.Context(), fileHeader.Filename, file)
	if err != nil {
		var schemaErr *domain.SchemaError
		var dataErr *domain.DataTypeError

		switch {
		case errors.As(err, &schemaErr):
			return h.errorJSON(c, fiber.StatusUnprocessableEntity, schemaErr.Error())
		case errors.As(err, &dataErr):
			return h.errorJSON(c, fiber.StatusUnprocessableEntity, dataErr.Error())
		default:
			logger.Error("analysis failed",
				zap.String("file", fileHeader.Filename),
				zap.Error(err))
			return h.errorJSON(c, fiber.StatusInternalServerError, "failed to analyze file")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReport serves a previously computed report by its content checksum.
func (h *Handler) GetReport(c *fiber.Ctx) error {
	checksum := c.Params("checksum")
	if checksum == "" {
		return h.errorJSON(c, fiber.StatusBadRequest, "checksum is required")
	}

	report, err := h.analysisService.CachedReport(c.Context(), checksum)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return h.errorJSON(c, fiber.StatusNotFound,
				fmt.Sprintf("no report found for checksum %s", checksum))
		}

		logger.Error("report lookup failed",
			zap.String("checksum", checksum),
			zap.Error(err))
		return h.errorJSON(c, fiber.StatusInternalServerError, "failed to fetch report")
	}

	return c.JSON(report)
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now(),
	})
}

func (h *Handler) ReadinessCheck(c *fiber.Ctx) error {
	services := make(map[string]ServiceHealth)
	status := "ready"

	if h.reportCache != nil {
		redisStart := time.Now()
		if err := h.reportCache.HealthCheck(c.Context()); err != nil {
			services["redis"] = ServiceHealth{
				Status: "unhealthy",
				Error:  err.Error(),
			}
			status = "not_ready"
		} else {
			services["redis"] = ServiceHealth{
				Status:  "healthy",
				Latency: time.Since(redisStart).String(),
			}
		}
	} else {
		services["redis"] = ServiceHealth{Status: "disabled"}
	}

	response := HealthResponse{
		Status:    status,
		Version:   "1.0.0",
		Timestamp: time.Now(),
		Services:  services,
	}

	if status != "ready" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}

	return c.JSON(response)
}

func (h *Handler) InvalidateCache(c *fiber.Ctx) error {
	if h.reportCache == nil {
		return h.errorJSON(c, fiber.StatusServiceUnavailable, "cache is not configured")
	}

	pattern := c.Params("pattern", "report:*")

	if err := h.reportCache.DeletePattern(c.Context(), pattern); err != nil {
		return h.errorJSON(c, fiber.StatusInternalServerError, "failed to invalidate cache")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("cache invalidated for pattern: %s", pattern),
	})
}

func (h *Handler) GetSystemStats(c *fiber.Ctx) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return c.JSON(SystemStatsResponse{
		ActiveGoroutines: runtime.NumGoroutine(),
		MemoryUsed:       fmt.Sprintf("%d MB", m.Alloc/1024/1024),
	})
}

func (h *Handler) errorJSON(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: getRequestID(c),
		Timestamp: time.Now(),
	})
}

func getRequestID(c *fiber.Ctx) string {
	if id := c.Locals("requestID"); id != nil {
		return id.(string)
	}
	return ""
}
