package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightvalue/internal/cache"
	"github.com/dharmasatrya/flightvalue/internal/models"
)

const (
	HeaderReportSource = "X-Report-Source"
	HeaderCacheHit     = "X-Cache-Hit"
)

type Runner interface {
	Run(ctx context.Context, params models.SearchParams) (models.Report, error)
}

type Archive interface {
	Save(ctx context.Context, report models.Report, at time.Time) (int64, error)
	List(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}

type ReportHandler struct {
	runner   Runner
	cache    cache.Cache
	archive  Archive
	defaults models.SearchParams
	now      func() time.Time
}

// NewReportHandler wires the report endpoints. archive may be nil.
func NewReportHandler(runner Runner, c cache.Cache, archive Archive, defaults models.SearchParams) *ReportHandler {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &ReportHandler{
		runner:   runner,
		cache:    c,
		archive:  archive,
		defaults: defaults,
		now:      time.Now,
	}
}

func (h *ReportHandler) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/reports", h.Create)
	api.GET("/reports/history", h.History)
	e.GET("/health", HealthHandler)
}

func (h *ReportHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchParams
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	params := req.WithDefaults(h.defaults)
	if err := params.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if cached, found := h.cache.Get(ctx, params); found {
		c.Response().Header().Set(HeaderCacheHit, "true")
		c.Response().Header().Set(HeaderReportSource, string(cached.Source))
		return c.JSON(http.StatusOK, cached)
	}

	report, err := h.runner.Run(ctx, params)
	if err != nil {
		var verr models.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "report_error",
			Message: "Failed to build report: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if err := h.cache.Set(ctx, params, report); err != nil {
		slog.Warn("cache write failed", "error", err)
	}
	if h.archive != nil {
		if _, err := h.archive.Save(ctx, report, h.now()); err != nil {
			slog.Warn("archive write failed", "error", err)
		}
	}

	c.Response().Header().Set(HeaderCacheHit, "false")
	c.Response().Header().Set(HeaderReportSource, string(report.Source))
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) History(c echo.Context) error {
	if h.archive == nil {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "archive_disabled",
			Message: "Report archive is not configured",
			Code:    http.StatusNotFound,
		})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be a non-negative integer",
				Code:    http.StatusBadRequest,
			})
		}
		limit = n
	}

	entries, err := h.archive.List(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "archive_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, entries)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
