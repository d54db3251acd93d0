package transport

import (
	"fmt"
	"net/http"
	"time"

	"clinic-pos/internal/excel"
	"clinic-pos/internal/middleware"
	"clinic-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for reports and dashboard statistics
type ReportHandler struct {
	reportService service.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/sales", h.SalesReport)
		r.Get("/sales/export", h.ExportSalesReport)
	})
	r.Get("/api/dashboard/stats", h.DashboardStats)
}

// SalesReport handles building the sales report for a period. The period
// defaults to the last 30 days.
func (h *ReportHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	report, err := h.reportService.SalesReport(r.Context(), from, to)
	if err != nil {
		h.logger.Error("Failed to build sales report", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build sales report")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, report)
}

// ExportSalesReport handles rendering the sales report as an xlsx download
func (h *ReportHandler) ExportSalesReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	report, err := h.reportService.SalesReport(r.Context(), from, to)
	if err != nil {
		h.logger.Error("Failed to build sales report for export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build sales report")
		return
	}

	workbook, err := excel.WriteSalesReport(report)
	if err != nil {
		h.logger.Error("Failed to render sales report workbook", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to export sales report")
		return
	}

	filename := fmt.Sprintf("sales-report-%s-%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}

// DashboardStats handles the at-a-glance dashboard counters
func (h *ReportHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard stats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute dashboard stats")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// parsePeriod reads the from/to query parameters as dates, defaulting to the
// last 30 days. The to date is extended to the end of its day so a report for
// a single date covers the whole day.
func parsePeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "from must be in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "to must be in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if to.Before(from) {
		middleware.RespondWithError(w, http.StatusBadRequest, "to must not be before from")
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
