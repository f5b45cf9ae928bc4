package http

import (
	"log/slog"
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/report"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	DailySummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// DailySummary implements ReportHandler.
func (h *reportHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	managerID, err := employeeIDFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to resolve employee from token", "error", err)
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	req := report.DailySummaryRequest{
		ManagerID: managerID,
		Date:      r.URL.Query().Get("date"),
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}

	result, err := h.reportService.DailySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
