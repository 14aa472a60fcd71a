package http

import (
	"net/http"
	"time"

	"github.com/arventa/attendance-backend-go/internal/domain/report"
	"github.com/arventa/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	GetMyDailyStatus(w http.ResponseWriter, r *http.Request)
	GetMyRangeSummary(w http.ResponseWriter, r *http.Request)
	GetEmployeeDailyStatus(w http.ResponseWriter, r *http.Request)
	GetEmployeeRangeSummary(w http.ResponseWriter, r *http.Request)
	GetOrgDailyBreakdown(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func dateOrToday(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return time.Now().UTC().Format("2006-01-02")
}

// GetMyDailyStatus implements ReportHandler.
func (h *reportHandlerImpl) GetMyDailyStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.reportService.GetDailyStatus(r.Context(), employeeID, dateOrToday(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRangeSummary implements ReportHandler.
func (h *reportHandlerImpl) GetMyRangeSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	req := report.RangeSummaryRequest{
		EmployeeID: employeeID,
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.GetRangeSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeDailyStatus implements ReportHandler.
func (h *reportHandlerImpl) GetEmployeeDailyStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.reportService.GetDailyStatus(r.Context(), employeeID, dateOrToday(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeRangeSummary implements ReportHandler.
func (h *reportHandlerImpl) GetEmployeeRangeSummary(w http.ResponseWriter, r *http.Request) {
	req := report.RangeSummaryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.GetRangeSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetOrgDailyBreakdown implements ReportHandler.
func (h *reportHandlerImpl) GetOrgDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	var department *string
	if d := r.URL.Query().Get("department"); d != "" {
		department = &d
	}

	result, err := h.reportService.GetOrgDailyBreakdown(r.Context(), dateOrToday(r), department)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
