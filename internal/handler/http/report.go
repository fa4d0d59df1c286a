package http

import (
	"net/http"

	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/domain/report"
	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	BankOfHours(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Get implements ReportHandler.
func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(report.PeriodToday)
	}

	result, err := h.reportService.Compute(r.Context(), report.ReportFilter{
		Period: report.Period(period),
		Date:   r.URL.Query().Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// BankOfHours implements ReportHandler.
func (h *reportHandlerImpl) BankOfHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.BankOfHours(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements ReportHandler.
func (h *reportHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(report.PeriodWeek)
	}

	result, err := h.reportService.History(r.Context(), report.HistoryFilter{
		Period: report.Period(period),
		Date:   r.URL.Query().Get("date"),
		Kind:   punch.Kind(r.URL.Query().Get("kind")),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
