package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"echo-server/internal/domain"
	"echo-server/internal/middleware"
	"echo-server/internal/service"
	"echo-server/pkg/response"
)

type ReportHandler struct {
	reportService *service.ReportService
	validator     *validator.Validate
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validator:     validator.New(),
	}
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Invalid report type")
		return
	}

	report, err := h.reportService.Create(r.Context(), middleware.GetUserID(r), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Created(w, "Report submitted", report)
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	status := r.URL.Query().Get("status")

	reports, err := h.reportService.List(r.Context(), status, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", reports)
}

func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid report id")
		return
	}

	var req domain.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Invalid report status")
		return
	}

	report, err := h.reportService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Report updated", report)
}
