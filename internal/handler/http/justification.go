package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gama-center/ponto-backend-go/internal/domain/justification"
	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
	"github.com/gama-center/ponto-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type JustificationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Latest(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
}

type justificationHandlerImpl struct {
	justificationService justification.JustificationService
}

func NewJustificationHandler(justificationService justification.JustificationService) JustificationHandler {
	return &justificationHandlerImpl{
		justificationService: justificationService,
	}
}

// Submit implements JustificationHandler.
func (h *justificationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req justification.SubmitRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		// Parse multipart form (max 10MB)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}

		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("Failed to unmarshal JSON data", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("photo")
		if err == nil {
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		} else if err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.justificationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Justification submitted", result)
}

// Latest implements JustificationHandler.
func (h *justificationHandlerImpl) Latest(w http.ResponseWriter, r *http.Request) {
	result, err := h.justificationService.Latest(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements JustificationHandler.
func (h *justificationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid justification id", nil)
		return
	}

	result, err := h.justificationService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification approved", result)
}

type rejectBody struct {
	Reason string `json:"reason"`
}

// Reject implements JustificationHandler.
func (h *justificationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid justification id", nil)
		return
	}

	var body rejectBody
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	result, err := h.justificationService.Reject(r.Context(), justification.RejectRequest{
		ID:     id,
		Reason: body.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification rejected", result)
}

// Acknowledge implements JustificationHandler.
func (h *justificationHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid justification id", nil)
		return
	}

	if err := h.justificationService.Acknowledge(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification acknowledged", nil)
}
