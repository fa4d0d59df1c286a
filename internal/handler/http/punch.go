package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gama-center/ponto-backend-go/internal/domain/punch"
	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// Register implements PunchHandler. Plain JSON registers an in-perimeter
// punch; multipart carries an out-of-perimeter attempt with an optional
// evidence photo for its justification.
func (h *punchHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req punch.RegisterPunchRequest

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
			if req.Justification == nil {
				response.BadRequest(w, "Evidence photo requires a justification", nil)
				return
			}
			req.Justification.File = file
			req.Justification.FileHeader = fileHeader
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

	result, err := h.punchService.RegisterPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Punch == nil {
		response.Created(w, "Punch attempt redirected to justification", result)
		return
	}
	response.Created(w, "Punch registered", result)
}

// Today implements PunchHandler.
func (h *punchHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.punchService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
