package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
	"github.com/gama-center/ponto-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type FileHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &fileHandlerImpl{
		fileService: fileService,
	}
}

// Serve implements FileHandler. Streams an uploaded file (avatar or
// justification evidence) back to the client. The storage layer rejects
// paths that escape its base directory.
func (h *fileHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if path == "" {
		response.NotFound(w, "File not found")
		return
	}

	rc, err := h.fileService.DownloadFile(r.Context(), path)
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, rc); err != nil {
		return
	}
}
