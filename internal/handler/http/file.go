package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type FileHandler interface {
	Download(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &fileHandlerImpl{fileService: fileService}
}

// Download streams a stored photo or certificate. The path comes from the
// wildcard segment of the route.
func (h *fileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	filePath := chi.URLParam(r, "*")
	if filePath == "" {
		response.BadRequest(w, "File path is required", nil)
		return
	}

	f, err := h.fileService.Open(r.Context(), filePath)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer f.Close()

	contentType := mime.TypeByExtension(path.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": path.Base(filePath)}))

	if _, err := io.Copy(w, f); err != nil {
		slog.Error("failed to stream file", "path", filePath, "error", err)
	}
}
