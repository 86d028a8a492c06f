package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"cms-backend/internal/domain"
	"cms-backend/internal/http-server/handler/upload/dto"
	upload_uc "cms-backend/internal/usecase/upload"

	"github.com/wb-go/wbf/zlog"
)

const maxMemory = 32 << 20

type uploadUsecase interface {
	UploadOriginal(ctx context.Context, ns domain.Namespace, filename, contentType string, data []byte) (*upload_uc.Result, error)
}

type UploadHandler struct {
	usecase       uploadUsecase
	logger        *zlog.Zerolog
	maxUploadSize int64
}

func NewUploadHandler(usecase uploadUsecase, logger *zlog.Zerolog, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		usecase:       usecase,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse multipart form")
		h.respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.respondError(w, http.StatusBadRequest, "File must be an image")
		return
	}

	ns := domain.NamespaceEditor
	if v := r.FormValue("namespace"); v != "" {
		if !domain.IsKnownNamespace(v) {
			h.respondError(w, http.StatusBadRequest, "Unknown namespace")
			return
		}
		ns = domain.Namespace(v)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read file")
		h.respondError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	result, err := h.usecase.UploadOriginal(ctx, ns, header.Filename, contentType, data)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Upload failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.UploadResponse{
		BaseFileName: result.BaseFileName,
		Key:          result.Key,
		URL:          result.PublicURL,
	})
}

func (h *UploadHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *UploadHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
