package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cms-backend/internal/domain"
	"cms-backend/internal/http-server/handler/content/dto"
	content_uc "cms-backend/internal/usecase/content"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ContentHandler struct {
	usecase  contentUsecase
	validate *validator.Validate
	logger   *zlog.Zerolog
}

func NewContentHandler(usecase contentUsecase, logger *zlog.Zerolog) *ContentHandler {
	return &ContentHandler{
		usecase:  usecase,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entity, ok := h.decodeEntity(w, r)
	if !ok {
		return
	}

	created, err := h.usecase.Create(ctx, entity)
	if err != nil {
		h.logger.Error().Err(err).Str("kind", string(entity.EntityKind())).Msg("Create failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to create content", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := h.parseKind(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("render") == "html" {
		entity, rendered, err := h.usecase.GetRendered(ctx, kind, id)
		if err != nil {
			h.handleGetError(w, err, kind, id)
			return
		}
		h.respondJSON(w, http.StatusOK, dto.RenderedResponse{Entity: entity, Rendered: rendered})
		return
	}

	entity, err := h.usecase.Get(ctx, kind, id)
	if err != nil {
		h.handleGetError(w, err, kind, id)
		return
	}

	h.respondJSON(w, http.StatusOK, entity)
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := h.parseKind(w, r)
	if !ok {
		return
	}

	limit := parsePositiveInt(r.URL.Query().Get("limit"), defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := parsePositiveInt(r.URL.Query().Get("offset"), 0)

	entities, err := h.usecase.List(ctx, kind, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Str("kind", string(kind)).Msg("List failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to list content", err)
		return
	}

	if entities == nil {
		entities = []domain.Entity{}
	}

	h.respondJSON(w, http.StatusOK, dto.ListResponse{Items: entities, Limit: limit, Offset: offset})
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entity, ok := h.decodeEntity(w, r)
	if !ok {
		return
	}
	entity.SetEntityID(chi.URLParam(r, "id"))

	updated, err := h.usecase.Update(ctx, entity)
	if err != nil {
		if errors.Is(err, content_uc.ErrContentNotFound) {
			h.respondError(w, http.StatusNotFound, "Content not found", nil)
			return
		}
		h.logger.Error().Err(err).Str("kind", string(entity.EntityKind())).Str("id", entity.EntityID()).Msg("Update failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to update content", err)
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := h.parseKind(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.usecase.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, content_uc.ErrContentNotFound) {
			h.respondError(w, http.StatusNotFound, "Content not found", nil)
			return
		}
		h.logger.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Delete failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to delete content", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) parseKind(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	kind := domain.Kind(chi.URLParam(r, "kind"))
	if domain.NewEntity(kind) == nil {
		h.respondError(w, http.StatusBadRequest, "Unknown content kind", nil)
		return "", false
	}
	return kind, true
}

func (h *ContentHandler) decodeEntity(w http.ResponseWriter, r *http.Request) (domain.Entity, bool) {
	kind, ok := h.parseKind(w, r)
	if !ok {
		return nil, false
	}

	entity := domain.NewEntity(kind)
	if err := json.NewDecoder(r.Body).Decode(entity); err != nil {
		h.logger.Warn().Err(err).Str("kind", string(kind)).Msg("Failed to decode request body")
		h.respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}

	if err := h.validate.Struct(entity); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation failed", err)
		return nil, false
	}

	return entity, true
}

func (h *ContentHandler) handleGetError(w http.ResponseWriter, err error, kind domain.Kind, id string) {
	if errors.Is(err, content_uc.ErrContentNotFound) {
		h.respondError(w, http.StatusNotFound, "Content not found", nil)
		return
	}
	h.logger.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Get failed")
	h.respondError(w, http.StatusInternalServerError, "Failed to get content", err)
}

func (h *ContentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ContentHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if err != nil && status >= 500 {
		resp.Details = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
