package content

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cms-backend/internal/domain"
	content_uc "cms-backend/internal/usecase/content"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

type fakeUsecase struct {
	entity  domain.Entity
	list    []domain.Entity
	err     error
	deleted []string
}

func (f *fakeUsecase) Create(_ context.Context, entity domain.Entity) (domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	entity.SetEntityID("generated-id")
	return entity, nil
}

func (f *fakeUsecase) Get(_ context.Context, _ domain.Kind, _ string) (domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entity, nil
}

func (f *fakeUsecase) GetRendered(_ context.Context, _ domain.Kind, _ string) (domain.Entity, map[string]domain.LocalizedText, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.entity, map[string]domain.LocalizedText{"body": {"en": "<p>html</p>"}}, nil
}

func (f *fakeUsecase) List(_ context.Context, _ domain.Kind, _, _ int) ([]domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeUsecase) Update(_ context.Context, entity domain.Entity) (domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return entity, nil
}

func (f *fakeUsecase) Delete(_ context.Context, _ domain.Kind, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestRouter(usecase *fakeUsecase) *chi.Mux {
	zlog.Init()
	h := NewContentHandler(usecase, &zlog.Logger)

	r := chi.NewRouter()
	r.Route("/api/content/{kind}", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestCreatePage(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	body, _ := json.Marshal(map[string]interface{}{
		"slug":  "about",
		"title": map[string]string{"en": "About"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/content/page/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var page domain.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "generated-id", page.ID)
	assert.Equal(t, "about", page.Slug)
}

func TestCreateUnknownKind(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/content/banner/", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateValidationFailure(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	// page without required slug/title
	req := httptest.NewRequest(http.MethodPost, "/api/content/page/", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInvalidBody(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/content/page/", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNotFound(t *testing.T) {
	router := newTestRouter(&fakeUsecase{err: content_uc.ErrContentNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/content/page/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRenderedResponse(t *testing.T) {
	usecase := &fakeUsecase{
		entity: &domain.Page{ID: "p1", Slug: "about", Title: domain.LocalizedText{"en": "About"}},
	}
	router := newTestRouter(usecase)

	req := httptest.NewRequest(http.MethodGet, "/api/content/page/p1?render=html", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rendered map[string]domain.LocalizedText `json:"rendered"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "<p>html</p>", resp.Rendered["body"]["en"])
}

func TestListEmpty(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/content/faq/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items  []json.RawMessage `json:"items"`
		Limit  int               `json:"limit"`
		Offset int               `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.Equal(t, defaultListLimit, resp.Limit)
}

func TestListLimitClamped(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/content/faq/?limit=9999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, maxListLimit, resp.Limit)
}

func TestDelete(t *testing.T) {
	usecase := &fakeUsecase{}
	router := newTestRouter(usecase)

	req := httptest.NewRequest(http.MethodDelete, "/api/content/notice/n1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"n1"}, usecase.deleted)
}

func TestDeleteNotFound(t *testing.T) {
	router := newTestRouter(&fakeUsecase{err: content_uc.ErrContentNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/content/notice/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
