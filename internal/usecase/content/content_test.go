package content

import (
	"context"
	"errors"
	"testing"

	"cms-backend/internal/domain"
	repocontent "cms-backend/internal/repository/content"
	"cms-backend/internal/usecase/derivative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

type fakeRepo struct {
	entities map[string]domain.Entity
	err      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entities: make(map[string]domain.Entity)}
}

func (f *fakeRepo) Create(_ context.Context, entity domain.Entity) error {
	if f.err != nil {
		return f.err
	}
	f.entities[entity.EntityID()] = entity
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, _ domain.Kind, id string) (domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	entity, ok := f.entities[id]
	if !ok {
		return nil, repocontent.ErrContentNotFound
	}
	return entity, nil
}

func (f *fakeRepo) Update(_ context.Context, entity domain.Entity) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.entities[entity.EntityID()]; !ok {
		return repocontent.ErrContentNotFound
	}
	f.entities[entity.EntityID()] = entity
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, _ domain.Kind, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.entities[id]; !ok {
		return repocontent.ErrContentNotFound
	}
	delete(f.entities, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, kind domain.Kind, _, _ int) ([]domain.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Entity
	for _, e := range f.entities {
		if e.EntityKind() == kind {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeReconciler struct {
	updates  int
	cleanups int
	lastOld  domain.Entity
	lastNew  domain.Entity
}

func (f *fakeReconciler) ReconcileUpdate(_ context.Context, _ string, old, updated domain.Entity) derivative.CleanupReport {
	f.updates++
	f.lastOld = old
	f.lastNew = updated
	return derivative.CleanupReport{}
}

func (f *fakeReconciler) CleanupEntity(_ context.Context, _ string, entity domain.Entity) derivative.CleanupReport {
	f.cleanups++
	f.lastOld = entity
	return derivative.CleanupReport{}
}

func newTestUsecase(repo *fakeRepo, reconciler *fakeReconciler) *ContentUsecase {
	zlog.Init()
	return NewContentUsecase(repo, reconciler, &zlog.Logger)
}

func TestCreateAssignsID(t *testing.T) {
	repo := newFakeRepo()
	u := newTestUsecase(repo, &fakeReconciler{})

	page := &domain.Page{Slug: "about", Title: domain.LocalizedText{"en": "About"}}
	created, err := u.Create(context.Background(), page)
	require.NoError(t, err)
	assert.NotEmpty(t, created.EntityID())
	assert.Contains(t, repo.entities, created.EntityID())
}

func TestGetNotFound(t *testing.T) {
	u := newTestUsecase(newFakeRepo(), &fakeReconciler{})

	_, err := u.Get(context.Background(), domain.KindPage, "missing")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestUpdateRunsReconciler(t *testing.T) {
	repo := newFakeRepo()
	reconciler := &fakeReconciler{}
	u := newTestUsecase(repo, reconciler)

	old := &domain.Faq{ID: "f1", Question: domain.LocalizedText{"en": "Q"}, Answer: domain.LocalizedText{"en": "old"}}
	repo.entities["f1"] = old

	updated := &domain.Faq{ID: "f1", Question: domain.LocalizedText{"en": "Q"}, Answer: domain.LocalizedText{"en": "new"}}
	_, err := u.Update(context.Background(), updated)
	require.NoError(t, err)

	assert.Equal(t, 1, reconciler.updates)
	assert.Same(t, domain.Entity(old), reconciler.lastOld)
	assert.Same(t, domain.Entity(updated), reconciler.lastNew)
	assert.Equal(t, updated, repo.entities["f1"])
}

func TestUpdateNotFound(t *testing.T) {
	reconciler := &fakeReconciler{}
	u := newTestUsecase(newFakeRepo(), reconciler)

	_, err := u.Update(context.Background(), &domain.Page{ID: "missing", Slug: "x", Title: domain.LocalizedText{"en": "X"}})
	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.Equal(t, 0, reconciler.updates)
}

func TestDeleteCleansUpImages(t *testing.T) {
	repo := newFakeRepo()
	reconciler := &fakeReconciler{}
	u := newTestUsecase(repo, reconciler)

	notice := &domain.Notice{ID: "n1", Title: domain.LocalizedText{"en": "T"}}
	repo.entities["n1"] = notice

	require.NoError(t, u.Delete(context.Background(), domain.KindNotice, "n1"))
	assert.Equal(t, 1, reconciler.cleanups)
	assert.Same(t, domain.Entity(notice), reconciler.lastOld)
	assert.NotContains(t, repo.entities, "n1")
}

func TestDeleteNotFound(t *testing.T) {
	reconciler := &fakeReconciler{}
	u := newTestUsecase(newFakeRepo(), reconciler)

	err := u.Delete(context.Background(), domain.KindNotice, "missing")
	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.Equal(t, 0, reconciler.cleanups)
}

func TestGetRepoErrorWrapped(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("db down")
	u := newTestUsecase(repo, &fakeReconciler{})

	_, err := u.Get(context.Background(), domain.KindPage, "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrContentNotFound)
}

func TestGetRendered(t *testing.T) {
	repo := newFakeRepo()
	u := newTestUsecase(repo, &fakeReconciler{})

	repo.entities["p1"] = &domain.Page{
		ID:    "p1",
		Slug:  "about",
		Title: domain.LocalizedText{"en": "About"},
		Body:  domain.LocalizedText{"en": "**bold**"},
	}

	entity, rendered, err := u.GetRendered(context.Background(), domain.KindPage, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", entity.EntityID())
	assert.Contains(t, rendered["body"]["en"], "<strong>bold</strong>")
}
