package derivative

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cms-backend/internal/domain"
	repofile "cms-backend/internal/repository/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  map[string]error
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects: make(map[string][]byte),
		failOn:  make(map[string]error),
	}
}

func (f *fakeObjectStore) PutObject(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[key]; ok {
		return err
	}
	f.objects[key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeObjectStore) RemoveObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, key)
	if err, ok := f.failOn[key]; ok {
		return err
	}
	if _, ok := f.objects[key]; !ok {
		return repofile.ErrObjectNotFound
	}
	delete(f.objects, key)
	return nil
}

func testLogger() *zlog.Zerolog {
	zlog.Init()
	return &zlog.Logger
}

func TestWriteDerivativeOverwrites(t *testing.T) {
	objects := newFakeObjectStore()
	store := NewStore(objects, testLogger())
	ctx := context.Background()

	require.NoError(t, store.WriteDerivative(ctx, domain.NamespaceEditor, "thumbnail", "cat.png", []byte("v1")))
	require.NoError(t, store.WriteDerivative(ctx, domain.NamespaceEditor, "thumbnail", "cat.png", []byte("v2")))

	assert.Equal(t, []byte("v2"), objects.objects["images/editor/thumbnail/cat.png"])
}

func TestDeleteAllVariantsEmptyStore(t *testing.T) {
	objects := newFakeObjectStore()
	store := NewStore(objects, testLogger())

	report := store.DeleteAllVariants(context.Background(), "ghost.png", "test")

	assert.Equal(t, 0, report.Deleted)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, len(domain.VariantKeys("ghost.png")), report.Missing)
}

func TestDeleteAllVariantsPartialSet(t *testing.T) {
	objects := newFakeObjectStore()
	objects.objects["images/editor/cat.png"] = []byte("orig")
	objects.objects["images/editor/thumbnail/cat.png"] = []byte("t")
	objects.objects["images/medium/cat.png"] = []byte("legacy")

	store := NewStore(objects, testLogger())
	report := store.DeleteAllVariants(context.Background(), "cat.png", "test")

	assert.Equal(t, 3, report.Deleted)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, objects.objects)
}

func TestDeleteAllVariantsReportsFailures(t *testing.T) {
	objects := newFakeObjectStore()
	objects.objects["images/editor/thumbnail/cat.png"] = []byte("t")
	objects.failOn["images/editor/large/cat.png"] = errors.New("store unavailable")

	store := NewStore(objects, testLogger())
	report := store.DeleteAllVariants(context.Background(), "cat.png", "faq delete")

	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, len(domain.VariantKeys("cat.png"))-2, report.Missing)
	assert.Len(t, objects.removed, len(domain.VariantKeys("cat.png")))
}

func TestCleanupReportMerge(t *testing.T) {
	a := CleanupReport{Deleted: 1, Missing: 2, Failed: 3}
	b := CleanupReport{Deleted: 4, Missing: 5, Failed: 6}

	merged := a.Merge(b)
	assert.Equal(t, CleanupReport{Deleted: 5, Missing: 7, Failed: 9}, merged)
}
