// Package reconcile keeps stored image variants in step with the content
// that references them. On every update it diffs the images an entity
// referenced before and after the write and deletes the variant sets the
// entity stopped referencing; on delete it removes everything the entity
// referenced.
//
// The diff is scoped to the single entity being mutated: an image shared by
// URL across two entities is deleted as soon as the first one drops it.
// This is a known approximation; a true cross-entity reference count would
// need its own stored index.
package reconcile

import (
	"context"
	"sync"
	"time"

	"cms-backend/internal/domain"
	"cms-backend/internal/usecase/derivative"
	"cms-backend/internal/usecase/refs"

	"github.com/wb-go/wbf/zlog"
)

type variantDeleter interface {
	DeleteAllVariants(ctx context.Context, basefilename, actor string) derivative.CleanupReport
}

type Reconciler struct {
	store   variantDeleter
	logger  *zlog.Zerolog
	timeout time.Duration
}

func NewReconciler(store variantDeleter, logger *zlog.Zerolog, timeout time.Duration) *Reconciler {
	return &Reconciler{
		store:   store,
		logger:  logger,
		timeout: timeout,
	}
}

// ReconcileUpdate deletes the variant sets of every image the entity
// referenced in any rich-text field before the update and in none after it.
// The record write has already been committed when this runs; the outcome
// is advisory and only logged.
func (r *Reconciler) ReconcileUpdate(ctx context.Context, actor string, old, updated domain.Entity) derivative.CleanupReport {
	oldURLs := referencedURLs(old)
	newURLs := referencedURLs(updated)

	var removed []string
	for url := range oldURLs {
		if _, kept := newURLs[url]; !kept {
			removed = append(removed, url)
		}
	}

	return r.deleteResolved(ctx, actor, removed)
}

// CleanupEntity deletes the variant sets of every image referenced anywhere
// in the entity, across all rich-text fields, locales and lifecycle states.
// Used on entity delete; must never block or fail the record deletion.
func (r *Reconciler) CleanupEntity(ctx context.Context, actor string, entity domain.Entity) derivative.CleanupReport {
	urls := referencedURLs(entity)

	all := make([]string, 0, len(urls))
	for url := range urls {
		all = append(all, url)
	}

	return r.deleteResolved(ctx, actor, all)
}

// deleteResolved resolves each URL to a basefilename (unrecognized URLs are
// skipped, never deleted), deduplicates, and deletes the variant sets
// concurrently under the cleanup timeout.
func (r *Reconciler) deleteResolved(ctx context.Context, actor string, urls []string) derivative.CleanupReport {
	basefilenames := make(map[string]struct{})
	for _, u := range urls {
		if base, ok := refs.ResolveBaseFileName(u); ok {
			basefilenames[base] = struct{}{}
		}
	}

	if len(basefilenames) == 0 {
		return derivative.CleanupReport{}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		mu    sync.Mutex
		total derivative.CleanupReport
		wg    sync.WaitGroup
	)

	for base := range basefilenames {
		wg.Add(1)
		go func(base string) {
			defer wg.Done()
			report := r.store.DeleteAllVariants(ctx, base, actor)
			mu.Lock()
			total = total.Merge(report)
			mu.Unlock()
		}(base)
	}
	wg.Wait()

	if total.Failed > 0 {
		r.logger.Warn().
			Str("actor", actor).
			Int("basefilenames", len(basefilenames)).
			Int("failed", total.Failed).
			Msg("Image cleanup finished with failures")
	} else {
		r.logger.Info().
			Str("actor", actor).
			Int("basefilenames", len(basefilenames)).
			Int("deleted", total.Deleted).
			Int("missing", total.Missing).
			Msg("Image cleanup finished")
	}

	return total
}

func referencedURLs(entity domain.Entity) map[string]struct{} {
	urls := make(map[string]struct{})
	if entity == nil {
		return urls
	}
	for _, field := range entity.ContentFields() {
		for _, value := range field.Values {
			for _, u := range refs.ExtractImageURLs(value) {
				urls[u] = struct{}{}
			}
		}
	}
	return urls
}
