package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cms-backend/internal/domain"
	repocontent "cms-backend/internal/repository/content"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

type ContentUsecase struct {
	repo       contentRepository
	reconciler imageReconciler
	renderer   *Renderer
	logger     *zlog.Zerolog
}

func NewContentUsecase(repo contentRepository, reconciler imageReconciler, logger *zlog.Zerolog) *ContentUsecase {
	return &ContentUsecase{
		repo:       repo,
		reconciler: reconciler,
		renderer:   NewRenderer(),
		logger:     logger,
	}
}

func (u *ContentUsecase) Create(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	entity.SetEntityID(uuid.New().String())

	if err := u.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", entity.EntityKind(), err)
	}

	u.logger.Info().
		Str("kind", string(entity.EntityKind())).
		Str("id", entity.EntityID()).
		Msg("Content created")

	return entity, nil
}

func (u *ContentUsecase) Get(ctx context.Context, kind domain.Kind, id string) (domain.Entity, error) {
	entity, err := u.repo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repocontent.ErrContentNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", kind, id, err)
	}
	return entity, nil
}

// GetRendered returns the entity alongside its rich-text fields rendered to
// sanitized HTML.
func (u *ContentUsecase) GetRendered(ctx context.Context, kind domain.Kind, id string) (domain.Entity, map[string]domain.LocalizedText, error) {
	entity, err := u.Get(ctx, kind, id)
	if err != nil {
		return nil, nil, err
	}

	rendered, err := u.renderer.RenderFields(entity)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render %s %s: %w", kind, id, err)
	}

	return entity, rendered, nil
}

func (u *ContentUsecase) List(ctx context.Context, kind domain.Kind, limit, offset int) ([]domain.Entity, error) {
	entities, err := u.repo.List(ctx, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return entities, nil
}

// Update commits the new record first, then reconciles image references
// old vs new. Cleanup runs inside the request but its outcome never fails
// the update; a stuck deletion is cut off by the reconciler's timeout.
func (u *ContentUsecase) Update(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	kind := entity.EntityKind()

	old, err := u.repo.GetByID(ctx, kind, entity.EntityID())
	if err != nil {
		if errors.Is(err, repocontent.ErrContentNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to load %s %s: %w", kind, entity.EntityID(), err)
	}

	if err := u.repo.Update(ctx, entity); err != nil {
		if errors.Is(err, repocontent.ErrContentNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to update %s %s: %w", kind, entity.EntityID(), err)
	}

	u.reconciler.ReconcileUpdate(ctx, fmt.Sprintf("%s update", kind), old, entity)

	u.logger.Info().
		Str("kind", string(kind)).
		Str("id", entity.EntityID()).
		Msg("Content updated")

	return entity, nil
}

// Delete cleans up every image the entity referenced, then deletes the
// record. Cleanup is advisory; the record deletion proceeds regardless of
// its outcome.
func (u *ContentUsecase) Delete(ctx context.Context, kind domain.Kind, id string) error {
	old, err := u.repo.GetByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, repocontent.ErrContentNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
	}

	started := time.Now()
	u.reconciler.CleanupEntity(ctx, fmt.Sprintf("%s delete", kind), old)

	if err := u.repo.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, repocontent.ErrContentNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}

	u.logger.Info().
		Str("kind", string(kind)).
		Str("id", id).
		Dur("cleanup_duration", time.Since(started)).
		Msg("Content deleted")

	return nil
}
