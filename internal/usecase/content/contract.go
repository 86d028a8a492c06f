package content

import (
	"context"

	"cms-backend/internal/domain"
	"cms-backend/internal/usecase/derivative"
)

type contentRepository interface {
	Create(ctx context.Context, entity domain.Entity) error
	GetByID(ctx context.Context, kind domain.Kind, id string) (domain.Entity, error)
	Update(ctx context.Context, entity domain.Entity) error
	Delete(ctx context.Context, kind domain.Kind, id string) error
	List(ctx context.Context, kind domain.Kind, limit, offset int) ([]domain.Entity, error)
}

type imageReconciler interface {
	ReconcileUpdate(ctx context.Context, actor string, old, updated domain.Entity) derivative.CleanupReport
	CleanupEntity(ctx context.Context, actor string, entity domain.Entity) derivative.CleanupReport
}
