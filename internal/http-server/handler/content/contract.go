package content

import (
	"context"

	"cms-backend/internal/domain"
)

type contentUsecase interface {
	Create(ctx context.Context, entity domain.Entity) (domain.Entity, error)
	Get(ctx context.Context, kind domain.Kind, id string) (domain.Entity, error)
	GetRendered(ctx context.Context, kind domain.Kind, id string) (domain.Entity, map[string]domain.LocalizedText, error)
	List(ctx context.Context, kind domain.Kind, limit, offset int) ([]domain.Entity, error)
	Update(ctx context.Context, entity domain.Entity) (domain.Entity, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
}
