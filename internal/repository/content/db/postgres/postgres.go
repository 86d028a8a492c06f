package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cms-backend/internal/domain"
	repocontent "cms-backend/internal/repository/content"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// ContentRepository stores each entity as one JSONB document row, keyed by
// (kind, id). Rich-text locale maps live inside the document.
type ContentRepository struct {
	db      *dbpg.DB
	retries retry.Strategy
}

func NewContentRepository(db *dbpg.DB, retries retry.Strategy) *ContentRepository {
	return &ContentRepository{
		db:      db,
		retries: retries,
	}
}

func (r *ContentRepository) Create(ctx context.Context, entity domain.Entity) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", entity.EntityKind(), err)
	}

	query := `
		INSERT INTO contents (id, kind, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	_, err = r.db.ExecWithRetry(ctx, r.retries, query,
		entity.EntityID(),
		string(entity.EntityKind()),
		data,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", entity.EntityKind(), err)
	}

	return nil
}

func (r *ContentRepository) GetByID(ctx context.Context, kind domain.Kind, id string) (domain.Entity, error) {
	query := `SELECT data FROM contents WHERE kind = $1 AND id = $2`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, string(kind), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s %s: %w", kind, id, err)
	}

	var data []byte
	err = row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, repocontent.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s %s: %w", kind, id, err)
	}

	return unmarshalEntity(kind, data)
}

func (r *ContentRepository) Update(ctx context.Context, entity domain.Entity) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", entity.EntityKind(), err)
	}

	query := `UPDATE contents SET data = $1, updated_at = $2 WHERE kind = $3 AND id = $4`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query,
		data,
		time.Now(),
		string(entity.EntityKind()),
		entity.EntityID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", entity.EntityKind(), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return repocontent.ErrContentNotFound
	}

	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, kind domain.Kind, id string) error {
	query := `DELETE FROM contents WHERE kind = $1 AND id = $2`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return repocontent.ErrContentNotFound
	}

	return nil
}

func (r *ContentRepository) List(ctx context.Context, kind domain.Kind, limit, offset int) ([]domain.Entity, error) {
	query := `
		SELECT data FROM contents
		WHERE kind = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryWithRetry(ctx, r.retries, query, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}

		entity, err := unmarshalEntity(kind, data)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", kind, err)
	}

	return entities, nil
}

func unmarshalEntity(kind domain.Kind, data []byte) (domain.Entity, error) {
	entity := domain.NewEntity(kind)
	if entity == nil {
		return nil, fmt.Errorf("unknown content kind: %s", kind)
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}
	return entity, nil
}
