package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
	"github.com/relatecrm/relate_crm_app/internal/models"
	"github.com/relatecrm/relate_crm_app/internal/utils/mapping"
)

type PgxFieldOrderRepository struct {
	BaseRepository
}

// newPgxFieldOrderRepository creates a new repository for the field-order side table.
func newPgxFieldOrderRepository(pool *pgxpool.Pool) portsrepo.FieldOrderRepository {
	return &PgxFieldOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FieldOrderRepository = (*PgxFieldOrderRepository)(nil)

// FindFieldOrder retrieves the side record for (module, entityID).
func (r *PgxFieldOrderRepository) FindFieldOrder(ctx context.Context, module, entityID string) (*domain.FieldOrder, error) {
	query := `
		SELECT module, entity_id, field_order, last_modified
		FROM field_orders
		WHERE module = $1 AND entity_id = $2;
	`
	var m models.FieldOrder
	var orderJSON []byte
	err := r.Pool.QueryRow(ctx, query, module, entityID).Scan(
		&m.Module,
		&m.EntityID,
		&orderJSON,
		&m.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find field order %s/%s: %w", module, entityID, translateStorageErr(err))
	}

	if len(orderJSON) > 0 {
		if err := json.Unmarshal(orderJSON, &m.FieldOrder); err != nil {
			return nil, fmt.Errorf("failed to decode field order %s/%s: %w", module, entityID, err)
		}
	}

	d := mapping.ToDomainFieldOrder(m)
	return &d, nil
}

// SaveFieldOrder upserts the side record. The upsert makes the write
// idempotent on retry.
func (r *PgxFieldOrderRepository) SaveFieldOrder(ctx context.Context, order domain.FieldOrder) error {
	m := mapping.ToModelFieldOrder(order)

	orderJSON, err := json.Marshal(m.FieldOrder)
	if err != nil {
		return fmt.Errorf("failed to encode field order %s/%s: %w", m.Module, m.EntityID, err)
	}

	query := `
		INSERT INTO field_orders (module, entity_id, field_order, last_modified)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (module, entity_id) DO UPDATE SET
			field_order = EXCLUDED.field_order,
			last_modified = EXCLUDED.last_modified;
	`
	_, err = r.Pool.Exec(ctx, query, m.Module, m.EntityID, orderJSON, m.LastModified)
	if err != nil {
		return fmt.Errorf("failed to save field order %s/%s: %w", m.Module, m.EntityID, translateStorageErr(err))
	}
	return nil
}
