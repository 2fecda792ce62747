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

// PgxEntityRepository stores CRM records as documents: one row per
// (module, entity_id) with the attribute body, the custom-field map and the
// inline field order each held in a JSONB column.
type PgxEntityRepository struct {
	BaseRepository
}

// newPgxEntityRepository creates a new repository for entity documents.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepository {
	return &PgxEntityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.EntityRepository = (*PgxEntityRepository)(nil)

// FindEntity retrieves one entity document by module and id.
func (r *PgxEntityRepository) FindEntity(ctx context.Context, module, entityID string) (*domain.Entity, error) {
	query := `
		SELECT module, entity_id, attributes, custom_fields, field_order, created_at, updated_at
		FROM entities
		WHERE module = $1 AND entity_id = $2;
	`
	var m models.Entity
	var attrsJSON, fieldsJSON, orderJSON []byte
	err := r.Pool.QueryRow(ctx, query, module, entityID).Scan(
		&m.Module,
		&m.EntityID,
		&attrsJSON,
		&fieldsJSON,
		&orderJSON,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity %s/%s: %w", module, entityID, translateStorageErr(err))
	}

	if err := decodeJSONColumn(attrsJSON, &m.Attributes); err != nil {
		return nil, fmt.Errorf("failed to decode attributes for %s/%s: %w", module, entityID, err)
	}
	if err := decodeJSONColumn(fieldsJSON, &m.CustomFields); err != nil {
		return nil, fmt.Errorf("failed to decode custom fields for %s/%s: %w", module, entityID, err)
	}
	if err := decodeJSONColumn(orderJSON, &m.FieldOrder); err != nil {
		return nil, fmt.Errorf("failed to decode field order for %s/%s: %w", module, entityID, err)
	}

	d := mapping.ToDomainEntity(m)
	return &d, nil
}

// SaveEntity inserts a new entity document.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)

	attrsJSON, err := json.Marshal(m.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode attributes for %s/%s: %w", m.Module, m.EntityID, err)
	}
	fieldsJSON, err := json.Marshal(m.CustomFields)
	if err != nil {
		return fmt.Errorf("failed to encode custom fields for %s/%s: %w", m.Module, m.EntityID, err)
	}
	orderJSON, err := json.Marshal(m.FieldOrder)
	if err != nil {
		return fmt.Errorf("failed to encode field order for %s/%s: %w", m.Module, m.EntityID, err)
	}

	query := `
		INSERT INTO entities (module, entity_id, attributes, custom_fields, field_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.Pool.Exec(ctx, query, m.Module, m.EntityID, attrsJSON, fieldsJSON, orderJSON, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entity %s/%s", apperrors.ErrDuplicate, m.Module, m.EntityID)
		}
		return fmt.Errorf("failed to save entity %s/%s: %w", m.Module, m.EntityID, translateStorageErr(err))
	}
	return nil
}

// UpdateEntityFields writes a partial set of the document's field attributes:
// a nil customFields or fieldOrder leaves the stored column untouched. Whole
// column replacement keeps the write idempotent on retry.
func (r *PgxEntityRepository) UpdateEntityFields(ctx context.Context, module, entityID string, customFields domain.CustomFieldsMap, fieldOrder []string) error {
	var fieldsJSON, orderJSON []byte
	var err error

	if customFields != nil {
		fieldsJSON, err = json.Marshal(mapping.ToModelCustomFieldsMap(customFields))
		if err != nil {
			return fmt.Errorf("failed to encode custom fields for %s/%s: %w", module, entityID, err)
		}
	}
	if fieldOrder != nil {
		orderJSON, err = json.Marshal(fieldOrder)
		if err != nil {
			return fmt.Errorf("failed to encode field order for %s/%s: %w", module, entityID, err)
		}
	}

	query := `
		UPDATE entities
		SET custom_fields = COALESCE($3, custom_fields),
			field_order = COALESCE($4, field_order),
			updated_at = NOW()
		WHERE module = $1 AND entity_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, module, entityID, fieldsJSON, orderJSON)
	if err != nil {
		return fmt.Errorf("failed to update entity fields %s/%s: %w", module, entityID, translateStorageErr(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// decodeJSONColumn unmarshals a nullable JSONB column into dst, leaving dst
// zero for NULL or empty columns.
func decodeJSONColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
