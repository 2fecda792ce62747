package pgsql

import (
	"context"
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

type PgxFieldDefinitionRepository struct {
	BaseRepository
}

// newPgxFieldDefinitionRepository creates a new repository for custom-field definitions.
func newPgxFieldDefinitionRepository(pool *pgxpool.Pool) portsrepo.FieldDefinitionRepository {
	return &PgxFieldDefinitionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FieldDefinitionRepository = (*PgxFieldDefinitionRepository)(nil)

// SaveFieldDefinition inserts a new definition. The unique index on
// (module, name) is the authoritative duplicate guard; a violation maps to
// apperrors.ErrDuplicate regardless of any earlier application-level check.
func (r *PgxFieldDefinitionRepository) SaveFieldDefinition(ctx context.Context, def domain.FieldDefinition) error {
	m := mapping.ToModelFieldDefinition(def)

	query := `
		INSERT INTO field_definitions (field_id, module, name, label, field_type, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.FieldID,
		m.Module,
		m.Name,
		m.Label,
		m.Type,
		m.Order,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: field %q already exists for module %q", apperrors.ErrDuplicate, m.Name, m.Module)
		}
		return fmt.Errorf("failed to save field definition %s.%s: %w", m.Module, m.Name, translateStorageErr(err))
	}
	return nil
}

// FindFieldDefinitionByID retrieves a definition by its id.
func (r *PgxFieldDefinitionRepository) FindFieldDefinitionByID(ctx context.Context, fieldID string) (*domain.FieldDefinition, error) {
	query := `
		SELECT field_id, module, name, label, field_type, display_order, created_at, updated_at
		FROM field_definitions
		WHERE field_id = $1;
	`
	return r.findOne(ctx, query, fieldID)
}

// FindFieldDefinitionByName retrieves a definition by its (module, name) identity.
func (r *PgxFieldDefinitionRepository) FindFieldDefinitionByName(ctx context.Context, module, name string) (*domain.FieldDefinition, error) {
	query := `
		SELECT field_id, module, name, label, field_type, display_order, created_at, updated_at
		FROM field_definitions
		WHERE module = $1 AND name = $2;
	`
	return r.findOne(ctx, query, module, name)
}

func (r *PgxFieldDefinitionRepository) findOne(ctx context.Context, query string, args ...any) (*domain.FieldDefinition, error) {
	var m models.FieldDefinition
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.FieldID,
		&m.Module,
		&m.Name,
		&m.Label,
		&m.Type,
		&m.Order,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find field definition: %w", translateStorageErr(err))
	}

	d := mapping.ToDomainFieldDefinition(m)
	return &d, nil
}

// ListFieldDefinitions retrieves definitions for one module, or all of them
// when module is empty, ordered by display order then name.
func (r *PgxFieldDefinitionRepository) ListFieldDefinitions(ctx context.Context, module string) ([]domain.FieldDefinition, error) {
	query := `
		SELECT field_id, module, name, label, field_type, display_order, created_at, updated_at
		FROM field_definitions
		WHERE ($1 = '' OR module = $1)
		ORDER BY module, display_order, name;
	`
	rows, err := r.Pool.Query(ctx, query, module)
	if err != nil {
		return nil, fmt.Errorf("failed to query field definitions: %w", translateStorageErr(err))
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FieldDefinition, error) {
		var m models.FieldDefinition
		err := row.Scan(
			&m.FieldID,
			&m.Module,
			&m.Name,
			&m.Label,
			&m.Type,
			&m.Order,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		return m, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FieldDefinition{}, nil
		}
		return nil, fmt.Errorf("failed to scan field definitions: %w", translateStorageErr(err))
	}

	return mapping.ToDomainFieldDefinitionSlice(ms), nil
}

// UpdateFieldDefinition overwrites a stored definition in place. Uniqueness of
// (module, name) against other rows is not re-checked here beyond the index.
func (r *PgxFieldDefinitionRepository) UpdateFieldDefinition(ctx context.Context, def domain.FieldDefinition) error {
	m := mapping.ToModelFieldDefinition(def)

	query := `
		UPDATE field_definitions
		SET label = $2, field_type = $3, display_order = $4, updated_at = $5
		WHERE field_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.FieldID, m.Label, m.Type, m.Order, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update field definition %s: %w", m.FieldID, translateStorageErr(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFieldDefinition removes the definition row only; entity custom-field
// maps keep whatever values the field already stored.
func (r *PgxFieldDefinitionRepository) DeleteFieldDefinition(ctx context.Context, fieldID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM field_definitions WHERE field_id = $1;`, fieldID)
	if err != nil {
		return fmt.Errorf("failed to delete field definition %s: %w", fieldID, translateStorageErr(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
