package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FieldDefinitionRepo: newPgxFieldDefinitionRepository(dbPool),
		FieldOrderRepo:      newPgxFieldOrderRepository(dbPool),
		EntityRepo:          newPgxEntityRepository(dbPool),
	}
}
