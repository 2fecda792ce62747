package services

import (
	portsrepo "github.com/relatecrm/relate_crm_app/internal/core/ports/repositories"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The definition store and the order tracker come first since the
	// registration façade and the entity service compose them.
	container.FieldDefinition = NewFieldDefinitionService(repos.FieldDefinitionRepo)
	container.FieldOrder = NewFieldOrderService(repos.FieldOrderRepo, repos.EntityRepo, repos.FieldDefinitionRepo)

	container.FieldRegistration = NewFieldRegistrationService(
		container.FieldDefinition,
		container.FieldOrder,
		repos.EntityRepo,
	)
	container.Entity = NewEntityService(repos.EntityRepo, container.FieldOrder)

	return container
}
