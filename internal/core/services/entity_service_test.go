package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/core/services"
	"github.com/relatecrm/relate_crm_app/internal/dto"
)

// --- Test Suite Setup ---

type EntityServiceTestSuite struct {
	suite.Suite
	mockEntityRepo *MockEntityRepository
	mockTracker    *MockFieldOrderSvc
	service        portssvc.EntitySvcFacade
}

func (suite *EntityServiceTestSuite) SetupTest() {
	suite.mockEntityRepo = new(MockEntityRepository)
	suite.mockTracker = new(MockFieldOrderSvc)
	suite.service = services.NewEntityService(suite.mockEntityRepo, suite.mockTracker)
}

// --- Test Cases ---

func (suite *EntityServiceTestSuite) TestCreateEntity_Success() {
	ctx := context.Background()
	req := dto.CreateEntityRequest{
		Attributes: map[string]any{"firstName": "Ada", "lastName": "Lovelace"},
	}

	suite.mockEntityRepo.On("SaveEntity", ctx, mock.MatchedBy(func(e domain.Entity) bool {
		return e.Module == "contacts" &&
			e.EntityID != "" &&
			e.Attributes["firstName"] == "Ada" &&
			!e.CreatedAt.IsZero()
	})).Return(nil).Once()

	entity, err := suite.service.CreateEntity(ctx, "contacts", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entity)
	suite.NotEmpty(entity.EntityID)
	suite.Equal("contacts", entity.Module)

	suite.mockEntityRepo.AssertExpectations(suite.T())
}

func (suite *EntityServiceTestSuite) TestCreateEntity_UnknownModule() {
	ctx := context.Background()

	entity, err := suite.service.CreateEntity(ctx, "spaceships", dto.CreateEntityRequest{
		Attributes: map[string]any{"name": "X"},
	})

	suite.Require().Error(err)
	suite.Nil(entity)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockEntityRepo.AssertNotCalled(suite.T(), "SaveEntity", mock.Anything, mock.Anything)
}

func (suite *EntityServiceTestSuite) TestCreateEntity_StampsInitialCustomFields() {
	ctx := context.Background()
	req := dto.CreateEntityRequest{
		Attributes: map[string]any{"name": "Migration"},
		CustomFields: domain.CustomFieldsMap{
			"budget_code": {Value: "BC-42", Label: "Budget Code"},
			"region":      {Value: "EMEA"},
		},
		FieldOrder: []string{"region", "budget_code"},
	}

	var saved domain.Entity
	suite.mockEntityRepo.On("SaveEntity", ctx, mock.AnythingOfType("domain.Entity")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Entity)
	}).Return(nil).Once()

	_, err := suite.service.CreateEntity(ctx, "projects", req)

	suite.Require().NoError(err)
	suite.Equal([]string{"region", "budget_code"}, saved.FieldOrder)
	// The merge stamps positions following the submitted order.
	suite.Equal(0, saved.CustomFields["region"].Order)
	suite.Equal(1, saved.CustomFields["budget_code"].Order)
	suite.False(saved.CustomFields["region"].LastModified.IsZero())
}

func (suite *EntityServiceTestSuite) TestGetEntity_NotFound() {
	ctx := context.Background()

	suite.mockEntityRepo.On("FindEntity", ctx, "contacts", "missing").Return(nil, apperrors.ErrNotFound).Once()

	entity, err := suite.service.GetEntity(ctx, "contacts", "missing")

	suite.Require().Error(err)
	suite.Nil(entity)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntityServiceTestSuite) TestGetEntityFields_ComposesOrderAndValues() {
	ctx := context.Background()
	entity := &domain.Entity{
		Module:   "projects",
		EntityID: "p-1",
		CustomFields: domain.CustomFieldsMap{
			"budget_code": {Value: "BC-42", Order: 0},
		},
	}
	resolved := []string{"budget_code", "kickoff"}

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "p-1").Return(entity, nil).Once()
	suite.mockTracker.On("ResolveOrder", ctx, "projects", "p-1").Return(resolved, nil).Once()

	view, err := suite.service.GetEntityFields(ctx, "projects", "p-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(view)
	suite.Equal("projects", view.Module)
	suite.Equal("p-1", view.EntityID)
	suite.Equal(resolved, view.FieldOrder)
	suite.Contains(view.CustomFields, "budget_code")

	suite.mockEntityRepo.AssertExpectations(suite.T())
	suite.mockTracker.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestEntityService(t *testing.T) {
	suite.Run(t, new(EntityServiceTestSuite))
}
