package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/relatecrm/relate_crm_app/internal/apperrors"
	"github.com/relatecrm/relate_crm_app/internal/core/domain"
	portssvc "github.com/relatecrm/relate_crm_app/internal/core/ports/services"
	"github.com/relatecrm/relate_crm_app/internal/core/services"
	"github.com/relatecrm/relate_crm_app/internal/dto"
)

// MockFieldDefinitionSvc is a mock type for the FieldDefinitionSvcFacade interface
type MockFieldDefinitionSvc struct {
	mock.Mock
}

func (m *MockFieldDefinitionSvc) ListFields(ctx context.Context, module string) ([]domain.FieldDefinition, error) {
	args := m.Called(ctx, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionSvc) GetFieldByID(ctx context.Context, fieldID string) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionSvc) GetFieldByName(ctx context.Context, module, name string) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, module, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionSvc) CreateField(ctx context.Context, req dto.CreateFieldRequest) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionSvc) UpdateField(ctx context.Context, fieldID string, req dto.UpdateFieldRequest) (*domain.FieldDefinition, error) {
	args := m.Called(ctx, fieldID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldDefinition), args.Error(1)
}

func (m *MockFieldDefinitionSvc) DeleteField(ctx context.Context, fieldID string) error {
	args := m.Called(ctx, fieldID)
	return args.Error(0)
}

// MockFieldOrderSvc is a mock type for the FieldOrderSvc interface
type MockFieldOrderSvc struct {
	mock.Mock
}

func (m *MockFieldOrderSvc) GetOrder(ctx context.Context, module, entityID string) ([]string, error) {
	args := m.Called(ctx, module, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFieldOrderSvc) ResolveOrder(ctx context.Context, module, entityID string) ([]string, error) {
	args := m.Called(ctx, module, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFieldOrderSvc) SetOrder(ctx context.Context, module, entityID string, order []string) error {
	args := m.Called(ctx, module, entityID, order)
	return args.Error(0)
}

// --- Test Suite Setup ---

type FieldRegistrationServiceTestSuite struct {
	suite.Suite
	mockDefinitions *MockFieldDefinitionSvc
	mockTracker     *MockFieldOrderSvc
	mockEntityRepo  *MockEntityRepository
	service         portssvc.FieldRegistrationSvcFacade
}

func (suite *FieldRegistrationServiceTestSuite) SetupTest() {
	suite.mockDefinitions = new(MockFieldDefinitionSvc)
	suite.mockTracker = new(MockFieldOrderSvc)
	suite.mockEntityRepo = new(MockEntityRepository)
	suite.service = services.NewFieldRegistrationService(suite.mockDefinitions, suite.mockTracker, suite.mockEntityRepo)
}

// --- Test Cases ---

func (suite *FieldRegistrationServiceTestSuite) TestRegisterField_Success() {
	ctx := context.Background()
	req := dto.RegisterFieldRequest{
		Module: "projects",
		Name:   "budget_code",
		Type:   domain.FieldTypeText,
		Label:  "Budget Code",
	}
	created := &domain.FieldDefinition{
		FieldID: uuid.NewString(),
		Module:  "projects",
		Name:    "budget_code",
		Label:   "Budget Code",
		Type:    domain.FieldTypeText,
	}

	suite.mockDefinitions.On("CreateField", ctx, dto.CreateFieldRequest{
		Module: "projects",
		Name:   "budget_code",
		Label:  "Budget Code",
		Type:   domain.FieldTypeText,
	}).Return(created, nil).Once()

	def, err := suite.service.RegisterField(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(created, def)

	suite.mockDefinitions.AssertExpectations(suite.T())
}

func (suite *FieldRegistrationServiceTestSuite) TestRegisterField_SecondCallIsDuplicate() {
	ctx := context.Background()
	req := dto.RegisterFieldRequest{
		Module: "projects",
		Name:   "budget_code",
		Type:   domain.FieldTypeText,
	}
	created := &domain.FieldDefinition{FieldID: uuid.NewString(), Module: "projects", Name: "budget_code"}

	suite.mockDefinitions.On("CreateField", ctx, mock.AnythingOfType("dto.CreateFieldRequest")).Return(created, nil).Once()
	suite.mockDefinitions.On("CreateField", ctx, mock.AnythingOfType("dto.CreateFieldRequest")).Return(nil, apperrors.ErrDuplicate).Once()

	first, err := suite.service.RegisterField(ctx, req)
	suite.Require().NoError(err)
	suite.NotNil(first)

	second, err := suite.service.RegisterField(ctx, req)
	suite.Require().Error(err)
	suite.Nil(second)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	suite.mockDefinitions.AssertExpectations(suite.T())
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_AppendsNewField() {
	ctx := context.Background()
	entity := &domain.Entity{
		Module:   "projects",
		EntityID: "p-1",
		CustomFields: domain.CustomFieldsMap{
			"region": {Value: "EMEA", Label: "Region", Order: 0},
		},
	}
	def := &domain.FieldDefinition{
		FieldID: uuid.NewString(),
		Module:  "projects",
		Name:    "budget_code",
		Label:   "Budget Code",
		Type:    domain.FieldTypeText,
	}

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "p-1").Return(entity, nil).Once()
	suite.mockDefinitions.On("GetFieldByName", ctx, "projects", "budget_code").Return(def, nil).Once()
	suite.mockTracker.On("GetOrder", ctx, "projects", "p-1").Return([]string{"region"}, nil).Once()
	suite.mockTracker.On("SetOrder", ctx, "projects", "p-1", []string{"region", "budget_code"}).Return(nil).Once()
	suite.mockEntityRepo.On("UpdateEntityFields", ctx, "projects", "p-1", mock.AnythingOfType("domain.CustomFieldsMap"), []string{"region", "budget_code"}).Return(nil).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "projects", "p-1", dto.AttachFieldValueRequest{
		FieldName: "budget_code",
		Value:     "BC-42",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal([]string{"region", "budget_code"}, updated.FieldOrder)

	// The attached field carries its value and the definition's label.
	attached, ok := updated.CustomFields["budget_code"]
	suite.Require().True(ok)
	suite.Equal("BC-42", attached.Value)
	suite.Equal("Budget Code", attached.Label)
	suite.Equal(1, attached.Order)

	// Resubmitting the existing entries keeps them alive through the merge.
	region, ok := updated.CustomFields["region"]
	suite.Require().True(ok)
	suite.Equal("EMEA", region.Value)
	suite.Equal(0, region.Order)

	suite.mockEntityRepo.AssertExpectations(suite.T())
	suite.mockTracker.AssertExpectations(suite.T())
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_InsertsAtPosition() {
	ctx := context.Background()
	entity := &domain.Entity{Module: "projects", EntityID: "p-1"}
	position := 1

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "p-1").Return(entity, nil).Once()
	suite.mockDefinitions.On("GetFieldByName", ctx, "projects", "priority").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTracker.On("GetOrder", ctx, "projects", "p-1").Return([]string{"a", "b", "c"}, nil).Once()
	suite.mockTracker.On("SetOrder", ctx, "projects", "p-1", []string{"a", "priority", "b", "c"}).Return(nil).Once()
	suite.mockEntityRepo.On("UpdateEntityFields", ctx, "projects", "p-1", mock.AnythingOfType("domain.CustomFieldsMap"), []string{"a", "priority", "b", "c"}).Return(nil).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "projects", "p-1", dto.AttachFieldValueRequest{
		FieldName: "priority",
		Value:     "high",
		Position:  &position,
	})

	suite.Require().NoError(err)
	suite.Equal([]string{"a", "priority", "b", "c"}, updated.FieldOrder)
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_OrphanedNamePassesUnchecked() {
	// No surviving definition: the value is attached without a type check.
	ctx := context.Background()
	entity := &domain.Entity{Module: "deals", EntityID: "d-1"}

	suite.mockEntityRepo.On("FindEntity", ctx, "deals", "d-1").Return(entity, nil).Once()
	suite.mockDefinitions.On("GetFieldByName", ctx, "deals", "legacy_score").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTracker.On("GetOrder", ctx, "deals", "d-1").Return([]string{}, nil).Once()
	suite.mockTracker.On("SetOrder", ctx, "deals", "d-1", []string{"legacy_score"}).Return(nil).Once()
	suite.mockEntityRepo.On("UpdateEntityFields", ctx, "deals", "d-1", mock.AnythingOfType("domain.CustomFieldsMap"), []string{"legacy_score"}).Return(nil).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "deals", "d-1", dto.AttachFieldValueRequest{
		FieldName: "legacy_score",
		Value:     map[string]any{"raw": 12},
	})

	suite.Require().NoError(err)
	suite.Contains(updated.CustomFields, "legacy_score")
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_RejectsBadNumber() {
	ctx := context.Background()
	entity := &domain.Entity{Module: "projects", EntityID: "p-1"}
	def := &domain.FieldDefinition{
		Module: "projects",
		Name:   "headcount",
		Type:   domain.FieldTypeNumber,
	}

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "p-1").Return(entity, nil).Once()
	suite.mockDefinitions.On("GetFieldByName", ctx, "projects", "headcount").Return(def, nil).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "projects", "p-1", dto.AttachFieldValueRequest{
		FieldName: "headcount",
		Value:     "a dozen",
	})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockTracker.AssertNotCalled(suite.T(), "SetOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntityRepo.AssertNotCalled(suite.T(), "UpdateEntityFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_RejectsBadDate() {
	ctx := context.Background()
	entity := &domain.Entity{Module: "projects", EntityID: "p-1"}
	def := &domain.FieldDefinition{
		Module: "projects",
		Name:   "kickoff",
		Type:   domain.FieldTypeDate,
	}

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "p-1").Return(entity, nil).Once()
	suite.mockDefinitions.On("GetFieldByName", ctx, "projects", "kickoff").Return(def, nil).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "projects", "p-1", dto.AttachFieldValueRequest{
		FieldName: "kickoff",
		Value:     "next tuesday",
	})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_EntityNotFound() {
	ctx := context.Background()

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "missing").Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "projects", "missing", dto.AttachFieldValueRequest{
		FieldName: "budget_code",
		Value:     "BC-42",
	})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FieldRegistrationServiceTestSuite) TestAttachFieldValue_ResubmitIsIdempotent() {
	// Re-attaching the same value converges to the same state: the order
	// insertion is a no-op for a name already present.
	ctx := context.Background()
	now := time.Now()
	entity := &domain.Entity{
		Module:   "projects",
		EntityID: "p-1",
		CustomFields: domain.CustomFieldsMap{
			"budget_code": {Value: "BC-42", Label: "Budget Code", Order: 0, LastModified: now},
		},
		FieldOrder: []string{"budget_code"},
	}

	suite.mockEntityRepo.On("FindEntity", ctx, "projects", "p-1").Return(entity, nil).Once()
	suite.mockDefinitions.On("GetFieldByName", ctx, "projects", "budget_code").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTracker.On("GetOrder", ctx, "projects", "p-1").Return([]string{"budget_code"}, nil).Once()
	suite.mockTracker.On("SetOrder", ctx, "projects", "p-1", []string{"budget_code"}).Return(nil).Once()
	suite.mockEntityRepo.On("UpdateEntityFields", ctx, "projects", "p-1", mock.AnythingOfType("domain.CustomFieldsMap"), []string{"budget_code"}).Return(nil).Once()

	updated, err := suite.service.AttachFieldValue(ctx, "projects", "p-1", dto.AttachFieldValueRequest{
		FieldName: "budget_code",
		Value:     "BC-42",
		Label:     "Budget Code",
	})

	suite.Require().NoError(err)
	suite.Equal([]string{"budget_code"}, updated.FieldOrder)
	suite.Equal("BC-42", updated.CustomFields["budget_code"].Value)
}

func (suite *FieldRegistrationServiceTestSuite) TestReorderFields_Success() {
	ctx := context.Background()
	newOrder := []string{"status", "budget_code", "region"}

	suite.mockTracker.On("SetOrder", ctx, "projects", "p-1", newOrder).Return(nil).Once()

	err := suite.service.ReorderFields(ctx, "projects", "p-1", newOrder)

	suite.Require().NoError(err)
	suite.mockTracker.AssertExpectations(suite.T())
}

func (suite *FieldRegistrationServiceTestSuite) TestReorderFields_PersistError() {
	ctx := context.Background()
	newOrder := []string{"status"}

	suite.mockTracker.On("SetOrder", ctx, "projects", "p-1", newOrder).Return(apperrors.ErrStorageUnavailable).Once()

	err := suite.service.ReorderFields(ctx, "projects", "p-1", newOrder)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
}

func (suite *FieldRegistrationServiceTestSuite) TestRemoveField_Success() {
	ctx := context.Background()
	fieldID := uuid.NewString()

	suite.mockDefinitions.On("DeleteField", ctx, fieldID).Return(nil).Once()

	err := suite.service.RemoveField(ctx, "projects", fieldID)

	suite.Require().NoError(err)
	suite.mockDefinitions.AssertExpectations(suite.T())
}

func (suite *FieldRegistrationServiceTestSuite) TestRemoveField_AlreadyRemoved() {
	ctx := context.Background()
	fieldID := uuid.NewString()

	suite.mockDefinitions.On("DeleteField", ctx, fieldID).Return(apperrors.ErrNotFound).Twice()

	err := suite.service.RemoveField(ctx, "projects", fieldID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// A repeat delete of the same id fails the same way and touches nothing else.
	err = suite.service.RemoveField(ctx, "projects", fieldID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockDefinitions.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestFieldRegistrationService(t *testing.T) {
	suite.Run(t, new(FieldRegistrationServiceTestSuite))
}
