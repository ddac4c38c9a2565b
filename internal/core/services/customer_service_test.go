package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/core/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/projection"
)

// --- Test Suite ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockCustomerRepository
	projStore *projection.MemoryStore
	service   portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.projStore = projection.NewMemoryStore()
	suite.service = services.NewCustomerService(suite.mockRepo, suite.projStore)
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer_MintsIDWhenAbsent() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		Name:  "Acme Traders",
		Email: "owner@acme.example",
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID != "" && c.Name == req.Name && c.Email == req.Email && !c.CreatedAt.IsZero()
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.NotEmpty(customer.CustomerID)
	suite.mockRepo.AssertExpectations(suite.T())

	snap, snapErr := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(snapErr)
	suite.Len(snap.Customers, 1)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_KeepsClientID() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateCustomerRequest{
		CustomerID: clientID,
		Name:       "Acme Traders",
		Email:      "owner@acme.example",
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == clientID
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(clientID, customer.CustomerID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerID: uuid.NewString(),
		Name:       "Acme Traders",
		Email:      "owner@acme.example",
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).
		Return(apperrors.ErrDuplicate).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	snap, snapErr := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(snapErr)
	suite.Empty(snap.Customers)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_FullReplace() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID: customerID,
		Name:       "Old Name",
		Email:      "old@acme.example",
		Phone:      "111",
	}
	req := dto.UpdateCustomerRequest{
		Name:  "New Name",
		Email: "new@acme.example",
		// Phone omitted: full replace clears it.
	}

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == customerID && c.Name == "New Name" && c.Phone == ""
	})).Return(nil).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, req)

	suite.Require().NoError(err)
	suite.Equal("New Name", customer.Name)
	suite.Equal("", customer.Phone)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{Name: "X", Email: "x@y.z"})

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCustomer")
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_RemovesFromProjection() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.Require().NoError(suite.projStore.PutCustomer(ctx, domain.Customer{CustomerID: customerID, Name: "Acme"}))

	suite.mockRepo.On("DeleteCustomer", ctx, customerID).Return(nil).Once()

	err := suite.service.DeleteCustomer(ctx, customerID)

	suite.Require().NoError(err)
	snap, snapErr := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(snapErr)
	suite.Empty(snap.Customers)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_Empty() {
	ctx := context.Background()
	var none []domain.Customer

	suite.mockRepo.On("ListCustomers", ctx).Return(none, nil).Once()

	customers, err := suite.service.ListCustomers(ctx)

	suite.Require().NoError(err)
	suite.NotNil(customers)
	suite.Empty(customers)
}

func (suite *CustomerServiceTestSuite) TestListCustomers_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListCustomers", ctx).Return(nil, expectedErr).Once()

	customers, err := suite.service.ListCustomers(ctx)

	suite.Require().Error(err)
	suite.Nil(customers)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
