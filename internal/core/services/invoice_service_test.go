package services_test

import (
	"context"
	"testing"
	"time"

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

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, stockDecrements map[string]int64) error {
	args := m.Called(ctx, invoice, stockDecrements)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, stockDecrements map[string]int64) error {
	args := m.Called(ctx, invoiceID, status, stockDecrements)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	projStore        *projection.MemoryStore
	service          portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.projStore = projection.NewMemoryStore()
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockProductRepo, suite.mockCustomerRepo, suite.projStore)
}

func (suite *InvoiceServiceTestSuite) expectCustomerExists(customerID string) {
	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, customerID).
		Return(&domain.Customer{CustomerID: customerID, Name: "Test Customer"}, nil).Once()
}

func (suite *InvoiceServiceTestSuite) expectProductsExist(products ...domain.Product) {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(byID, nil).Once()
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Draft_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: productID, Name: "Widget", Price: 2500, Quantity: 2},
		},
		TotalAmount: 5000,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	suite.expectCustomerExists(customerID)
	suite.expectProductsExist(domain.Product{ProductID: productID, Name: "Widget", Price: 2500, StockQuantity: 10})

	// A draft invoice must not carry stock decrements.
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.CustomerID == customerID && inv.Status == domain.StatusDraft && inv.TotalAmount == 5000
	}), map[string]int64(nil)).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.Equal(domain.StatusDraft, invoice.Status)
	suite.Equal(int64(5000), invoice.TotalAmount)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())

	snap, err := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(err)
	suite.Len(snap.Invoices, 1)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_PaidImmediately_DecrementsStock() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: productID, Name: "Widget", Price: 1000, Quantity: 3},
		},
		TotalAmount: 3000,
		Status:      domain.StatusPaid,
		DueDate:     "2024-04-30",
	}

	suite.expectCustomerExists(customerID)
	suite.expectProductsExist(domain.Product{ProductID: productID, Name: "Widget", Price: 1000, StockQuantity: 10})

	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), map[string]int64{productID: 3}).
		Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, invoice.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_TotalMismatch() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: productID, Name: "Widget", Price: 1000, Quantity: 2},
		},
		TotalAmount: 1999, // Line items sum to 2000.
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	suite.expectCustomerExists(customerID)
	suite.expectProductsExist(domain.Product{ProductID: productID, Name: "Widget", Price: 1000, StockQuantity: 10})

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_EmptyLineItems() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:  uuid.NewString(),
		LineItems:   []dto.LineItemRequest{},
		TotalAmount: 0,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownProduct() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: "no-such-product", Name: "Ghost", Price: 100, Quantity: 1},
		},
		TotalAmount: 100,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	suite.expectCustomerExists(customerID)
	suite.mockProductRepo.On("FindProductsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Product{}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: uuid.NewString(), Name: "Widget", Price: 100, Quantity: 1},
		},
		TotalAmount: 100,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_InvalidDueDate() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID: uuid.NewString(),
		LineItems: []dto.LineItemRequest{
			{ProductID: uuid.NewString(), Name: "Widget", Price: 100, Quantity: 1},
		},
		TotalAmount: 100,
		Status:      domain.StatusDraft,
		DueDate:     "30-04-2024",
	}

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateID() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()
	invoiceID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: productID, Name: "Widget", Price: 100, Quantity: 1},
		},
		TotalAmount: 100,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	suite.expectCustomerExists(customerID)
	suite.expectProductsExist(domain.Product{ProductID: productID, Name: "Widget", Price: 100, StockQuantity: 1})
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice"), map[string]int64(nil)).
		Return(apperrors.ErrDuplicate).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	// A failed write must leave the projection untouched.
	snap, snapErr := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(snapErr)
	suite.Empty(snap.Invoices)
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_SentToPaid_DecrementsStock() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	productID := uuid.NewString()
	stored := &domain.Invoice{
		InvoiceID:  invoiceID,
		CustomerID: uuid.NewString(),
		LineItems: []domain.LineItem{
			{ProductID: productID, Name: "Widget", Price: 1000, Quantity: 5},
		},
		TotalAmount: 5000,
		Status:      domain.StatusSent,
		CreatedAt:   time.Now().UTC(),
	}

	suite.Require().NoError(suite.projStore.PutProduct(ctx, domain.Product{ProductID: productID, Name: "Widget", StockQuantity: 3}))

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusPaid, map[string]int64{productID: 5}).
		Return(nil).Once()

	updated, err := suite.service.TransitionStatus(ctx, invoiceID, domain.StatusPaid)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())

	// Selling 5 with 3 in stock floors the cached quantity at zero.
	snap, snapErr := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(snapErr)
	suite.Require().Len(snap.Products, 1)
	suite.Equal(int64(0), snap.Products[0].StockQuantity)
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_PaidToPaid_NoRedecrement() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	stored := &domain.Invoice{
		InvoiceID: invoiceID,
		LineItems: []domain.LineItem{
			{ProductID: uuid.NewString(), Name: "Widget", Price: 1000, Quantity: 2},
		},
		TotalAmount: 2000,
		Status:      domain.StatusPaid,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusPaid, map[string]int64(nil)).
		Return(nil).Once()

	updated, err := suite.service.TransitionStatus(ctx, invoiceID, domain.StatusPaid)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_ReentryIntoPaid_DecrementsAgain() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	productID := uuid.NewString()
	// Invoice previously paid, moved back to draft for correction.
	stored := &domain.Invoice{
		InvoiceID: invoiceID,
		LineItems: []domain.LineItem{
			{ProductID: productID, Name: "Widget", Price: 1000, Quantity: 1},
		},
		TotalAmount: 1000,
		Status:      domain.StatusDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusPaid, map[string]int64{productID: 1}).
		Return(nil).Once()

	updated, err := suite.service.TransitionStatus(ctx, invoiceID, domain.StatusPaid)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, updated.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_LeavingPaid_NoRestock() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	productID := uuid.NewString()
	stored := &domain.Invoice{
		InvoiceID: invoiceID,
		LineItems: []domain.LineItem{
			{ProductID: productID, Name: "Widget", Price: 1000, Quantity: 4},
		},
		TotalAmount: 4000,
		Status:      domain.StatusPaid,
	}

	suite.Require().NoError(suite.projStore.PutProduct(ctx, domain.Product{ProductID: productID, Name: "Widget", StockQuantity: 6}))

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, invoiceID, domain.StatusSent, map[string]int64(nil)).
		Return(nil).Once()

	updated, err := suite.service.TransitionStatus(ctx, invoiceID, domain.StatusSent)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusSent, updated.Status)

	snap, snapErr := suite.projStore.Snapshot(ctx)
	suite.Require().NoError(snapErr)
	suite.Require().Len(snap.Products, 1)
	suite.Equal(int64(6), snap.Products[0].StockQuantity)
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_InvalidStatus() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	stored := &domain.Invoice{InvoiceID: invoiceID, Status: domain.StatusDraft}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(stored, nil).Once()

	updated, err := suite.service.TransitionStatus(ctx, invoiceID, domain.InvoiceStatus("cancelled"))

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus")
}

func (suite *InvoiceServiceTestSuite) TestTransitionStatus_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.TransitionStatus(ctx, invoiceID, domain.StatusPaid)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_Empty() {
	ctx := context.Background()
	var none []domain.Invoice

	suite.mockInvoiceRepo.On("ListInvoices", ctx).Return(none, nil).Once()

	invoices, err := suite.service.ListInvoices(ctx)

	suite.Require().NoError(err)
	suite.NotNil(invoices)
	suite.Empty(invoices)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockInvoiceRepo.On("ListInvoices", ctx).Return(nil, expectedErr).Once()

	invoices, err := suite.service.ListInvoices(ctx)

	suite.Require().Error(err)
	suite.Nil(invoices)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
