package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) TransitionStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockInvoiceService
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidators()
	suite.router = gin.New()
	suite.mockService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1")
	registerInvoiceRoutes(v1, suite.mockService)
}

func (suite *InvoiceHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *InvoiceHandlerTestSuite) putJSON(url string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_Success() {
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		LineItems: []dto.LineItemRequest{
			{ProductID: "p1", Name: "Widget", Price: 2500, Quantity: 2},
		},
		TotalAmount: 5000,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}
	created := &domain.Invoice{
		InvoiceID:   invoiceID,
		CustomerID:  customerID,
		LineItems:   []domain.LineItem{{ProductID: "p1", Name: "Widget", Price: 2500, Quantity: 2}},
		TotalAmount: 5000,
		Status:      domain.StatusDraft,
		CreatedAt:   time.Now().UTC(),
		DueDate:     time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
	}

	suite.mockService.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(r dto.CreateInvoiceRequest) bool {
		return r.CustomerID == customerID && r.TotalAmount == 5000
	})).Return(created, nil).Once()

	w := suite.postJSON("/api/v1/invoices", req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(invoiceID, resp.InvoiceID)
	suite.Equal("50.00", resp.TotalAmountDisplay)
	suite.Equal("2024-04-30", resp.DueDateDisplay)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_RejectsUnknownStatus() {
	body := map[string]any{
		"customerID": uuid.NewString(),
		"lineItems": []map[string]any{
			{"productID": "p1", "name": "Widget", "price": 100, "quantity": 1},
		},
		"totalAmount": 100,
		"status":      "cancelled",
		"dueDate":     "2024-04-30",
	}

	w := suite.postJSON("/api/v1/invoices", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_RejectsMissingLineItems() {
	body := map[string]any{
		"customerID":  uuid.NewString(),
		"lineItems":   []map[string]any{},
		"totalAmount": 0,
		"status":      "draft",
		"dueDate":     "2024-04-30",
	}

	w := suite.postJSON("/api/v1/invoices", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateInvoice")
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_DuplicateMapsToConflict() {
	req := dto.CreateInvoiceRequest{
		InvoiceID:  uuid.NewString(),
		CustomerID: uuid.NewString(),
		LineItems: []dto.LineItemRequest{
			{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 1},
		},
		TotalAmount: 100,
		Status:      domain.StatusDraft,
		DueDate:     "2024-04-30",
	}

	suite.mockService.On("CreateInvoice", mock.Anything, mock.AnythingOfType("dto.CreateInvoiceRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/v1/invoices", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestGetInvoice_NotFound() {
	invoiceID := uuid.NewString()

	suite.mockService.On("GetInvoiceByID", mock.Anything, invoiceID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestUpdateStatus_Success() {
	invoiceID := uuid.NewString()
	updated := &domain.Invoice{
		InvoiceID:   invoiceID,
		Status:      domain.StatusPaid,
		TotalAmount: 100,
		LineItems:   []domain.LineItem{{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 1}},
	}

	suite.mockService.On("TransitionStatus", mock.Anything, invoiceID, domain.StatusPaid).
		Return(updated, nil).Once()

	w := suite.putJSON("/api/v1/invoices/"+invoiceID+"/status", dto.UpdateInvoiceStatusRequest{Status: domain.StatusPaid})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPaid, resp.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestUpdateStatus_ValidationErrorMapsToBadRequest() {
	invoiceID := uuid.NewString()

	suite.mockService.On("TransitionStatus", mock.Anything, invoiceID, domain.StatusDraft).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.putJSON("/api/v1/invoices/"+invoiceID+"/status", dto.UpdateInvoiceStatusRequest{Status: domain.StatusDraft})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListInvoices_Success() {
	invoices := []domain.Invoice{
		{InvoiceID: "i1", Status: domain.StatusDraft, LineItems: []domain.LineItem{}},
		{InvoiceID: "i2", Status: domain.StatusPaid, LineItems: []domain.LineItem{}},
	}

	suite.mockService.On("ListInvoices", mock.Anything).Return(invoices, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.InvoiceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
}

// --- Run Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
