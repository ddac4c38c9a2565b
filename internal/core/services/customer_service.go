package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/projection"
)

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
	projection   projection.Store
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo portsrepo.CustomerRepository, proj projection.Store) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: repo, projection: proj}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	customerID := req.CustomerID
	if customerID == "" {
		customerID = uuid.NewString()
	}

	customer := domain.Customer{
		CustomerID: customerID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}

	s.updateProjection(ctx, customer)
	s.LogInfo(ctx, "Customer created successfully", slog.String("customer_id", customerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer by ID", slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Identity fields (id, createdAt) never change; everything else is a
	// full replace.
	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, err
	}

	s.updateProjection(ctx, *customer)
	s.LogInfo(ctx, "Customer updated successfully", slog.String("customer_id", customerID))
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	// No cascade: the customer's invoices stay untouched.
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		}
		return err
	}

	if err := s.projection.DeleteCustomer(ctx, customerID); err != nil {
		s.LogWarn(ctx, "Failed to remove customer from projection", slog.String("customer_id", customerID), slog.String("error", err.Error()))
	}
	s.LogInfo(ctx, "Customer deleted successfully", slog.String("customer_id", customerID))
	return nil
}

// updateProjection mirrors a confirmed write onto the local cache. A cache
// failure is logged, not surfaced: the store write already succeeded.
func (s *customerService) updateProjection(ctx context.Context, customer domain.Customer) {
	if err := s.projection.PutCustomer(ctx, customer); err != nil {
		s.LogWarn(ctx, "Failed to update customer projection", slog.String("customer_id", customer.CustomerID), slog.String("error", err.Error()))
	}
}
