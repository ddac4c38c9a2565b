package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/projection"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	projection  projection.Store
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo portsrepo.ExpenseRepository, proj projection.Store) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: repo, projection: proj}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	date, err := utils.DateToTime(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	expenseID := req.ExpenseID
	if expenseID == "" {
		expenseID = uuid.NewString()
	}

	expense := domain.Expense{
		ExpenseID:   expenseID,
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	s.updateProjection(ctx, expense)
	s.LogInfo(ctx, "Expense created successfully", slog.String("expense_id", expenseID), slog.String("category", expense.Category))
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense by ID", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	date, err := utils.DateToTime(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	expense.Date = date
	expense.Category = req.Category
	expense.Description = req.Description
	expense.Amount = req.Amount

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.updateProjection(ctx, *expense)
	s.LogInfo(ctx, "Expense updated successfully", slog.String("expense_id", expenseID))
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		}
		return err
	}

	if err := s.projection.DeleteExpense(ctx, expenseID); err != nil {
		s.LogWarn(ctx, "Failed to remove expense from projection", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
	}
	s.LogInfo(ctx, "Expense deleted successfully", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) updateProjection(ctx context.Context, expense domain.Expense) {
	if err := s.projection.PutExpense(ctx, expense); err != nil {
		s.LogWarn(ctx, "Failed to update expense projection", slog.String("expense_id", expense.ExpenseID), slog.String("error", err.Error()))
	}
}
