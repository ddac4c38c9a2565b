package projection

import (
	"context"
	"sync"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// MemoryStore is the default in-process projection store. A single RWMutex
// is enough: the interaction model is one mutating call at a time, reads
// just need a consistent copy.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
	products  map[string]domain.Product
	expenses  map[string]domain.Expense
	invoices  map[string]domain.Invoice
}

// NewMemoryStore creates an empty in-memory projection store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[string]domain.Customer),
		products:  make(map[string]domain.Product),
		expenses:  make(map[string]domain.Expense),
		invoices:  make(map[string]domain.Invoice),
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) PutCustomer(_ context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *MemoryStore) DeleteCustomer(_ context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers, customerID)
	return nil
}

func (s *MemoryStore) PutProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ProductID] = product
	return nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, productID)
	return nil
}

func (s *MemoryStore) ApplyStockDecrements(_ context.Context, decrements map[string]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for productID, qty := range decrements {
		p, ok := s.products[productID]
		if !ok {
			continue
		}
		p.StockQuantity -= qty
		if p.StockQuantity < 0 {
			p.StockQuantity = 0
		}
		s.products[productID] = p
	}
	return nil
}

func (s *MemoryStore) PutExpense(_ context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *MemoryStore) DeleteExpense(_ context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expenses, expenseID)
	return nil
}

func (s *MemoryStore) PutInvoice(_ context.Context, invoice domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = make(map[string]domain.Customer, len(snap.Customers))
	for _, c := range snap.Customers {
		s.customers[c.CustomerID] = c
	}
	s.products = make(map[string]domain.Product, len(snap.Products))
	for _, p := range snap.Products {
		s.products[p.ProductID] = p
	}
	s.expenses = make(map[string]domain.Expense, len(snap.Expenses))
	for _, e := range snap.Expenses {
		s.expenses[e.ExpenseID] = e
	}
	s.invoices = make(map[string]domain.Invoice, len(snap.Invoices))
	for _, inv := range snap.Invoices {
		s.invoices[inv.InvoiceID] = inv
	}
	return nil
}

func (s *MemoryStore) Snapshot(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Customers: make([]domain.Customer, 0, len(s.customers)),
		Products:  make([]domain.Product, 0, len(s.products)),
		Expenses:  make([]domain.Expense, 0, len(s.expenses)),
		Invoices:  make([]domain.Invoice, 0, len(s.invoices)),
	}
	for _, c := range s.customers {
		snap.Customers = append(snap.Customers, c)
	}
	for _, p := range s.products {
		snap.Products = append(snap.Products, p)
	}
	for _, e := range s.expenses {
		snap.Expenses = append(snap.Expenses, e)
	}
	for _, inv := range s.invoices {
		snap.Invoices = append(snap.Invoices, inv)
	}

	sortSnapshot(&snap)
	return snap, nil
}
