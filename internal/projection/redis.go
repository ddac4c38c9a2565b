package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

const (
	customersKey = "projection:customers"
	productsKey  = "projection:products"
	expensesKey  = "projection:expenses"
	invoicesKey  = "projection:invoices"
)

// RedisStore keeps the projection in Redis hashes (one hash per collection,
// field = entity id, value = JSON) so multiple backend instances share the
// same last-known view. The single-writer interaction model means hash
// updates do not need CAS loops; stock decrements run through a small Lua-free
// read-modify-write which is safe under that model.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client as a projection store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) putJSON(ctx context.Context, key, field string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal projection entry %s/%s: %w", key, field, err)
	}
	if err := s.client.HSet(ctx, key, field, raw).Err(); err != nil {
		return fmt.Errorf("failed to store projection entry %s/%s: %w", key, field, err)
	}
	return nil
}

func (s *RedisStore) PutCustomer(ctx context.Context, customer domain.Customer) error {
	return s.putJSON(ctx, customersKey, customer.CustomerID, customer)
}

func (s *RedisStore) DeleteCustomer(ctx context.Context, customerID string) error {
	return s.client.HDel(ctx, customersKey, customerID).Err()
}

func (s *RedisStore) PutProduct(ctx context.Context, product domain.Product) error {
	return s.putJSON(ctx, productsKey, product.ProductID, product)
}

func (s *RedisStore) DeleteProduct(ctx context.Context, productID string) error {
	return s.client.HDel(ctx, productsKey, productID).Err()
}

func (s *RedisStore) ApplyStockDecrements(ctx context.Context, decrements map[string]int64) error {
	for productID, qty := range decrements {
		raw, err := s.client.HGet(ctx, productsKey, productID).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load cached product %s: %w", productID, err)
		}
		var p domain.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return fmt.Errorf("failed to decode cached product %s: %w", productID, err)
		}
		p.StockQuantity -= qty
		if p.StockQuantity < 0 {
			p.StockQuantity = 0
		}
		if err := s.putJSON(ctx, productsKey, productID, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *RedisStore) PutExpense(ctx context.Context, expense domain.Expense) error {
	return s.putJSON(ctx, expensesKey, expense.ExpenseID, expense)
}

func (s *RedisStore) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.client.HDel(ctx, expensesKey, expenseID).Err()
}

func (s *RedisStore) PutInvoice(ctx context.Context, invoice domain.Invoice) error {
	return s.putJSON(ctx, invoicesKey, invoice.InvoiceID, invoice)
}

func (s *RedisStore) ReplaceAll(ctx context.Context, snap Snapshot) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, customersKey, productsKey, expensesKey, invoicesKey)

	for _, c := range snap.Customers {
		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal customer %s: %w", c.CustomerID, err)
		}
		pipe.HSet(ctx, customersKey, c.CustomerID, raw)
	}
	for _, p := range snap.Products {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal product %s: %w", p.ProductID, err)
		}
		pipe.HSet(ctx, productsKey, p.ProductID, raw)
	}
	for _, e := range snap.Expenses {
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal expense %s: %w", e.ExpenseID, err)
		}
		pipe.HSet(ctx, expensesKey, e.ExpenseID, raw)
	}
	for _, inv := range snap.Invoices {
		raw, err := json.Marshal(inv)
		if err != nil {
			return fmt.Errorf("failed to marshal invoice %s: %w", inv.InvoiceID, err)
		}
		pipe.HSet(ctx, invoicesKey, inv.InvoiceID, raw)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace projection: %w", err)
	}
	return nil
}

func (s *RedisStore) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rawCustomers, err := s.client.HGetAll(ctx, customersKey).Result()
	if err != nil {
		return snap, fmt.Errorf("failed to load cached customers: %w", err)
	}
	snap.Customers = make([]domain.Customer, 0, len(rawCustomers))
	for id, raw := range rawCustomers {
		var c domain.Customer
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return snap, fmt.Errorf("failed to decode cached customer %s: %w", id, err)
		}
		snap.Customers = append(snap.Customers, c)
	}

	rawProducts, err := s.client.HGetAll(ctx, productsKey).Result()
	if err != nil {
		return snap, fmt.Errorf("failed to load cached products: %w", err)
	}
	snap.Products = make([]domain.Product, 0, len(rawProducts))
	for id, raw := range rawProducts {
		var p domain.Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return snap, fmt.Errorf("failed to decode cached product %s: %w", id, err)
		}
		snap.Products = append(snap.Products, p)
	}

	rawExpenses, err := s.client.HGetAll(ctx, expensesKey).Result()
	if err != nil {
		return snap, fmt.Errorf("failed to load cached expenses: %w", err)
	}
	snap.Expenses = make([]domain.Expense, 0, len(rawExpenses))
	for id, raw := range rawExpenses {
		var e domain.Expense
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return snap, fmt.Errorf("failed to decode cached expense %s: %w", id, err)
		}
		snap.Expenses = append(snap.Expenses, e)
	}

	rawInvoices, err := s.client.HGetAll(ctx, invoicesKey).Result()
	if err != nil {
		return snap, fmt.Errorf("failed to load cached invoices: %w", err)
	}
	snap.Invoices = make([]domain.Invoice, 0, len(rawInvoices))
	for id, raw := range rawInvoices {
		var inv domain.Invoice
		if err := json.Unmarshal([]byte(raw), &inv); err != nil {
			return snap, fmt.Errorf("failed to decode cached invoice %s: %w", id, err)
		}
		snap.Invoices = append(snap.Invoices, inv)
	}

	sortSnapshot(&snap)
	return snap, nil
}

