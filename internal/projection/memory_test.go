package projection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/projection"
)

func TestMemoryStore_PutAndSnapshotOrdering(t *testing.T) {
	ctx := context.Background()
	store := projection.NewMemoryStore()

	require.NoError(t, store.PutCustomer(ctx, domain.Customer{CustomerID: "c2", Name: "Beta"}))
	require.NoError(t, store.PutCustomer(ctx, domain.Customer{CustomerID: "c1", Name: "Alpha"}))
	require.NoError(t, store.PutProduct(ctx, domain.Product{ProductID: "p1", StockQuantity: 3}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	// Snapshots are ordered by entity ID for determinism.
	require.Len(t, snap.Customers, 2)
	assert.Equal(t, "c1", snap.Customers[0].CustomerID)
	assert.Equal(t, "c2", snap.Customers[1].CustomerID)
	require.Len(t, snap.Products, 1)
}

func TestMemoryStore_PutOverwritesByID(t *testing.T) {
	ctx := context.Background()
	store := projection.NewMemoryStore()

	require.NoError(t, store.PutProduct(ctx, domain.Product{ProductID: "p1", Name: "Old", Price: 100}))
	require.NoError(t, store.PutProduct(ctx, domain.Product{ProductID: "p1", Name: "New", Price: 200}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "New", snap.Products[0].Name)
	assert.Equal(t, int64(200), snap.Products[0].Price)
}

func TestMemoryStore_ApplyStockDecrements_FloorsAtZero(t *testing.T) {
	ctx := context.Background()
	store := projection.NewMemoryStore()

	require.NoError(t, store.PutProduct(ctx, domain.Product{ProductID: "p1", StockQuantity: 3}))
	require.NoError(t, store.PutProduct(ctx, domain.Product{ProductID: "p2", StockQuantity: 10}))

	// p1 sells more than its stock; p3 does not exist.
	err := store.ApplyStockDecrements(ctx, map[string]int64{"p1": 5, "p2": 4, "p3": 1})
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Products, 2)
	assert.Equal(t, int64(0), snap.Products[0].StockQuantity)
	assert.Equal(t, int64(6), snap.Products[1].StockQuantity)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := projection.NewMemoryStore()

	require.NoError(t, store.PutExpense(ctx, domain.Expense{ExpenseID: "e1", Amount: 100}))
	require.NoError(t, store.DeleteExpense(ctx, "e1"))
	// Deleting a missing entity is a no-op.
	require.NoError(t, store.DeleteExpense(ctx, "e1"))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Expenses)
}

func TestMemoryStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := projection.NewMemoryStore()

	require.NoError(t, store.PutCustomer(ctx, domain.Customer{CustomerID: "stale"}))

	err := store.ReplaceAll(ctx, projection.Snapshot{
		Customers: []domain.Customer{{CustomerID: "c1"}},
		Products:  []domain.Product{{ProductID: "p1"}},
		Invoices:  []domain.Invoice{{InvoiceID: "i1"}},
	})
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "c1", snap.Customers[0].CustomerID)
	require.Len(t, snap.Products, 1)
	require.Len(t, snap.Invoices, 1)
	assert.Empty(t, snap.Expenses)
}

func TestMemoryStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	store := projection.NewMemoryStore()

	require.NoError(t, store.PutProduct(ctx, domain.Product{ProductID: "p1", StockQuantity: 5}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	snap.Products[0].StockQuantity = 999

	fresh, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), fresh.Products[0].StockQuantity)
}
