package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomsim/internal/gen"
	"ecomsim/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

func fixedDataset(t *testing.T) *models.Dataset {
	t.Helper()
	ds, err := gen.Generate(gen.Params{
		Users: 5, Products: 3, Orders: 10, OrderItems: 20, Reviews: 5,
		Seed: 42, Now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return ds
}

func rowCount(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestLoadRowCounts(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)

	require.NoError(t, s.Load(ds))

	assert.Equal(t, len(ds.Users), rowCount(t, s, "users"))
	assert.Equal(t, len(ds.Products), rowCount(t, s, "products"))
	assert.Equal(t, len(ds.Orders), rowCount(t, s, "orders"))
	assert.Equal(t, len(ds.OrderItems), rowCount(t, s, "order_items"))
	assert.Equal(t, len(ds.Reviews), rowCount(t, s, "reviews"))
}

func TestLoadRollsBackOnDuplicateID(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := &models.Dataset{
		Users: []models.User{
			{ID: 1, FirstName: "Avery", LastName: "Smith", Email: "avery.smith1@example.com", SignupDate: now, Country: "Canada"},
			{ID: 1, FirstName: "Kai", LastName: "Lee", Email: "kai.lee2@example.com", SignupDate: now, Country: "France"},
		},
		Products: []models.Product{
			{ID: 1, Name: "Eco Lamp", Category: "Home", Price: decimal.RequireFromString("25.50"), Stock: 30},
		},
	}

	err := s.Load(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")

	// Nothing from the batch may survive the rollback.
	assert.Equal(t, 0, rowCount(t, s, "users"))
	assert.Equal(t, 0, rowCount(t, s, "products"))
}

func TestDuplicateEmailSurfacesEngineError(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := &models.Dataset{
		Users: []models.User{
			{ID: 1, FirstName: "Avery", LastName: "Smith", Email: "dup@example.com", SignupDate: now, Country: "Canada"},
			{ID: 2, FirstName: "Kai", LastName: "Lee", Email: "dup@example.com", SignupDate: now, Country: "France"},
		},
	}

	err := s.Load(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed: users.email")
}

func TestInsertingItemsBeforeOrdersFails(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.DB.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	items := []models.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00"), LineTotal: decimal.RequireFromString("10.00")},
	}
	err = insertOrderItems(tx, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
}

func TestDanglingForeignKeyAborts(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	ds := &models.Dataset{
		Users: []models.User{
			{ID: 1, FirstName: "Avery", LastName: "Smith", Email: "avery.smith1@example.com", SignupDate: now, Country: "Canada"},
		},
		Orders: []models.Order{
			{ID: 1, UserID: 99, OrderDate: now, Status: "pending", ShippingAddress: "12 Oak St", TotalAmount: decimal.Zero},
		},
	}

	err := s.Load(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY constraint failed")
	assert.Equal(t, 0, rowCount(t, s, "users"))
	assert.Equal(t, 0, rowCount(t, s, "orders"))
}

func TestLoadIdempotentUnderFreshSchema(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)

	require.NoError(t, s.Load(ds))
	firstUsers := rowCount(t, s, "users")
	firstItems := rowCount(t, s, "order_items")
	firstSales, err := s.TotalSales()
	require.NoError(t, err)

	require.NoError(t, s.InitSchema())
	require.NoError(t, s.Load(ds))

	assert.Equal(t, firstUsers, rowCount(t, s, "users"))
	assert.Equal(t, firstItems, rowCount(t, s, "order_items"))
	secondSales, err := s.TotalSales()
	require.NoError(t, err)
	assert.Equal(t, firstSales.StringFixed(2), secondSales.StringFixed(2))
}

func TestCascadingDeleteOfUser(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	_, err := s.DB.Exec("DELETE FROM users WHERE user_id = ?", ds.Orders[0].UserID)
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE user_id = ?", ds.Orders[0].UserID).Scan(&n))
	assert.Equal(t, 0, n, "orders should cascade away with their user")

	// Products never cascade.
	assert.Equal(t, len(ds.Products), rowCount(t, s, "products"))
}
