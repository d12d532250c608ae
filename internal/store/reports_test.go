package store

import (
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomsim/internal/gen"
	"ecomsim/internal/models"
)

func TestRevenuePerProductEndToEnd(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	// Hand-sum quantity * unit_price per product from the generated items.
	expected := make(map[int64]decimal.Decimal)
	for _, it := range ds.OrderItems {
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		expected[it.ProductID] = expected[it.ProductID].Add(line)
	}

	rows, err := s.RevenuePerProduct()
	require.NoError(t, err)
	require.Len(t, rows, len(expected), "one row per product with at least one order item")

	for _, r := range rows {
		want, ok := expected[r.ProductID]
		require.True(t, ok, "report includes product %d with no order items", r.ProductID)
		assert.Equal(t, want.StringFixed(2), r.Revenue.StringFixed(2), "product %d revenue", r.ProductID)
	}

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Revenue.GreaterThanOrEqual(rows[i].Revenue), "revenue not descending at row %d", i)
	}
}

func TestTotalSalesMatchesLineTotals(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	want := decimal.Zero
	for _, it := range ds.OrderItems {
		want = want.Add(it.LineTotal)
	}

	got, err := s.TotalSales()
	require.NoError(t, err)
	assert.Equal(t, want.StringFixed(2), got.StringFixed(2))
}

func TestTopSellingProductsOrdering(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	rows, err := s.TopSellingProducts(5)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.LessOrEqual(t, len(rows), 5)

	units := make(map[int64]int64)
	for _, it := range ds.OrderItems {
		units[it.ProductID] += int64(it.Quantity)
	}
	for i, r := range rows {
		assert.Equal(t, units[r.ProductID], r.UnitsSold, "product %d units", r.ProductID)
		if i > 0 {
			prev := rows[i-1]
			assert.True(t, prev.UnitsSold > r.UnitsSold ||
				(prev.UnitsSold == r.UnitsSold && prev.Revenue.GreaterThanOrEqual(r.Revenue)),
				"rows not ordered by units then revenue at %d", i)
		}
	}
}

func TestTopCustomersLimit(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	// Spend per user via their orders' items.
	orderUser := make(map[int64]int64)
	for _, o := range ds.Orders {
		orderUser[o.ID] = o.UserID
	}
	spend := make(map[int64]decimal.Decimal)
	for _, it := range ds.OrderItems {
		uid := orderUser[it.OrderID]
		spend[uid] = spend[uid].Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	rows, err := s.TopCustomers(10)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rows), 10)

	for i, r := range rows {
		assert.Equal(t, spend[r.UserID].StringFixed(2), r.TotalSpend.StringFixed(2), "user %d spend", r.UserID)
		if i > 0 {
			assert.True(t, rows[i-1].TotalSpend.GreaterThanOrEqual(r.TotalSpend))
		}
	}
}

func TestProductRatings(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	counts := make(map[int64]int64)
	sums := make(map[int64]int64)
	for _, r := range ds.Reviews {
		counts[r.ProductID]++
		sums[r.ProductID] += int64(r.Rating)
	}

	rows, err := s.ProductRatings()
	require.NoError(t, err)
	require.Len(t, rows, len(counts), "only products with at least one review")

	for _, r := range rows {
		require.Positive(t, r.ReviewCount)
		assert.Equal(t, counts[r.ProductID], r.ReviewCount)
		assert.InDelta(t, float64(sums[r.ProductID])/float64(counts[r.ProductID]), r.AvgRating, 1e-9)
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		assert.True(t, prev.AvgRating > cur.AvgRating ||
			(prev.AvgRating == cur.AvgRating && prev.ReviewCount >= cur.ReviewCount),
			"rows not ordered by rating then count at %d", i)
	}
}

func TestListingsAreOrdered(t *testing.T) {
	s := newTestStore(t)
	ds := fixedDataset(t)
	require.NoError(t, s.Load(ds))

	customers, err := s.Customers()
	require.NoError(t, err)
	require.Len(t, customers, len(ds.Users))
	assert.True(t, sort.SliceIsSorted(customers, func(i, j int) bool { return customers[i].UserID < customers[j].UserID }))

	products, err := s.Products()
	require.NoError(t, err)
	require.Len(t, products, len(ds.Products))
	assert.True(t, sort.SliceIsSorted(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID }))

	orders, err := s.Orders()
	require.NoError(t, err)
	require.Len(t, orders, len(ds.Orders))
	assert.True(t, sort.SliceIsSorted(orders, func(i, j int) bool { return orders[i].OrderDate < orders[j].OrderDate }))
}

func TestZeroItemOrderExcludedFromJoins(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	price := decimal.RequireFromString("10.00")
	ds := &models.Dataset{
		Users: []models.User{
			{ID: 1, FirstName: "Avery", LastName: "Smith", Email: "avery.smith1@example.com", SignupDate: now, Country: "Canada"},
		},
		Products: []models.Product{
			{ID: 1, Name: "Eco Lamp", Category: "Home", Price: price, Stock: 30},
		},
		Orders: []models.Order{
			{ID: 1, UserID: 1, OrderDate: now, Status: "shipped", ShippingAddress: "12 Oak St"},
			{ID: 2, UserID: 1, OrderDate: now.Add(time.Hour), Status: "pending", ShippingAddress: "34 Pine St"},
		},
		OrderItems: []models.OrderItem{
			{ID: 1, OrderID: 1, ProductID: 1, Quantity: 2, UnitPrice: price, LineTotal: decimal.RequireFromString("20.00")},
		},
	}
	gen.ApplyOrderTotals(ds.Orders, ds.OrderItems)
	require.NoError(t, s.Load(ds))

	orders, err := s.Orders()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	var empty OrderRow
	for _, o := range orders {
		if o.OrderID == 2 {
			empty = o
		}
	}
	assert.Equal(t, "0.00", empty.TotalAmount.StringFixed(2))

	lines, err := s.OrderLineItems(10)
	require.NoError(t, err)
	for _, l := range lines {
		assert.NotEqual(t, int64(2), l.OrderID, "zero-item order must not appear in joined reports")
	}

	spend, err := s.TopCustomers(10)
	require.NoError(t, err)
	require.Len(t, spend, 1)
	assert.Equal(t, "20.00", spend[0].TotalSpend.StringFixed(2))
}
