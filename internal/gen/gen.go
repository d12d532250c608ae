// Package gen produces seeded synthetic e-commerce collections. Generation is
// staged in dependency order: users and products first, then orders, then
// order items and reviews. Every foreign key is sampled from an
// already-generated collection, so the output is referentially closed by
// construction. All randomness flows through an explicit *rand.Rand, which
// makes a run a pure function of its Params.
package gen

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ecomsim/internal/models"
)

// Params controls one generation run. Now bounds the random date ranges; two
// runs with equal Params produce deep-equal datasets.
type Params struct {
	Users      int
	Products   int
	Orders     int
	OrderItems int
	Reviews    int
	Seed       int64
	Now        time.Time
}

// DefaultParams returns the standard dataset sizes with the current wall clock
// as the upper date bound.
func DefaultParams() Params {
	return Params{
		Users:      50,
		Products:   40,
		Orders:     100,
		OrderItems: 200,
		Reviews:    80,
		Seed:       2025,
		Now:        time.Now().Truncate(time.Second),
	}
}

var (
	signupEpoch = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	orderEpoch  = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Validate rejects parameter combinations that cannot be generated: negative
// counts, dependent entities with an empty pool to sample from, and an upper
// date bound preceding the fixed range starts.
func (p Params) Validate() error {
	switch {
	case p.Users < 0 || p.Products < 0 || p.Orders < 0 || p.OrderItems < 0 || p.Reviews < 0:
		return errors.New("entity counts must be non-negative")
	case p.Orders > 0 && p.Users == 0:
		return errors.New("orders require at least one user")
	case p.OrderItems > 0 && (p.Orders == 0 || p.Products == 0):
		return errors.New("order items require at least one order and one product")
	case p.Reviews > 0 && (p.Users == 0 || p.Products == 0):
		return errors.New("reviews require at least one user and one product")
	case p.Now.Before(orderEpoch):
		return fmt.Errorf("now must not be before %s", orderEpoch.Format("2006-01-02"))
	}
	return nil
}

// Generate validates the parameters, then runs all stages and the order-total
// backfill.
func Generate(p Params) (*models.Dataset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(p.Seed))

	users := Users(rng, p.Users, p.Now)
	products := Products(rng, p.Products)
	orders := Orders(rng, p.Orders, p.Now, users)
	items := OrderItems(rng, p.OrderItems, orders, products)
	ApplyOrderTotals(orders, items)
	reviews := Reviews(rng, p.Reviews, users, products)

	return &models.Dataset{
		Users:      users,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
		Reviews:    reviews,
	}, nil
}

func Users(rng *rand.Rand, n int, now time.Time) []models.User {
	users := make([]models.User, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		loc := cities[rng.Intn(len(cities))]
		users = append(users, models.User{
			ID:         id,
			FirstName:  first,
			LastName:   last,
			Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), id),
			SignupDate: randomDate(rng, signupEpoch, now),
			Country:    loc.Country,
		})
	}
	return users
}

func Products(rng *rand.Rand, n int) []models.Product {
	products := make([]models.Product, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		products = append(products, models.Product{
			ID:       id,
			Name:     productAdjectives[rng.Intn(len(productAdjectives))] + " " + productNouns[rng.Intn(len(productNouns))],
			Category: productCategories[rng.Intn(len(productCategories))],
			Price:    decimal.NewFromFloat(10 + rng.Float64()*590).Round(2),
			Stock:    25 + rng.Intn(476),
		})
	}
	return products
}

// Orders samples an owning user per order. Totals stay zero until
// ApplyOrderTotals runs.
func Orders(rng *rand.Rand, n int, now time.Time, users []models.User) []models.Order {
	orders := make([]models.Order, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		orders = append(orders, models.Order{
			ID:              id,
			UserID:          users[rng.Intn(len(users))].ID,
			OrderDate:       randomDate(rng, orderEpoch, now),
			Status:          orderStatuses[rng.Intn(len(orderStatuses))],
			ShippingAddress: fmt.Sprintf("%d %s St", 100+rng.Intn(9900), streetNames[rng.Intn(len(streetNames))]),
			TotalAmount:     decimal.Zero,
		})
	}
	return orders
}

// OrderItems samples one order and one product per item independently, so an
// order can legitimately end up with no items. The unit price is copied from
// the product at this point and never re-read.
func OrderItems(rng *rand.Rand, n int, orders []models.Order, products []models.Product) []models.OrderItem {
	items := make([]models.OrderItem, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		product := products[rng.Intn(len(products))]
		quantity := 1 + rng.Intn(5)
		items = append(items, models.OrderItem{
			ID:        id,
			OrderID:   orders[rng.Intn(len(orders))].ID,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			LineTotal: product.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		})
	}
	return items
}

func Reviews(rng *rand.Rand, n int, users []models.User, products []models.Product) []models.Review {
	reviews := make([]models.Review, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		reviews = append(reviews, models.Review{
			ID:        id,
			UserID:    users[rng.Intn(len(users))].ID,
			ProductID: products[rng.Intn(len(products))].ID,
			Rating:    1 + rng.Intn(5),
			Comment:   reviewComments[rng.Intn(len(reviewComments))],
		})
	}
	return reviews
}

// ApplyOrderTotals recomputes every order's total_amount from its items' line
// totals. Orders with no items keep a 0.00 total. The computation starts from
// zero each time, so rerunning it over the same items is idempotent.
func ApplyOrderTotals(orders []models.Order, items []models.OrderItem) {
	totals := make(map[int64]decimal.Decimal, len(orders))
	for _, item := range items {
		totals[item.OrderID] = totals[item.OrderID].Add(item.LineTotal)
	}
	for i := range orders {
		orders[i].TotalAmount = totals[orders[i].ID].Round(2)
	}
}

func randomDate(rng *rand.Rand, start, end time.Time) time.Time {
	delta := int64(end.Sub(start) / time.Second)
	return start.Add(time.Duration(rng.Int63n(delta+1)) * time.Second)
}
