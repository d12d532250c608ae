package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID         int64     `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	SignupDate time.Time `json:"signup_date"`
	Country    string    `json:"country"`
}

type Product struct {
	ID       int64           `json:"product_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"` // rounded to 2 decimal places
	Stock    int             `json:"stock"`
}

type Order struct {
	ID              int64           `json:"order_id"`
	UserID          int64           `json:"user_id"`
	OrderDate       time.Time       `json:"order_date"`
	Status          string          `json:"status"` // "pending", "processing", "shipped", "delivered", "cancelled"
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"` // derived from order items, never authored directly
}

type OrderItem struct {
	ID        int64           `json:"order_item_id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // copy of the product price at creation time
	LineTotal decimal.Decimal `json:"line_total"`
}

type Review struct {
	ID        int64  `json:"review_id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"` // 1..5
	Comment   string `json:"comment"`
}

// Dataset bundles the five collections in their dependency order.
type Dataset struct {
	Users      []User
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Reviews    []Review
}
