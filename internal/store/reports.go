package store

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Report row types. Each report is a pure read over the loaded tables;
// nothing here mutates state.

type CustomerRow struct {
	UserID     int64
	FirstName  string
	LastName   string
	Email      string
	SignupDate string
	Country    string
}

type ProductRow struct {
	ProductID int64
	Name      string
	Category  string
	Price     decimal.Decimal
	Stock     int
}

type OrderRow struct {
	OrderID     int64
	UserID      int64
	OrderDate   string
	Status      string
	TotalAmount decimal.Decimal
}

type ProductSalesRow struct {
	ProductID int64
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

type ProductRevenueRow struct {
	ProductID int64
	Name      string
	Revenue   decimal.Decimal
}

type CustomerSpendRow struct {
	UserID     int64
	Customer   string
	TotalSpend decimal.Decimal
}

type ProductRatingRow struct {
	ProductID   int64
	Name        string
	AvgRating   float64
	ReviewCount int64
}

type OrderLineRow struct {
	OrderID   int64
	Customer  string
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

func (s *Store) Customers() ([]CustomerRow, error) {
	rows, err := s.DB.Query(`
		SELECT user_id, first_name, last_name, email, signup_date, country
		FROM users
		ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []CustomerRow
	for rows.Next() {
		var c CustomerRow
		if err := rows.Scan(&c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.SignupDate, &c.Country); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) Products() ([]ProductRow, error) {
	rows, err := s.DB.Query(`
		SELECT product_id, name, category, price, stock
		FROM products
		ORDER BY product_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []ProductRow
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) Orders() ([]OrderRow, error) {
	rows, err := s.DB.Query(`
		SELECT order_id, user_id, order_date, status, total_amount
		FROM orders
		ORDER BY order_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []OrderRow
	for rows.Next() {
		var o OrderRow
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.OrderDate, &o.Status, &o.TotalAmount); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// TotalSales sums line_total over all order items.
func (s *Store) TotalSales() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.DB.QueryRow(`SELECT COALESCE(SUM(line_total), 0) FROM order_items`).Scan(&total)
	if err != nil && err != sql.ErrNoRows {
		return decimal.Zero, err
	}
	return total, nil
}

// TopSellingProducts ranks products by units sold, revenue breaking ties.
func (s *Store) TopSellingProducts(limit int) ([]ProductSalesRow, error) {
	rows, err := s.DB.Query(`
		SELECT p.product_id, p.name, SUM(oi.quantity) AS units_sold, SUM(oi.line_total) AS revenue
		FROM products p
		JOIN order_items oi ON oi.product_id = p.product_id
		GROUP BY p.product_id, p.name
		ORDER BY units_sold DESC, revenue DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []ProductSalesRow
	for rows.Next() {
		var r ProductSalesRow
		if err := rows.Scan(&r.ProductID, &r.Name, &r.UnitsSold, &r.Revenue); err != nil {
			return nil, err
		}
		sales = append(sales, r)
	}
	return sales, rows.Err()
}

// RevenuePerProduct sums quantity * unit_price per product, highest first.
// Products with no order items do not appear.
func (s *Store) RevenuePerProduct() ([]ProductRevenueRow, error) {
	rows, err := s.DB.Query(`
		SELECT p.product_id, p.name, SUM(oi.quantity * oi.unit_price) AS total_revenue
		FROM products p
		JOIN order_items oi ON oi.product_id = p.product_id
		GROUP BY p.product_id, p.name
		ORDER BY total_revenue DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenue []ProductRevenueRow
	for rows.Next() {
		var r ProductRevenueRow
		if err := rows.Scan(&r.ProductID, &r.Name, &r.Revenue); err != nil {
			return nil, err
		}
		revenue = append(revenue, r)
	}
	return revenue, rows.Err()
}

// TopCustomers ranks users by total spend across their orders' items.
func (s *Store) TopCustomers(limit int) ([]CustomerSpendRow, error) {
	rows, err := s.DB.Query(`
		SELECT u.user_id, u.first_name || ' ' || u.last_name AS customer, SUM(oi.quantity * oi.unit_price) AS total_spend
		FROM users u
		JOIN orders o ON o.user_id = u.user_id
		JOIN order_items oi ON oi.order_id = o.order_id
		GROUP BY u.user_id, customer
		ORDER BY total_spend DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spend []CustomerSpendRow
	for rows.Next() {
		var r CustomerSpendRow
		if err := rows.Scan(&r.UserID, &r.Customer, &r.TotalSpend); err != nil {
			return nil, err
		}
		spend = append(spend, r)
	}
	return spend, rows.Err()
}

// ProductRatings averages review ratings per product. Products without
// reviews are excluded by the inner join.
func (s *Store) ProductRatings() ([]ProductRatingRow, error) {
	rows, err := s.DB.Query(`
		SELECT p.product_id, p.name, AVG(r.rating) AS avg_rating, COUNT(r.review_id) AS review_count
		FROM products p
		JOIN reviews r ON r.product_id = p.product_id
		GROUP BY p.product_id, p.name
		ORDER BY avg_rating DESC, review_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []ProductRatingRow
	for rows.Next() {
		var r ProductRatingRow
		if err := rows.Scan(&r.ProductID, &r.Name, &r.AvgRating, &r.ReviewCount); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// OrderLineItems lists joined order lines with customer and product names.
func (s *Store) OrderLineItems(limit int) ([]OrderLineRow, error) {
	rows, err := s.DB.Query(`
		SELECT o.order_id, u.first_name || ' ' || u.last_name AS customer, p.name, oi.quantity, oi.unit_price, oi.line_total
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		JOIN order_items oi ON oi.order_id = o.order_id
		JOIN products p ON p.product_id = oi.product_id
		ORDER BY o.order_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []OrderLineRow
	for rows.Next() {
		var l OrderLineRow
		if err := rows.Scan(&l.OrderID, &l.Customer, &l.Product, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
