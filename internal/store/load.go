package store

import (
	"database/sql"
	"fmt"

	"ecomsim/internal/models"
)

const timeLayout = "2006-01-02T15:04:05"

// Load bulk-inserts the dataset inside one transaction, in dependency order:
// users and products, then orders, then order items and reviews. Any failure
// rolls the whole batch back; constraint errors from the engine are wrapped
// with %w so the original message survives.
func (s *Store) Load(ds *models.Dataset) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}

	if err := insertAll(tx, ds); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func insertAll(tx *sql.Tx, ds *models.Dataset) error {
	if err := insertUsers(tx, ds.Users); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if err := insertProducts(tx, ds.Products); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if err := insertOrders(tx, ds.Orders); err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	if err := insertOrderItems(tx, ds.OrderItems); err != nil {
		return fmt.Errorf("failed to load order_items: %w", err)
	}
	if err := insertReviews(tx, ds.Reviews); err != nil {
		return fmt.Errorf("failed to load reviews: %w", err)
	}
	return nil
}

func insertUsers(tx *sql.Tx, users []models.User) error {
	stmt, err := tx.Prepare(`
		INSERT INTO users (user_id, first_name, last_name, email, signup_date, country)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range users {
		if _, err := stmt.Exec(u.ID, u.FirstName, u.LastName, u.Email, u.SignupDate.Format(timeLayout), u.Country); err != nil {
			return err
		}
	}
	return nil
}

func insertProducts(tx *sql.Tx, products []models.Product) error {
	stmt, err := tx.Prepare(`
		INSERT INTO products (product_id, name, category, price, stock)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.Exec(p.ID, p.Name, p.Category, p.Price.InexactFloat64(), p.Stock); err != nil {
			return err
		}
	}
	return nil
}

func insertOrders(tx *sql.Tx, orders []models.Order) error {
	stmt, err := tx.Prepare(`
		INSERT INTO orders (order_id, user_id, order_date, status, shipping_address, total_amount)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range orders {
		if _, err := stmt.Exec(o.ID, o.UserID, o.OrderDate.Format(timeLayout), o.Status, o.ShippingAddress, o.TotalAmount.InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}

func insertOrderItems(tx *sql.Tx, items []models.OrderItem) error {
	stmt, err := tx.Prepare(`
		INSERT INTO order_items (order_item_id, order_id, product_id, quantity, unit_price, line_total)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.Exec(it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice.InexactFloat64(), it.LineTotal.InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}

func insertReviews(tx *sql.Tx, reviews []models.Review) error {
	stmt, err := tx.Prepare(`
		INSERT INTO reviews (review_id, user_id, product_id, rating, comment)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range reviews {
		if _, err := stmt.Exec(r.ID, r.UserID, r.ProductID, r.Rating, r.Comment); err != nil {
			return err
		}
	}
	return nil
}
