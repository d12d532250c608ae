package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

// NewStore opens the SQLite database at path with foreign-key enforcement on.
// The connection pool is pinned to one connection; the pipeline is a
// single-writer batch job and SQLite pragmas are per-connection.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

const schema = `
	DROP TABLE IF EXISTS reviews;
	DROP TABLE IF EXISTS order_items;
	DROP TABLE IF EXISTS orders;
	DROP TABLE IF EXISTS products;
	DROP TABLE IF EXISTS users;

	CREATE TABLE users (
		user_id INTEGER PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		signup_date TEXT NOT NULL,
		country TEXT NOT NULL
	);

	CREATE TABLE products (
		product_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL,
		stock INTEGER NOT NULL
	);

	CREATE TABLE orders (
		order_id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		order_date TEXT NOT NULL,
		status TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		total_amount REAL NOT NULL
	);

	CREATE TABLE order_items (
		order_item_id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		line_total REAL NOT NULL
	);

	CREATE TABLE reviews (
		review_id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL
	);
`

// InitSchema drops and recreates the five tables. Drops run in reverse
// dependency order so the foreign keys never dangle mid-script.
func (s *Store) InitSchema() error {
	if _, err := s.DB.Exec(schema); err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
