// Package dataset serializes the generated collections to CSV, one file per
// entity with a fixed header row. The column names and order are part of the
// pipeline's contract with the loader.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"ecomsim/internal/models"
)

const timeLayout = "2006-01-02T15:04:05"

const (
	UsersFile      = "users.csv"
	ProductsFile   = "products.csv"
	OrdersFile     = "orders.csv"
	OrderItemsFile = "order_items.csv"
	ReviewsFile    = "reviews.csv"
)

var (
	userHeader      = []string{"user_id", "first_name", "last_name", "email", "signup_date", "country"}
	productHeader   = []string{"product_id", "name", "category", "price", "stock"}
	orderHeader     = []string{"order_id", "user_id", "order_date", "status", "shipping_address", "total_amount"}
	orderItemHeader = []string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "line_total"}
	reviewHeader    = []string{"review_id", "user_id", "product_id", "rating", "comment"}
)

// WriteAll writes the five entity files under dir, creating it if needed.
func WriteAll(dir string, ds *models.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	users := make([][]string, 0, len(ds.Users))
	for _, u := range ds.Users {
		users = append(users, []string{
			strconv.FormatInt(u.ID, 10), u.FirstName, u.LastName, u.Email,
			u.SignupDate.Format(timeLayout), u.Country,
		})
	}
	if err := writeCSV(filepath.Join(dir, UsersFile), userHeader, users); err != nil {
		return err
	}

	products := make([][]string, 0, len(ds.Products))
	for _, p := range ds.Products {
		products = append(products, []string{
			strconv.FormatInt(p.ID, 10), p.Name, p.Category,
			p.Price.StringFixed(2), strconv.Itoa(p.Stock),
		})
	}
	if err := writeCSV(filepath.Join(dir, ProductsFile), productHeader, products); err != nil {
		return err
	}

	orders := make([][]string, 0, len(ds.Orders))
	for _, o := range ds.Orders {
		orders = append(orders, []string{
			strconv.FormatInt(o.ID, 10), strconv.FormatInt(o.UserID, 10),
			o.OrderDate.Format(timeLayout), o.Status, o.ShippingAddress,
			o.TotalAmount.StringFixed(2),
		})
	}
	if err := writeCSV(filepath.Join(dir, OrdersFile), orderHeader, orders); err != nil {
		return err
	}

	items := make([][]string, 0, len(ds.OrderItems))
	for _, it := range ds.OrderItems {
		items = append(items, []string{
			strconv.FormatInt(it.ID, 10), strconv.FormatInt(it.OrderID, 10),
			strconv.FormatInt(it.ProductID, 10), strconv.Itoa(it.Quantity),
			it.UnitPrice.StringFixed(2), it.LineTotal.StringFixed(2),
		})
	}
	if err := writeCSV(filepath.Join(dir, OrderItemsFile), orderItemHeader, items); err != nil {
		return err
	}

	reviews := make([][]string, 0, len(ds.Reviews))
	for _, r := range ds.Reviews {
		reviews = append(reviews, []string{
			strconv.FormatInt(r.ID, 10), strconv.FormatInt(r.UserID, 10),
			strconv.FormatInt(r.ProductID, 10), strconv.Itoa(r.Rating), r.Comment,
		})
	}
	return writeCSV(filepath.Join(dir, ReviewsFile), reviewHeader, reviews)
}

// ReadAll reads the five entity files from dir. A missing or malformed file
// fails the whole read; nothing is partially returned.
func ReadAll(dir string) (*models.Dataset, error) {
	ds := &models.Dataset{}

	rows, err := readCSV(filepath.Join(dir, UsersFile), userHeader)
	if err != nil {
		return nil, err
	}
	ds.Users = make([]models.User, 0, len(rows))
	for _, rec := range rows {
		u, err := parseUser(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", UsersFile, err)
		}
		ds.Users = append(ds.Users, u)
	}

	rows, err = readCSV(filepath.Join(dir, ProductsFile), productHeader)
	if err != nil {
		return nil, err
	}
	ds.Products = make([]models.Product, 0, len(rows))
	for _, rec := range rows {
		p, err := parseProduct(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ProductsFile, err)
		}
		ds.Products = append(ds.Products, p)
	}

	rows, err = readCSV(filepath.Join(dir, OrdersFile), orderHeader)
	if err != nil {
		return nil, err
	}
	ds.Orders = make([]models.Order, 0, len(rows))
	for _, rec := range rows {
		o, err := parseOrder(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", OrdersFile, err)
		}
		ds.Orders = append(ds.Orders, o)
	}

	rows, err = readCSV(filepath.Join(dir, OrderItemsFile), orderItemHeader)
	if err != nil {
		return nil, err
	}
	ds.OrderItems = make([]models.OrderItem, 0, len(rows))
	for _, rec := range rows {
		it, err := parseOrderItem(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", OrderItemsFile, err)
		}
		ds.OrderItems = append(ds.OrderItems, it)
	}

	rows, err = readCSV(filepath.Join(dir, ReviewsFile), reviewHeader)
	if err != nil {
		return nil, err
	}
	ds.Reviews = make([]models.Review, 0, len(rows))
	for _, rec := range rows {
		r, err := parseReview(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ReviewsFile, err)
		}
		ds.Reviews = append(ds.Reviews, r)
	}

	return ds, nil
}

func parseUser(rec []string) (models.User, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid user_id %q: %w", rec[0], err)
	}
	signup, err := time.Parse(timeLayout, rec[4])
	if err != nil {
		return models.User{}, fmt.Errorf("invalid signup_date %q: %w", rec[4], err)
	}
	return models.User{
		ID:         id,
		FirstName:  rec[1],
		LastName:   rec[2],
		Email:      rec[3],
		SignupDate: signup,
		Country:    rec[5],
	}, nil
}

func parseProduct(rec []string) (models.Product, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid product_id %q: %w", rec[0], err)
	}
	price, err := decimal.NewFromString(rec[3])
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price %q: %w", rec[3], err)
	}
	stock, err := strconv.Atoi(rec[4])
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid stock %q: %w", rec[4], err)
	}
	return models.Product{ID: id, Name: rec[1], Category: rec[2], Price: price, Stock: stock}, nil
}

func parseOrder(rec []string) (models.Order, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return models.Order{}, fmt.Errorf("invalid order_id %q: %w", rec[0], err)
	}
	userID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return models.Order{}, fmt.Errorf("invalid user_id %q: %w", rec[1], err)
	}
	date, err := time.Parse(timeLayout, rec[2])
	if err != nil {
		return models.Order{}, fmt.Errorf("invalid order_date %q: %w", rec[2], err)
	}
	total, err := decimal.NewFromString(rec[5])
	if err != nil {
		return models.Order{}, fmt.Errorf("invalid total_amount %q: %w", rec[5], err)
	}
	return models.Order{
		ID:              id,
		UserID:          userID,
		OrderDate:       date,
		Status:          rec[3],
		ShippingAddress: rec[4],
		TotalAmount:     total,
	}, nil
}

func parseOrderItem(rec []string) (models.OrderItem, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid order_item_id %q: %w", rec[0], err)
	}
	orderID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid order_id %q: %w", rec[1], err)
	}
	productID, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid product_id %q: %w", rec[2], err)
	}
	quantity, err := strconv.Atoi(rec[3])
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid quantity %q: %w", rec[3], err)
	}
	unitPrice, err := decimal.NewFromString(rec[4])
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid unit_price %q: %w", rec[4], err)
	}
	lineTotal, err := decimal.NewFromString(rec[5])
	if err != nil {
		return models.OrderItem{}, fmt.Errorf("invalid line_total %q: %w", rec[5], err)
	}
	return models.OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: lineTotal,
	}, nil
}

func parseReview(rec []string) (models.Review, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return models.Review{}, fmt.Errorf("invalid review_id %q: %w", rec[0], err)
	}
	userID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return models.Review{}, fmt.Errorf("invalid user_id %q: %w", rec[1], err)
	}
	productID, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return models.Review{}, fmt.Errorf("invalid product_id %q: %w", rec[2], err)
	}
	rating, err := strconv.Atoi(rec[3])
	if err != nil {
		return models.Review{}, fmt.Errorf("invalid rating %q: %w", rec[3], err)
	}
	return models.Review{ID: id, UserID: userID, ProductID: productID, Rating: rating, Comment: rec[4]}, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("missing dataset %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row in %s", path)
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, fmt.Errorf("unexpected header in %s: got %q, want %q", path, records[0][i], name)
		}
	}
	return records[1:], nil
}
