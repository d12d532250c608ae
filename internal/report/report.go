// Package report renders the canned aggregate reports as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"ecomsim/internal/store"
)

// Run executes every canned report against the store and prints the results.
func Run(s *store.Store, w io.Writer) error {
	customers, err := s.Customers()
	if err != nil {
		return fmt.Errorf("customers report: %w", err)
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.FormatInt(c.UserID, 10), c.FirstName, c.LastName, c.Email, c.SignupDate, c.Country,
		})
	}
	printTable(w, "All customers", []string{"user_id", "first_name", "last_name", "email", "signup_date", "country"}, rows)

	products, err := s.Products()
	if err != nil {
		return fmt.Errorf("products report: %w", err)
	}
	rows = rows[:0]
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ProductID, 10), p.Name, p.Category, p.Price.StringFixed(2), strconv.Itoa(p.Stock),
		})
	}
	printTable(w, "All products", []string{"product_id", "name", "category", "price", "stock"}, rows)

	orders, err := s.Orders()
	if err != nil {
		return fmt.Errorf("orders report: %w", err)
	}
	rows = rows[:0]
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.FormatInt(o.OrderID, 10), strconv.FormatInt(o.UserID, 10), o.OrderDate, o.Status, o.TotalAmount.StringFixed(2),
		})
	}
	printTable(w, "All orders", []string{"order_id", "user_id", "order_date", "status", "total_amount"}, rows)

	totalSales, err := s.TotalSales()
	if err != nil {
		return fmt.Errorf("total sales report: %w", err)
	}
	printTable(w, "Total sales", []string{"total_sales"}, [][]string{{totalSales.StringFixed(2)}})

	topSellers, err := s.TopSellingProducts(5)
	if err != nil {
		return fmt.Errorf("top selling products report: %w", err)
	}
	rows = rows[:0]
	for _, r := range topSellers {
		rows = append(rows, []string{
			strconv.FormatInt(r.ProductID, 10), r.Name, strconv.FormatInt(r.UnitsSold, 10), r.Revenue.StringFixed(2),
		})
	}
	printTable(w, "Top selling products", []string{"product_id", "product_name", "units_sold", "revenue"}, rows)

	revenue, err := s.RevenuePerProduct()
	if err != nil {
		return fmt.Errorf("revenue per product report: %w", err)
	}
	rows = rows[:0]
	for _, r := range revenue {
		rows = append(rows, []string{
			strconv.FormatInt(r.ProductID, 10), r.Name, r.Revenue.StringFixed(2),
		})
	}
	printTable(w, "Revenue per product", []string{"product_id", "name", "total_revenue"}, rows)

	topCustomers, err := s.TopCustomers(10)
	if err != nil {
		return fmt.Errorf("top customers report: %w", err)
	}
	rows = rows[:0]
	for _, r := range topCustomers {
		rows = append(rows, []string{
			strconv.FormatInt(r.UserID, 10), r.Customer, r.TotalSpend.StringFixed(2),
		})
	}
	printTable(w, "Top customers by spend", []string{"user_id", "customer", "total_spend"}, rows)

	ratings, err := s.ProductRatings()
	if err != nil {
		return fmt.Errorf("product ratings report: %w", err)
	}
	rows = rows[:0]
	for _, r := range ratings {
		rows = append(rows, []string{
			strconv.FormatInt(r.ProductID, 10), r.Name,
			strconv.FormatFloat(r.AvgRating, 'f', 2, 64), strconv.FormatInt(r.ReviewCount, 10),
		})
	}
	printTable(w, "Average rating per product", []string{"product_id", "name", "avg_rating", "review_count"}, rows)

	lines, err := s.OrderLineItems(10)
	if err != nil {
		return fmt.Errorf("order line items report: %w", err)
	}
	rows = rows[:0]
	for _, l := range lines {
		rows = append(rows, []string{
			strconv.FormatInt(l.OrderID, 10), l.Customer, l.Product,
			strconv.Itoa(l.Quantity), l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2),
		})
	}
	printTable(w, "First 10 order line items", []string{"order_id", "customer", "product_name", "quantity", "unit_price", "line_total"}, rows)

	return nil
}

func printTable(w io.Writer, title string, headers []string, rows [][]string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}
