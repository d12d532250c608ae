package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ecomsim/internal/config"
	"ecomsim/internal/dataset"
	"ecomsim/internal/gen"
	"ecomsim/internal/report"
	"ecomsim/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Println("expected 'generate', 'load' or 'report' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(cfg, os.Args[2:])
	case "load":
		runLoad(cfg, os.Args[2:])
	case "report":
		runReport(cfg, os.Args[2:])
	default:
		fmt.Println("expected 'generate', 'load' or 'report' subcommand")
		os.Exit(1)
	}
}

func runGenerate(cfg *config.Config, args []string) {
	defaults := gen.DefaultParams()

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	seed := fs.Int64("seed", defaults.Seed, "Random seed for reproducible output")
	users := fs.Int("users", defaults.Users, "Number of users to generate")
	products := fs.Int("products", defaults.Products, "Number of products to generate")
	orders := fs.Int("orders", defaults.Orders, "Number of orders to generate")
	items := fs.Int("items", defaults.OrderItems, "Number of order items to generate")
	reviews := fs.Int("reviews", defaults.Reviews, "Number of reviews to generate")
	dataDir := fs.String("data", cfg.DataDir, "Directory for the generated CSV files")
	fs.Parse(args)

	params := gen.Params{
		Users:      *users,
		Products:   *products,
		Orders:     *orders,
		OrderItems: *items,
		Reviews:    *reviews,
		Seed:       *seed,
		Now:        time.Now().Truncate(time.Second),
	}

	ds, err := gen.Generate(params)
	if err != nil {
		slog.Error("Invalid generation parameters", "error", err)
		os.Exit(1)
	}
	if err := dataset.WriteAll(*dataDir, ds); err != nil {
		slog.Error("Failed to write datasets", "error", err)
		os.Exit(1)
	}

	slog.Info("Synthetic CSV datasets written", "dir", *dataDir,
		"users", len(ds.Users), "products", len(ds.Products), "orders", len(ds.Orders),
		"order_items", len(ds.OrderItems), "reviews", len(ds.Reviews))
}

func runLoad(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "Directory holding the CSV files")
	dbPath := fs.String("db", cfg.DBPath, "Path to the SQLite database")
	fs.Parse(args)

	// Read every collection before touching the database, so a missing file
	// fails fast with nothing partially loaded.
	ds, err := dataset.ReadAll(*dataDir)
	if err != nil {
		slog.Error("Failed to read datasets", "error", err)
		os.Exit(1)
	}

	if dir := filepath.Dir(*dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("Failed to create database directory", "error", err)
			os.Exit(1)
		}
	}

	db, err := store.NewStore(*dbPath)
	if err != nil {
		slog.Error("Failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to create schema", "error", err)
		os.Exit(1)
	}

	if err := db.Load(ds); err != nil {
		slog.Error("Failed to load datasets", "error", err)
		os.Exit(1)
	}

	slog.Info("SQLite database populated", "path", *dbPath)
}

func runReport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	dbPath := fs.String("db", cfg.DBPath, "Path to the SQLite database")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err != nil {
		slog.Error("Database not found", "path", *dbPath)
		os.Exit(1)
	}

	db, err := store.NewStore(*dbPath)
	if err != nil {
		slog.Error("Failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := report.Run(db, os.Stdout); err != nil {
		slog.Error("Failed to run reports", "error", err)
		os.Exit(1)
	}
}
