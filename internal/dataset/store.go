package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store loads a dataset snapshot from some backing source.
type Store interface {
	Load(ctx context.Context) (*Dataset, error)
}

// CSVStore loads the dataset from a CSV file.
type CSVStore struct {
	Path string
}

func (s CSVStore) Load(ctx context.Context) (*Dataset, error) {
	return ReadCSV(s.Path)
}

// SQLiteStore loads the dataset from the orders table of a SQLite file
// previously populated with ImportCSV.
type SQLiteStore struct {
	DSN string
}

func (s SQLiteStore) Load(ctx context.Context) (*Dataset, error) {
	db, err := OpenSQLite(s.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	ds, err := LoadSQLite(ctx, db)
	if err != nil {
		return nil, err
	}
	ds.Source = s.DSN
	return ds, nil
}

// OpenSQLite opens and pings a SQLite database.
func OpenSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS orders (
	date TEXT NOT NULL,
	order_id TEXT,
	product_id TEXT,
	sku TEXT,
	product_name TEXT,
	category TEXT,
	price REAL,
	cost REAL,
	qty INTEGER,
	revenue REAL,
	channel TEXT,
	city TEXT,
	warehouse TEXT,
	inventory_on_hand REAL,
	ltv REAL,
	customer_id TEXT,
	first_order INTEGER,
	first_order_date TEXT,
	spend REAL,
	visits REAL,
	add_to_cart REAL,
	checkout REAL
);
CREATE TABLE IF NOT EXISTS dataset_columns (
	name TEXT PRIMARY KEY
);
`

// ImportCSV replaces the orders table contents with the given dataset.
// The source's present-column set is persisted so a later load reproduces
// the same optional-column behavior as reading the CSV directly.
func ImportCSV(ctx context.Context, db *sql.DB, ds *Dataset) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_columns`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO orders (
		date, order_id, product_id, sku, product_name, category,
		price, cost, qty, revenue, channel, city, warehouse,
		inventory_on_hand, ltv, customer_id, first_order, first_order_date,
		spend, visits, add_to_cart, checkout
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range ds.Rows {
		var fod any
		if !r.FirstOrderDate.IsZero() {
			fod = r.FirstOrderDate.Format("2006-01-02")
		}
		if _, err := stmt.ExecContext(ctx,
			r.Date.Format(time.RFC3339), r.OrderID, r.ProductID, r.SKU,
			r.ProductName, r.Category, r.Price, r.Cost, r.Qty, r.Revenue,
			r.Channel, r.City, r.Warehouse, r.InventoryOnHand, r.LTV,
			r.CustomerID, boolToInt(r.FirstOrder), fod,
			r.Spend, r.Visits, r.AddToCart, r.Checkout,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
	}

	for col := range ds.Columns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_columns (name) VALUES (?)`, col); err != nil {
			return fmt.Errorf("record column: %w", err)
		}
	}

	return tx.Commit()
}

// LoadSQLite reads the full orders table into a dataset.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Dataset, error) {
	cols := make(map[string]bool)
	colRows, err := db.QueryContext(ctx, `SELECT name FROM dataset_columns`)
	if err != nil {
		return nil, fmt.Errorf("load columns: %w", err)
	}
	defer colRows.Close()
	for colRows.Next() {
		var name string
		if err := colRows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	if err := colRows.Err(); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT
		date, order_id, product_id, sku, product_name, category,
		price, cost, qty, revenue, channel, city, warehouse,
		inventory_on_hand, ltv, customer_id, first_order, first_order_date,
		spend, visits, add_to_cart, checkout
	FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	defer rows.Close()

	ds := &Dataset{Columns: cols, LoadedAt: time.Now()}
	for rows.Next() {
		var (
			r          Row
			date       string
			firstOrder int64
			fod        sql.NullString
		)
		if err := rows.Scan(
			&date, &r.OrderID, &r.ProductID, &r.SKU, &r.ProductName,
			&r.Category, &r.Price, &r.Cost, &r.Qty, &r.Revenue, &r.Channel,
			&r.City, &r.Warehouse, &r.InventoryOnHand, &r.LTV, &r.CustomerID,
			&firstOrder, &fod, &r.Spend, &r.Visits, &r.AddToCart, &r.Checkout,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		d, ok := parseDate(date)
		if !ok {
			ds.Skipped++
			continue
		}
		r.Date = d
		r.FirstOrder = firstOrder != 0
		if fod.Valid {
			if t, ok := parseDate(fod.String); ok {
				r.FirstOrderDate = t
			}
		}
		ds.Rows = append(ds.Rows, r)
	}
	return ds, rows.Err()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
