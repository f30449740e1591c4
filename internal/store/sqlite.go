package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/models"
)

// SQLiteStore keeps the catalog and orders in a single embedded
// database file. Order items are stored as a JSON text blob in the
// orders row, so an order never references the products table.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	price       REAL NOT NULL DEFAULT 0,
	category    TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS orders (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_name  TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	address        TEXT NOT NULL,
	items          TEXT NOT NULL,
	total          REAL NOT NULL,
	created_at     TEXT NOT NULL
);
`

// NewSQLiteStore opens (creating if needed) the database file at path
// and ensures both tables exist.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price, category, image FROM products`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var id int64
		if err := rows.Scan(&id, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ID = strconv.FormatInt(id, 10)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQLiteStore) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, category, image) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.Price, p.Category, p.Image)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, fmt.Errorf("read product id: %w", err)
	}
	p.ID = strconv.FormatInt(id, 10)
	return p, nil
}

func (s *SQLiteStore) UpdateProduct(ctx context.Context, id string, p models.Product) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, category = ?, image = ? WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Category, p.Image, numID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, numID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) InsertOrder(ctx context.Context, o models.Order) (models.Order, error) {
	blob, err := json.Marshal(o.Items)
	if err != nil {
		return models.Order{}, fmt.Errorf("encode order items: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (customer_name, customer_email, address, items, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.CustomerName, o.CustomerEmail, o.Address, string(blob), o.Total,
		o.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Order{}, fmt.Errorf("read order id: %w", err)
	}
	o.ID = strconv.FormatInt(id, 10)
	return o, nil
}

func (s *SQLiteStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, customer_name, customer_email, address, items, total, created_at
		 FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var id int64
		var blob, createdAt string
		if err := rows.Scan(&id, &o.CustomerName, &o.CustomerEmail, &o.Address, &blob, &o.Total, &createdAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.ID = strconv.FormatInt(id, 10)
		if err := json.Unmarshal([]byte(blob), &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse order timestamp: %w", err)
		}
		o.CreatedAt = ts
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
