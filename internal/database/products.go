package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapa-pos/api/internal/pos"
)

// ProductRepo is the catalog repository.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) ListProducts(ctx context.Context) ([]pos.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, cost_price, stock, category, emoji
		 FROM products
		 ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []pos.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) GetProduct(ctx context.Context, id uuid.UUID) (pos.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, price, cost_price, stock, category, emoji
		 FROM products
		 WHERE id = $1`, id)
	return scanProduct(row.Scan)
}

func (r *ProductRepo) CreateProduct(ctx context.Context, p pos.Product) (pos.Product, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, price, cost_price, stock, category, emoji)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, name, price, cost_price, stock, category, emoji`,
		p.Name, decimalToNumeric(p.Price), decimalToNumeric(p.CostPrice),
		p.Stock, p.Category, p.Emoji)
	return scanProduct(row.Scan)
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, p pos.Product) (pos.Product, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, price = $3, cost_price = $4, stock = $5, category = $6, emoji = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, price, cost_price, stock, category, emoji`,
		p.ID, p.Name, decimalToNumeric(p.Price), decimalToNumeric(p.CostPrice),
		p.Stock, p.Category, p.Emoji)
	return scanProduct(row.Scan)
}

func (r *ProductRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(scan func(dest ...any) error) (pos.Product, error) {
	var (
		p     pos.Product
		price pgtype.Numeric
		cost  pgtype.Numeric
	)
	if err := scan(&p.ID, &p.Name, &price, &cost, &p.Stock, &p.Category, &p.Emoji); err != nil {
		return pos.Product{}, err
	}
	p.Price = numericToDecimal(price)
	p.CostPrice = numericToDecimal(cost)
	return p, nil
}
