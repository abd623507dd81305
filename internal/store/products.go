package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

type productRow struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Price int64  `db:"price"`
	Stock int64  `db:"stock"`
}

type tierRow struct {
	ProductID string          `db:"product_id"`
	Threshold int64           `db:"threshold"`
	Rate      decimal.Decimal `db:"rate"`
}

// CountProducts returns the number of products matching the search
// term, or all products when q is blank.
func (s *Store) CountProducts(ctx context.Context, q string) (int64, error) {
	var n int64
	if strings.TrimSpace(q) == "" {
		err := s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM products`)
		return n, err
	}
	qp := "%" + strings.ToLower(q) + "%"
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(1) FROM products WHERE lower(name) LIKE ?`, qp)
	return n, err
}

// ListProducts returns a page of products, newest first, with their
// discount tiers attached.
func (s *Store) ListProducts(ctx context.Context, q string, limit, offset int64) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []productRow
	var err error
	if strings.TrimSpace(q) == "" {
		err = s.db.SelectContext(ctx, &rows, `
			SELECT id, name, price, stock FROM products
			ORDER BY created_unix DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	} else {
		qp := "%" + strings.ToLower(q) + "%"
		err = s.db.SelectContext(ctx, &rows, `
			SELECT id, name, price, stock FROM products
			WHERE lower(name) LIKE ?
			ORDER BY created_unix DESC, id DESC LIMIT ? OFFSET ?`, qp, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	query, args, err := sqlx.In(
		`SELECT product_id, threshold, rate FROM product_discounts WHERE product_id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var tiers []tierRow
	if err := s.db.SelectContext(ctx, &tiers, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	byProduct := map[string][]models.DiscountTier{}
	for _, t := range tiers {
		byProduct[t.ProductID] = append(byProduct[t.ProductID],
			models.DiscountTier{Threshold: t.Threshold, Rate: t.Rate})
	}

	out := make([]models.Product, len(rows))
	for i, r := range rows {
		out[i] = models.Product{
			ID: r.ID, Name: r.Name, Price: r.Price, Stock: r.Stock,
			Discounts: byProduct[r.ID],
		}
	}
	return out, nil
}

// GetProduct fetches a single product, read-through the LRU cache.
func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	if p, hit := s.cache.Get(id); hit {
		return p, nil
	}
	var row productRow
	err := s.db.GetContext(ctx, &row, `SELECT id, name, price, stock FROM products WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	var tiers []tierRow
	if err := s.db.SelectContext(ctx, &tiers,
		`SELECT product_id, threshold, rate FROM product_discounts WHERE product_id=?`, id); err != nil {
		return models.Product{}, err
	}
	p := models.Product{ID: row.ID, Name: row.Name, Price: row.Price, Stock: row.Stock}
	for _, t := range tiers {
		p.Discounts = append(p.Discounts, models.DiscountTier{Threshold: t.Threshold, Rate: t.Rate})
	}
	s.cache.Add(id, p)
	return p, nil
}

// CreateProduct inserts a product and its tiers.
func (s *Store) CreateProduct(ctx context.Context, p models.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.GetContext(ctx, &exists, `SELECT COUNT(1) FROM products WHERE id=?`, p.ID); err != nil {
		return err
	}
	if exists > 0 {
		return ErrDuplicate
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO products(id, name, price, stock) VALUES (?,?,?,?)`,
		p.ID, p.Name, p.Price, p.Stock); err != nil {
		return err
	}
	if err := insertTiers(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateProduct replaces a product row and its tiers, invalidating the cache.
func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE products SET name=?, price=?, stock=? WHERE id=?`,
		p.Name, p.Price, p.Stock, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_discounts WHERE product_id=?`, p.ID); err != nil {
		return err
	}
	if err := insertTiers(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.cache.Remove(p.ID)
	return nil
}

// DeleteProduct removes a product; carts referencing it surface
// ProductNotFoundError on their next load.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.cache.Remove(id)
	return nil
}

func insertTiers(ctx context.Context, tx *sqlx.Tx, p models.Product) error {
	for _, t := range p.Discounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_discounts(product_id, threshold, rate) VALUES (?,?,?)`,
			p.ID, t.Threshold, t.Rate.String()); err != nil {
			return err
		}
	}
	return nil
}
