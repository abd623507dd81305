package store

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/models"
)

type cartItemRow struct {
	ProductID string `db:"product_id"`
	Qty       int64  `db:"qty"`
}

// LoadCart hydrates the cart for token against the current catalog.
// A token with no saved cart yields an empty cart. A saved line whose
// product was deleted from the catalog fails with ProductNotFoundError;
// a selected coupon that was deleted is silently dropped.
func (s *Store) LoadCart(ctx context.Context, token string) (models.Cart, *models.Coupon, error) {
	var couponCode sql.NullString
	err := s.db.GetContext(ctx, &couponCode, `SELECT coupon_code FROM carts WHERE token=?`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var items []cartItemRow
	if err := s.db.SelectContext(ctx, &items,
		`SELECT product_id, qty FROM cart_items WHERE cart_token=? ORDER BY position`, token); err != nil {
		return nil, nil, err
	}

	var cart models.Cart
	for _, it := range items {
		p, err := s.GetProduct(ctx, it.ProductID)
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ProductNotFoundError{ID: it.ProductID}
		}
		if err != nil {
			return nil, nil, err
		}
		cart = append(cart, models.CartLine{Product: p, Quantity: it.Qty})
	}

	var coupon *models.Coupon
	if couponCode.Valid && couponCode.String != "" {
		c, err := s.GetCoupon(ctx, couponCode.String)
		switch {
		case errors.Is(err, ErrNotFound):
			// coupon deleted since selection
		case err != nil:
			return nil, nil, err
		default:
			coupon = &c
		}
	}
	return cart, coupon, nil
}

// SaveCart persists the full cart state for token, replacing whatever
// was there. Line order is kept via the position column.
func (s *Store) SaveCart(ctx context.Context, token string, cart models.Cart, coupon *models.Coupon) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var code any
	if coupon != nil {
		code = coupon.Code
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO carts(token, coupon_code) VALUES (?,?)
		ON CONFLICT(token) DO UPDATE SET
			coupon_code = excluded.coupon_code,
			updated_unix = strftime('%s','now')`, token, code); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_token=?`, token); err != nil {
		return err
	}
	for i, l := range cart {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items(cart_token, product_id, qty, position) VALUES (?,?,?,?)`,
			token, l.Product.ID, l.Quantity, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}
