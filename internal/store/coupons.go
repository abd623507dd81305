package store

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/models"
)

// ListCoupons returns every coupon, ordered by code.
func (s *Store) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var out []models.Coupon
	err := s.db.SelectContext(ctx, &out,
		`SELECT code, name, discount_type, discount_value FROM coupons ORDER BY code`)
	return out, err
}

// GetCoupon fetches a coupon by code.
func (s *Store) GetCoupon(ctx context.Context, code string) (models.Coupon, error) {
	var c models.Coupon
	err := s.db.GetContext(ctx, &c,
		`SELECT code, name, discount_type, discount_value FROM coupons WHERE code=?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Coupon{}, ErrNotFound
	}
	return c, err
}

// CreateCoupon inserts a coupon, rejecting duplicate codes.
func (s *Store) CreateCoupon(ctx context.Context, c models.Coupon) error {
	var exists int
	if err := s.db.GetContext(ctx, &exists, `SELECT COUNT(1) FROM coupons WHERE code=?`, c.Code); err != nil {
		return err
	}
	if exists > 0 {
		return ErrDuplicate
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coupons(code, name, discount_type, discount_value) VALUES (?,?,?,?)`,
		c.Code, c.Name, c.Type, c.Value)
	return err
}

// DeleteCoupon removes a coupon by code.
func (s *Store) DeleteCoupon(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM coupons WHERE code=?`, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
