package store

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var seedProducts = []models.Product{
	{
		ID: "p1", Name: "Premium Tee", Price: 10000, Stock: 20,
		Discounts: []models.DiscountTier{
			{Threshold: 10, Rate: dec("0.1")},
			{Threshold: 20, Rate: dec("0.2")},
		},
	},
	{
		ID: "p2", Name: "Canvas Tote", Price: 20000, Stock: 20,
		Discounts: []models.DiscountTier{
			{Threshold: 10, Rate: dec("0.15")},
		},
	},
	{
		ID: "p3", Name: "Field Jacket", Price: 30000, Stock: 20,
		Discounts: []models.DiscountTier{
			{Threshold: 10, Rate: dec("0.2")},
		},
	},
}

var seedCoupons = []models.Coupon{
	{Code: "AMOUNT5000", Name: "5000 off", Type: models.FixedAmount, Value: 5000},
	{Code: "PERCENT10", Name: "10% off", Type: models.Percentage, Value: 10},
}

// Seed installs the demo catalog and coupons, skipping rows that
// already exist so repeated runs are safe.
func (s *Store) Seed(ctx context.Context) error {
	for _, p := range seedProducts {
		err := s.CreateProduct(ctx, p)
		if err == ErrDuplicate {
			continue
		}
		if err != nil {
			return err
		}
	}
	for _, c := range seedCoupons {
		err := s.CreateCoupon(ctx, c)
		if err == ErrDuplicate {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
