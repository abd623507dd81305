package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Check is the outcome of validating a single numeric form field.
// When Valid is false, Corrected carries the nearest acceptable value
// so the admin surface can offer it back to the user.
type Check struct {
	Valid     bool
	Corrected int64
	Message   string
}

func ok(v int64) Check { return Check{Valid: true, Corrected: v} }

// CheckPrice validates a product price field.
func CheckPrice(v int64) Check {
	if v < 0 {
		return Check{Corrected: 0, Message: "price cannot be negative"}
	}
	return ok(v)
}

// CheckStock validates a product stock field.
func CheckStock(v int64) Check {
	if v < 0 {
		return Check{Corrected: 0, Message: "stock cannot be negative"}
	}
	return ok(v)
}

// CheckPercentage validates a percentage coupon value (0-100).
func CheckPercentage(v int64) Check {
	if v < 0 {
		return Check{Corrected: 0, Message: "percentage cannot be negative"}
	}
	if v > 100 {
		return Check{Corrected: 100, Message: "percentage cannot exceed 100"}
	}
	return ok(v)
}

// CheckThreshold validates a discount tier threshold quantity.
func CheckThreshold(v int64) Check {
	if v < 1 {
		return Check{Corrected: 1, Message: "threshold must be at least 1"}
	}
	return ok(v)
}

// Validate reports whether the product is acceptable as admin input.
func (p Product) Validate() error {
	if p.ID == "" {
		return errors.New("product id is required")
	}
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if c := CheckPrice(p.Price); !c.Valid {
		return errors.New(c.Message)
	}
	if c := CheckStock(p.Stock); !c.Valid {
		return errors.New(c.Message)
	}
	for _, t := range p.Discounts {
		if c := CheckThreshold(t.Threshold); !c.Valid {
			return errors.New(c.Message)
		}
		if t.Rate.IsNegative() || t.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("discount rate %s out of range [0,1)", t.Rate)
		}
	}
	return nil
}

// Validate reports whether the coupon is acceptable as admin input.
func (c Coupon) Validate() error {
	if c.Code == "" {
		return errors.New("coupon code is required")
	}
	if c.Name == "" {
		return errors.New("coupon name is required")
	}
	switch c.Type {
	case FixedAmount:
		if c.Value < 0 {
			return errors.New("discount amount cannot be negative")
		}
	case Percentage:
		if chk := CheckPercentage(c.Value); !chk.Valid {
			return errors.New(chk.Message)
		}
	default:
		return fmt.Errorf("unknown discount type %q", c.Type)
	}
	return nil
}
