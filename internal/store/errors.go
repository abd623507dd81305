package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// ProductNotFoundError marks a cart line whose product id no longer
// exists in the catalog. The engine never sees this case: it is a
// consistency error between the cart and catalog snapshots, surfaced
// here before a line reaches pricing.
type ProductNotFoundError struct {
	ID string
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not in catalog", e.ID)
}
