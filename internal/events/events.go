// Package events publishes storefront domain events to a RabbitMQ
// topic exchange. Consumers (mailers, analytics, stock sync) bind
// their own queues; this service only ever publishes.
package events

import "context"

// Routing keys for the topic exchange.
const (
	RKProductCreated = "catalog.product.created"
	RKProductUpdated = "catalog.product.updated"
	RKProductDeleted = "catalog.product.deleted"
	RKCouponCreated  = "coupon.created"
	RKCouponDeleted  = "coupon.deleted"
	RKOrderCompleted = "order.completed"
)

// Publisher is what the API layer depends on. A nil Publisher is
// valid: the binary runs without a broker and callers skip publishing.
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
	Close()
}

// ProductPayload announces an admin catalog change.
type ProductPayload struct {
	ID string `json:"id"`
}

// CouponPayload announces an admin coupon change.
type CouponPayload struct {
	Code string `json:"code"`
}

// OrderCompletedPayload announces a finished checkout.
type OrderCompletedPayload struct {
	OrderNumber         string `json:"order_number"`
	TotalBeforeDiscount int64  `json:"total_before_discount"`
	TotalAfterDiscount  int64  `json:"total_after_discount"`
	CouponCode          string `json:"coupon_code,omitempty"`
}
