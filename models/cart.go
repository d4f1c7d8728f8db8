package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem holds a snapshot of the product taken when it was added,
// plus a positive quantity. At most one item per product ID per cart.
type CartItem struct {
	Product  Product `json:"product" bson:"product"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Cart is the per-user aggregate, keyed by user ID. Checkout empties
// Items but never deletes the document.
type Cart struct {
	ID        uuid.UUID  `json:"id" bson:"_id"`
	UserID    uuid.UUID  `json:"user_id" bson:"user_id"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Total is the sum of stored unit prices times quantities.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}
