package models

import "github.com/google/uuid"

// Product is read-only to this service; the catalog owns it.
type Product struct {
	ID       uuid.UUID `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Price    float64   `json:"price" bson:"price"`
	Images   []string  `json:"images,omitempty" bson:"images,omitempty"`
	Quantity int       `json:"quantity" bson:"quantity"`
}
