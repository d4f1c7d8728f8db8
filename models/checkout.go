package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutEvent is published after a checkout has committed.
type CheckoutEvent struct {
	Event     string     `json:"event"` // "checkout.completed"
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}
