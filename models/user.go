package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account document. WalletMoney is debited by checkout.
type User struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	Password    string    `json:"-" bson:"password"`
	Name        string    `json:"name" bson:"name"`
	WalletMoney float64   `json:"wallet_money" bson:"wallet_money"`
	Addresses   []Address `json:"addresses" bson:"addresses"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Address is a shipping address embedded in the user document.
// New accounts get a placeholder marked Default; checkout requires
// at least one address the user actually set.
type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
	Default    bool   `json:"default" bson:"default"`
}
