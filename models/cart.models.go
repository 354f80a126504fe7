package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart status values. A cart is never deleted: it is drained and moved to
// CHECKOUT when an order is placed.
const (
	CartStatusActive   = "ACTIVE"
	CartStatusCheckout = "CHECKOUT"
)

// CartItem represents a single line in a cart. LineTotal is always
// Quantity * UnitPrice and is recomputed on every quantity change.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unit_price" json:"unit_price"`
	LineTotal float64            `bson:"line_total" json:"line_total"`
}

// Cart represents a user's shopping cart. TotalQuantity and TotalPrice are
// derived from Items and must be recomputed before every persistence.
type Cart struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items         []CartItem         `bson:"items" json:"items"`
	TotalQuantity int                `bson:"total_quantity" json:"total_quantity"`
	TotalPrice    float64            `bson:"total_price" json:"total_price"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
