package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. PENDING orders only exist inside the checkout
// transaction; a persisted order is COMPLETED unless an admin cancels it.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order represents a user's order. Items are a snapshot of the cart at
// checkout time, not a reference to it.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items            []CartItem         `bson:"items" json:"items"`
	TotalQuantity    int                `bson:"total_quantity" json:"total_quantity"`
	TotalPrice       float64            `bson:"total_price" json:"total_price"`
	DiscountAmount   float64            `bson:"discount_amount" json:"discount_amount"`
	Currency         string             `bson:"currency" json:"currency"`
	Status           string             `bson:"status" json:"status"`
	PaymentReference string             `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// PayableAmount is the net amount charged for the order.
func (o *Order) PayableAmount() float64 {
	return o.TotalPrice - o.DiscountAmount
}
