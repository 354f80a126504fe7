package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon represents a discount rule: a percentage off the cart total with an
// optional absolute cap. Codes are stored uppercase and are unique.
type Coupon struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code            string             `bson:"code" json:"code"`
	DiscountPercent float64            `bson:"discount_percent" json:"discount_percent"`
	MaxDiscount     float64            `bson:"max_discount" json:"max_discount"`
	Expiry          time.Time          `bson:"expiry" json:"expiry"`
	IsActive        bool               `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
