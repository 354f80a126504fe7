package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address represents a user's address for delivery
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipcode" json:"zipcode"`
}

// User represents a user in the system
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password,omitempty" json:"-"`
	Address             Address            `bson:"address" json:"address"`
	Role                string             `bson:"role" json:"role"`
	IsVerified          bool               `bson:"is_verified" json:"is_verified"`
	VerificationToken   string             `bson:"verification_token,omitempty" json:"-"`
	ForgotPasswordToken string             `bson:"forgot_password_token,omitempty" json:"-"`
	ForgotPasswordExp   time.Time          `bson:"forgot_password_expiry,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}
