package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
)

// Persistence contracts consumed by the cart and checkout services. The
// mongo implementations live in the store package; tests substitute struct
// mocks. When a store method runs inside a transaction, the transactional
// session travels in ctx.

type CartStore interface {
	// GetByUser returns ErrCartNotFound when the user has no cart.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
}

type OrderStore interface {
	// Insert persists a new order and fills in its ID.
	Insert(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
}

type CouponStore interface {
	// GetByCode returns ErrNotFound when no coupon matches the
	// (already-normalized) code.
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type ProductStore interface {
	// GetByID returns ErrNotFound when the product does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// TxRunner scopes a unit of work to one transaction: fn's writes commit
// together when fn returns nil and are all discarded when it returns an
// error. The transactional context passed to fn must be used for every
// store call inside the unit.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PaymentResult is the processor's verdict on a charge attempt. The failure
// reason is opaque to this core.
type PaymentResult struct {
	Success   bool
	Reference string
}

// PaymentProcessor charges the payable amount of a pending order.
type PaymentProcessor interface {
	Process(ctx context.Context, order *models.Order) (PaymentResult, error)
}
