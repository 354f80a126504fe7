package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
)

var ErrCacheMiss = errors.New("cart not found in cache")

// CartCache is a read-through cache over the cart store. A miss is reported
// as ErrCacheMiss; any other error means the cache itself failed and callers
// fall back to the store.
type CartCache interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Set(ctx context.Context, userID primitive.ObjectID, cart *models.Cart) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
}
