package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/services"
	"go-commerce/utils"
)

// CartController handles cart-related requests. All cart logic lives in the
// cart service; handlers only translate HTTP to service calls.
type CartController struct {
	Carts *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddToCart adds a product to the user's cart, creating the cart on first
// use. Adding an existing product increments its quantity.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	cart, err := cc.Carts.AddToCart(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart, "Cart updated successfully")
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := cc.Carts.GetCart(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart, "Cart retrieved successfully")
}

// RemoveFromCart removes a product from the user's cart. Removing a product
// that is not in the cart returns the cart unchanged.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["product_id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	cart, err := cc.Carts.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart, "Product removed from cart successfully")
}

// EmptyCart drains the user's cart
func (cc *CartController) EmptyCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cart, err := cc.Carts.EmptyCart(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart, "Cart emptied successfully")
}
