// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-commerce/middleware"
	"go-commerce/models"
	"go-commerce/services"
	"go-commerce/store"
	"go-commerce/utils"
)

// OrderController handles checkout and order queries.
type OrderController struct {
	Checkout       *services.CheckoutService
	Orders         *store.MongoOrderStore
	UserCollection *mongo.Collection
	EmailService   *utils.EmailService
	Logger         zerolog.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(
	checkout *services.CheckoutService,
	orders *store.MongoOrderStore,
	db *mongo.Database,
	emailService *utils.EmailService,
	logger zerolog.Logger,
) *OrderController {
	return &OrderController{
		Checkout:       checkout,
		Orders:         orders,
		UserCollection: db.Collection("users"),
		EmailService:   emailService,
		Logger:         logger,
	}
}

type checkoutRequest struct {
	CouponCode string `json:"coupon_code"`
}

// CheckoutCart converts the user's active cart into a completed order. The
// coupon code is optional; an empty body means checkout without a coupon.
func (oc *OrderController) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, services.ErrInvalidInput)
			return
		}
	}

	order, err := oc.Checkout.Checkout(r.Context(), userID, req.CouponCode)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	// Confirmation email is best-effort and happens after the transaction
	// has committed; a mail failure never fails the checkout.
	go oc.sendConfirmation(userID, order)

	utils.RespondJSON(w, http.StatusOK, order, "Order placed successfully")
}

func (oc *OrderController) sendConfirmation(userID primitive.ObjectID, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		oc.Logger.Warn().Err(err).Str("user_id", userID.Hex()).Msg("confirmation email: user lookup failed")
		return
	}
	if err := oc.EmailService.SendOrderConfirmationEmail(user.Email, order); err != nil {
		oc.Logger.Warn().Err(err).Str("email", user.Email).Msg("confirmation email failed")
	}
}

// GetOrder retrieves a single order. Users can only read their own orders;
// admins can read any.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	order, err := oc.Orders.GetByID(r.Context(), orderID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	if claims.Role != models.RoleAdmin && order.UserID.Hex() != claims.UserID {
		utils.RespondError(w, services.ErrNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, order, "Order retrieved successfully!")
}

// GetOrders lists orders for the authenticated user, newest first. Admins
// see all orders.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	var userFilter *primitive.ObjectID
	if claims.Role != models.RoleAdmin {
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userFilter = &userID
	}

	orders, total, err := oc.Orders.FindPage(r.Context(), userFilter, page, limit)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	if total == 0 {
		utils.RespondJSON(w, http.StatusOK, []models.Order{}, "No orders found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": paginationInfo(total, page, limit),
	}, "Orders retrieved successfully")
}

// UpdateOrderStatus allows an admin to update an order's status. The
// checkout core itself never cancels a pending order; this is the only
// surface for COMPLETED -> CANCELLED.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=COMPLETED CANCELLED"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	order, err := oc.Orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, order, "Order updated successfully")
}
