package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
	"go-commerce/services"
	"go-commerce/store"
	"go-commerce/utils"
)

// CouponController handles coupon administration (Admin only routes).
type CouponController struct {
	Coupons *store.MongoCouponStore
}

// NewCouponController creates a new CouponController
func NewCouponController(coupons *store.MongoCouponStore) *CouponController {
	return &CouponController{Coupons: coupons}
}

type couponRequest struct {
	Code            string  `json:"code" validate:"required"`
	DiscountPercent float64 `json:"discount_percent" validate:"required,gt=0,lte=100"`
	MaxDiscount     float64 `json:"max_discount" validate:"gte=0"`
	Expiry          string  `json:"expiry" validate:"required"`
	IsActive        *bool   `json:"is_active"`
}

// CreateCoupon creates a new coupon. Codes are stored uppercase and must be
// unique.
func (cc *CouponController) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	expiry, err := time.Parse("2006-01-02", req.Expiry)
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := models.Coupon{
		Code:            strings.ToUpper(req.Code),
		DiscountPercent: req.DiscountPercent,
		MaxDiscount:     req.MaxDiscount,
		Expiry:          expiry,
		IsActive:        isActive,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := cc.Coupons.Insert(r.Context(), &coupon); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, coupon, "Coupon created successfully")
}

// UpdateCoupon updates an existing coupon
func (cc *CouponController) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	coupon, err := cc.Coupons.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	if req.Code != "" {
		coupon.Code = strings.ToUpper(req.Code)
	}
	if req.DiscountPercent > 0 {
		coupon.DiscountPercent = req.DiscountPercent
	}
	if req.MaxDiscount > 0 {
		coupon.MaxDiscount = req.MaxDiscount
	}
	if req.Expiry != "" {
		expiry, err := time.Parse("2006-01-02", req.Expiry)
		if err != nil {
			utils.RespondError(w, services.ErrInvalidInput)
			return
		}
		coupon.Expiry = expiry
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	coupon.UpdatedAt = time.Now()

	if err := cc.Coupons.Update(r.Context(), coupon); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, coupon, "Coupon updated successfully")
}

// DeleteCoupon deletes a coupon
func (cc *CouponController) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	if err := cc.Coupons.Delete(r.Context(), id); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "Coupon deleted successfully!")
}

// GetCoupons lists all coupons
func (cc *CouponController) GetCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := cc.Coupons.FindAll(r.Context())
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, coupons, "Coupons retrieved successfully!")
}

// GetCoupon retrieves a single coupon
func (cc *CouponController) GetCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, services.ErrInvalidInput)
		return
	}

	coupon, err := cc.Coupons.GetByID(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, coupon, "Coupon retrieved successfully")
}
