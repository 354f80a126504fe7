// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"go-commerce/controllers"
	"go-commerce/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	categoryController *controllers.CategoryController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	couponController *controllers.CouponController,
) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/verify", userController.VerifyEmail).Methods("GET")
	router.HandleFunc("/forgot-password", userController.ForgotPassword).Methods("GET")
	router.HandleFunc("/reset-password/{token}", userController.ResetPassword).Methods("POST")

	// Catalog routes (public reads)
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/categories", categoryController.GetCategories).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")

	// Cart routes
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart/{product_id}", cartController.RemoveFromCart).Methods("DELETE")
	protected.HandleFunc("/cart", cartController.EmptyCart).Methods("DELETE")

	// Order routes
	protected.HandleFunc("/checkout", orderController.CheckoutCart).Methods("POST")
	protected.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", orderController.GetOrder).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/categories", categoryController.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", categoryController.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", categoryController.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/coupons", couponController.CreateCoupon).Methods("POST")
	admin.HandleFunc("/coupons", couponController.GetCoupons).Methods("GET")
	admin.HandleFunc("/coupons/{id}", couponController.GetCoupon).Methods("GET")
	admin.HandleFunc("/coupons/{id}", couponController.UpdateCoupon).Methods("PUT")
	admin.HandleFunc("/coupons/{id}", couponController.DeleteCoupon).Methods("DELETE")
	admin.HandleFunc("/orders/{id}/status", orderController.UpdateOrderStatus).Methods("PATCH")
}
