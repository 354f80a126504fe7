// main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"go-commerce/cache"
	"go-commerce/config"
	"go-commerce/controllers"
	"go-commerce/middleware"
	"go-commerce/routes"
	"go-commerce/services"
	"go-commerce/store"
	"go-commerce/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	logger := utils.NewLogger()
	cfg := config.Load()

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JwtSecret)

	// Connect to MongoDB
	client, err := store.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	db := store.Database(client)

	// Stores and indexes
	cartStore := store.NewCartStore(db)
	orderStore := store.NewOrderStore(db)
	couponStore := store.NewCouponStore(db)
	productStore := store.NewProductStore(db)
	if err := cartStore.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("cart index creation failed")
	}
	if err := couponStore.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("coupon index creation failed")
	}

	// Cart cache
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	cartCache := cache.NewRedisCache(redisClient)

	// Services
	emailService := utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailSender)
	couponEvaluator := services.NewCouponEvaluator(couponStore)
	txRunner := store.NewMongoTxRunner(client)
	checkoutService := services.NewCheckoutService(
		cartStore, orderStore, couponEvaluator, services.SandboxProcessor{},
		txRunner, cartCache, logger, cfg.Currency, cfg.PaymentTimeout,
	)
	cartService := services.NewCartService(cartStore, productStore, cartCache, logger)

	// Controllers
	userController := controllers.NewUserController(db, emailService, logger)
	productController := controllers.NewProductController(db)
	categoryController := controllers.NewCategoryController(db)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(checkoutService, orderStore, db, emailService, logger)
	couponController := controllers.NewCouponController(couponStore)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.LoggerMiddleware(logger))
	routes.RegisterRoutes(router, userController, productController, categoryController,
		cartController, orderController, couponController)

	// Start the server
	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
