package main

import (
	"log"
	"time"

	"food_ordering/internal/config"
	"food_ordering/internal/database"
	"food_ordering/internal/handlers"
	"food_ordering/internal/middleware"
	"food_ordering/internal/migrations"
	"food_ordering/internal/redis"
	"food_ordering/internal/repository"
	"food_ordering/internal/services"
	"food_ordering/pkg/imagestore"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis (carts + checkout idempotency keys)
	redisClient, err := redis.Initialize(
		cfg.RedisURL,
		time.Duration(cfg.CartTTL)*time.Second,
		time.Duration(cfg.IdempotencyTTL)*time.Second,
	)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize image storage client
	imageClient := imagestore.NewClient(cfg.ImageStoreURL, cfg.ImageStoreBucket, cfg.ImageStoreKey)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Second)
	menuService := services.NewMenuService(menuRepo)
	cartService := services.NewCartService(redisClient, menuRepo)
	checkoutService := services.NewCheckoutService(menuRepo, orderRepo, cartService, redisClient)
	orderService := services.NewOrderService(orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	menuHandler := handlers.NewMenuHandler(menuService, imageClient)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	customerHandler := handlers.NewCustomerHandler(userService)

	// Setup routes
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public endpoints
	router.POST("/auth/signup", authHandler.SignUp)
	router.POST("/auth/signin", authHandler.SignIn)
	router.GET("/menu", menuHandler.GetMenu)

	// Authenticated customer endpoints
	api := router.Group("/", middleware.RequireAuth(cfg.JWTSecret))
	{
		api.GET("/cart", cartHandler.GetCart)
		api.PUT("/cart/item", cartHandler.SetItem)
		api.DELETE("/cart", cartHandler.ClearCart)
		api.POST("/checkout", cartHandler.Checkout)

		api.GET("/orders", orderHandler.GetMyOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.DELETE("/orders/:id", orderHandler.DeleteOrder)
	}

	// Admin endpoints
	admin := router.Group("/admin", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/menu", menuHandler.GetFullMenu)
		admin.POST("/menu", menuHandler.CreateItem)
		admin.PUT("/menu/:id", menuHandler.UpdateItem)
		admin.DELETE("/menu/:id", menuHandler.DeleteItem)
		admin.POST("/menu/:id/image", menuHandler.UploadImage)

		admin.GET("/orders", orderHandler.GetAllOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		admin.GET("/customers", customerHandler.GetCustomers)
		admin.PUT("/customers/:id/status", customerHandler.UpdateCustomerStatus)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
