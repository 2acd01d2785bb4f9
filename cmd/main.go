package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/bitemanager/bitemanager-api/docs" // Import generated docs
	"github.com/bitemanager/bitemanager-api/internal/auth"
	"github.com/bitemanager/bitemanager-api/internal/config"
	"github.com/bitemanager/bitemanager-api/internal/controllers"
	"github.com/bitemanager/bitemanager-api/internal/database"
	"github.com/bitemanager/bitemanager-api/internal/middleware"
	"github.com/bitemanager/bitemanager-api/internal/models"
	"github.com/bitemanager/bitemanager-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                 *gorm.DB
	tokenIssuer        *auth.TokenIssuer
	foodService        services.FoodService
	purchaseService    services.PurchaseService
	userService        services.UserService
	authController     *controllers.AuthController
	userController     controllers.UserController
	foodController     controllers.FoodController
	purchaseController controllers.PurchaseController
	configuration      *config.Config
)

// @title BiteManager API
// @version 1.0
// @description Food marketplace backend
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	tokenIssuer = auth.NewTokenIssuer(configuration.JWTSecret)
	foodService = services.NewFoodService(db)
	purchaseService = services.NewPurchaseService(db)
	userService = services.NewUserService(db)
	authController = controllers.NewAuthController(tokenIssuer, configuration.IsProduction())
	userController = controllers.NewUserController(userService)
	foodController = controllers.NewFoodController(foodService)
	purchaseController = controllers.NewPurchaseController(purchaseService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server and block until a termination signal arrives
	runServer(router)
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %+v", conf)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	// Migrate the schema
	checkPanicErr(database.Migrate(db))

	// Seed only if the catalog is empty
	var count int64
	db.Model(&models.FoodItem{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with initial data
func seedDatabase() {
	log.Info("Seeding database with initial data")
	demo := models.Owner{Email: "kitchen@bitemanager.app", Name: "BiteManager Kitchen"}
	foods := []models.FoodItem{
		{Name: "Margherita Slice", Price: 4.50, Description: "Tomato, mozzarella, basil", Quantity: 40, AddedBy: demo},
		{Name: "Chicken Biryani", Price: 9.99, Description: "Fragrant rice with spiced chicken", Quantity: 25, AddedBy: demo},
		{Name: "Veggie Ramen", Price: 8.25, Description: "Miso broth, tofu, seasonal greens", Quantity: 30, AddedBy: demo},
	}
	for _, food := range foods {
		db.Create(&food)
	}
	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Credentialed CORS for the browser front-end
	router.Use(cors.New(cors.Config{
		AllowOrigins:     configuration.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Session credential endpoints
	router.POST("/jwt", authController.IssueToken)
	router.POST("/logout", authController.Logout)

	// User endpoints
	router.POST("/users", userController.CreateUser)
	router.GET("/users", middleware.CookieAuth(tokenIssuer), userController.GetUsers)

	// Food listing endpoints
	router.GET("/food/:id", foodController.GetFoodByID)
	router.GET("/foodsCount", foodController.GetFoodsCount)
	authed := router.Group("/")
	authed.Use(middleware.CookieAuth(tokenIssuer))
	{
		authed.GET("/foods", middleware.RequireOwnEmail(), foodController.GetFoods)
		authed.POST("/foods", foodController.CreateFood)
		authed.PUT("/foods/:id", foodController.UpdateFood)

		// Purchase workflow endpoints
		authed.GET("/purchase", middleware.RequireOwnEmail(), purchaseController.GetPurchases)
		authed.GET("/purchase/:id", purchaseController.GetPurchaseByID)
		authed.POST("/purchase", purchaseController.CreatePurchase)
		authed.DELETE("/purchase/:id", purchaseController.DeletePurchase)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// runServer starts the HTTP server and shuts it down cleanly on
// SIGINT/SIGTERM, closing the database connection last
func runServer(router *gin.Engine) {
	server := &http.Server{
		Addr:    fmt.Sprintf("%v:%d", configuration.Host, configuration.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Termination signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}

	if err := database.Close(db); err != nil {
		log.WithError(err).Error("Database close failed")
	}
	log.Info("Server stopped")
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "bitemanager-api",
	})
}
