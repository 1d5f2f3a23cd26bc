package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"storefront/app/echo-server/router"
	"storefront/business/category"
	"storefront/business/games"
	"storefront/business/orders"
	"storefront/business/product"
	userService "storefront/business/user"
	"storefront/internal/middleware"
	"storefront/internal/repository/freetogame"
	psqlRepo "storefront/internal/repository/postgres"
	"storefront/internal/rest"
	"storefront/internal/soap"
	"storefront/pkg/config"
	"storefront/pkg/database"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/validation"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	// Prices and totals are JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	catalogRepo := freetogame.NewFreeToGameRepository(freetogame.FreeToGameConfig{
		BaseURL: cfg.Games.BaseURL,
		Timeout: cfg.Games.Timeout,
	})

	// Init validate
	validate := validation.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	transactor := psqlRepo.NewTransactor(db)

	// Init service
	userService := userService.NewUserService(userRepo, validate)
	ordersService := orders.NewOrdersService(ordersRepo, productsRepo, userRepo, transactor, validate)
	productService := product.NewProductService(productsRepo, categoryRepo, validate)
	categoryService := category.NewCategoryService(categoryRepo, validate)
	gamesService := games.NewGamesService(catalogRepo, rand.New(rand.NewSource(cfg.Games.PriceSeed)))

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	gamesHandler := rest.NewGamesHandler(gamesService)
	soapHandler := soap.NewHandler(productService)
	healthHandler := rest.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	middleware.Use(e, cfg.Server.AllowedOrigins)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetOrdersRoutes(api, ordersHandler)
	router.SetupProductRoutes(api, productHandler)
	router.SetupCategoryRoutes(api, categoryHandler)
	router.SetGamesRoutes(api, gamesHandler)
	router.SetSoapRoutes(e, soapHandler)
	router.SetOpsRoutes(e, healthHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	closeDB(db)

	logger.Info("Server stopped")
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}
