package router

import (
	"storefront/internal/rest"
	"storefront/internal/soap"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("", handler.CreateUser)
	users.GET("", handler.GetAllUsers)
	users.GET("/:id", handler.GetUserByID)
	users.PUT("/:id", handler.ReplaceUser)
	users.PATCH("/:id", handler.PatchUser)
	users.DELETE("/:id", handler.DeleteUser)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct)
	products.PUT("/:id", handler.ReplaceProduct)
	products.PATCH("/:id", handler.PatchProduct)
	products.DELETE("/:id", handler.DeleteProduct)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler) {
	orders := api.Group("/orders")
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("", ordersHandler.GetAllOrders)
	orders.GET("/:id", ordersHandler.GetOrderByID)
	orders.PUT("/:id", ordersHandler.ReplaceOrder)
	orders.PATCH("/:id", ordersHandler.PatchOrder)
	orders.DELETE("/:id", ordersHandler.DeleteOrder)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory)
	categories.PUT("/:id", handler.ReplaceCategory)
	categories.DELETE("/:id", handler.DeleteCategory)
}

func SetGamesRoutes(api *echo.Group, handler *rest.GamesHandler) {
	api.GET("/f2p-games", handler.ListGames)
	api.GET("/f2p-games/:id", handler.GetGame)
	api.GET("/games", handler.SearchGames)
}

func SetSoapRoutes(e *echo.Echo, handler *soap.Handler) {
	e.GET("/soap/products", handler.WSDL)
	e.POST("/soap/products", handler.Serve)
}

func SetOpsRoutes(e *echo.Echo, health *rest.HealthHandler) {
	e.GET("/healthz", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
