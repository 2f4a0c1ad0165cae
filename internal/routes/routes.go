package routes

import (
	"github.com/gin-gonic/gin"

	"elvara_back_end/internal/handlers"
	"elvara_back_end/internal/handlers/admin"
	"elvara_back_end/internal/handlers/order"
	"elvara_back_end/internal/handlers/product"
	"elvara_back_end/internal/handlers/user"
	"elvara_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	api.GET("/health", handlers.Health)

	// Auth
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
	auth.POST("/login", middleware.LoginRateLimit(), user.Login)
	auth.GET("/me", middleware.AuthRequired(), user.Me)

	// Catalogue (public)
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", middleware.SearchRateLimit(), product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)

	// Panier (session authentifiée)
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", user.GetCart)
	cart.POST("/add", middleware.CartRateLimit(), user.AddToCart)
	cart.PUT("/quantity", user.UpdateCartQuantity)
	cart.DELETE("/item/:cartItemId", user.RemoveFromCart)
	cart.DELETE("/clear", user.ClearCart)

	// Commandes
	ordersGroup := api.Group("/orders", middleware.AuthRequired())
	ordersGroup.POST("", order.CreateOrder)
	ordersGroup.GET("/my", order.GetMyOrders)

	// Console admin
	ordersGroup.GET("", middleware.RequireAdmin, admin.ListOrders)
	ordersGroup.GET("/:id", middleware.RequireAdmin, admin.GetOrder)
	ordersGroup.PUT("/:id/status", middleware.RequireAdmin, admin.UpdateOrderStatus)
	ordersGroup.GET("/:id/invoice", middleware.RequireAdmin, admin.OrderInvoice)

	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	adminGroup.GET("/orders/live", admin.LiveOrders)
	adminGroup.POST("/products", product.CreateProduct)
	adminGroup.PUT("/products/:id", product.UpdateProduct)
	adminGroup.DELETE("/products/:id", product.DeleteProduct)
}
