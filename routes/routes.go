package routes

import (
	"store-service/controllers"
	"store-service/middleware"
	"store-service/services"

	"github.com/gin-gonic/gin"
)

// Register wires the auth and cart route groups onto the engine.
func Register(
	r *gin.Engine,
	authController *controllers.AuthController,
	cartController *controllers.CartController,
	tokens *services.TokenService,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(tokens))
	{
		users.POST("/address", authController.AddAddress)
	}

	// Cart routes require a valid access token
	cart := r.Group("/cart")
	cart.Use(middleware.AuthMiddleware(tokens))
	{
		cart.GET("/", cartController.GetCart)
		cart.POST("/add", cartController.AddItem)
		cart.PUT("/update", cartController.UpdateItem)
		cart.DELETE("/remove/:product_id", cartController.RemoveItem)
		cart.POST("/checkout", cartController.Checkout)
	}
}
