package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront-api/controllers"
	"github.com/solemart/storefront-api/middlewares"
)

func CartRoutes(server *gin.Engine, controller *controllers.CartController) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controller.GetCart)
		cart.DELETE("", controller.ClearCart)
		cart.POST("/items", controller.AddToCart)
		cart.PATCH("/items/:itemId", controller.UpdateCartItem)
		cart.DELETE("/items/:itemId", controller.RemoveFromCart)
	}
}
