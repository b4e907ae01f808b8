package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solemart/storefront-api/controllers"
	"github.com/solemart/storefront-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
	server.POST("/product", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateProduct)
}
