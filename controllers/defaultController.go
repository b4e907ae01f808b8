package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Solemart storefront API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

PRODUCT
- GET "/product" - List products (supports ?page, ?limit, ?search, ?category)
- GET "/product/{id}" - Get product by ID
- POST "/product" - Create new product (admin)

CART (requires Authorization: Bearer <token>)
- GET "/cart" - Get the cart with live prices and total
- POST "/cart/items" - Add a product to the cart (cumulative)
- PATCH "/cart/items/{itemId}" - Set a cart item's quantity
- DELETE "/cart/items/{itemId}" - Remove a cart item
- DELETE "/cart" - Clear the cart`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
