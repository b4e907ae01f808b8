package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/solemart/storefront-api/models"
	"github.com/solemart/storefront-api/services"
)

const (
	msgInvalidItemID    = "invalid cart item id"
	msgCartCleared      = "Cart cleared"
	msgCartStoreFailure = "Failed to reach the cart store"
)

type CartController struct {
	carts *services.CartService
}

// authenticatedUserID reads the user id the auth middleware verified.
// Cart handlers trust this value as-is; it is the only user id they use.
func authenticatedUserID(ctx *gin.Context) int {
	claims := ctx.MustGet("user").(jwt.MapClaims)
	id, _ := claims["user_id"].(float64)
	return int(id)
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// cartError maps the service error taxonomy onto HTTP status classes:
// validation 400, not found 404, insufficient stock 409, store failure 500.
func cartError(ctx *gin.Context, err error) {
	var validation *services.ValidationError
	var notFound *services.NotFoundError
	var stock *services.InsufficientStockError

	switch {
	case errors.As(err, &validation):
		sendErrorResponse(ctx, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		sendErrorResponse(ctx, http.StatusNotFound, notFound.Error())
	case errors.As(err, &stock):
		sendJSONResponse(ctx, http.StatusConflict, gin.H{
			"message":   stock.Error(),
			"available": stock.Available,
		})
	default:
		log.Println("Cart store error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartStoreFailure)
	}
}

func (c *CartController) GetCart(ctx *gin.Context) {
	cart, err := c.carts.GetCart(ctx.Request.Context(), authenticatedUserID(ctx))
	if err != nil {
		cartError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": cart.Items, "total": cart.Total})
}

func (c *CartController) AddToCart(ctx *gin.Context) {
	var input models.AddToCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart, err := c.carts.AddToCart(ctx.Request.Context(), authenticatedUserID(ctx), input.ProductID, input.Quantity)
	if err != nil {
		cartError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": cart.Items, "total": cart.Total})
}

func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidItemID)
		return
	}

	var input models.UpdateCartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart, err := c.carts.UpdateCartItem(ctx.Request.Context(), authenticatedUserID(ctx), uint(itemID), input.Quantity)
	if err != nil {
		cartError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": cart.Items, "total": cart.Total})
}

func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidItemID)
		return
	}

	cart, err := c.carts.RemoveFromCart(ctx.Request.Context(), authenticatedUserID(ctx), uint(itemID))
	if err != nil {
		cartError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": cart.Items, "total": cart.Total})
}

// ClearCart answers with a bare confirmation rather than the emptied
// cart; callers re-fetch when they need the cart shape.
func (c *CartController) ClearCart(ctx *gin.Context) {
	if err := c.carts.ClearCart(ctx.Request.Context(), authenticatedUserID(ctx)); err != nil {
		cartError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartCleared})
}
