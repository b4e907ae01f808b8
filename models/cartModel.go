package models

import "gorm.io/gorm"

// CartItem is one persisted cart line. The composite unique index keeps
// at most one line per (user, product); adds for an existing pair fold
// into the existing line instead of creating a second one.
type CartItem struct {
	gorm.Model
	UserID    int `json:"userId" gorm:"index;uniqueIndex:idx_user_product"`
	ProductID int `json:"productId" gorm:"uniqueIndex:idx_user_product"`
	Quantity  int `json:"quantity"`
}

// CartEntry is a cart line joined with live product data for responses.
type CartEntry struct {
	ID       uint    `json:"id"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

// Cart is derived, never persisted. Total is recomputed from current
// product prices on every read, so a price change shows up on the next
// fetch without any cart mutation.
type Cart struct {
	Items []CartEntry `json:"items"`
	Total float64     `json:"total"`
}

// AddToCartInput is the request body for adding a product to the cart.
type AddToCartInput struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemInput is the request body for setting a line's quantity.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}
