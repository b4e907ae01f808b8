package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is the authoritative catalog record. Stock is the available
// quantity the cart service checks against; only inventory management
// writes to it.
type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required,gte=0"`
	Stock       int            `json:"stock" binding:"gte=0"`
	Category    string         `json:"category"`
	ImageUrl    string         `json:"imageUrl"`
	Gallery     datatypes.JSON `json:"gallery"`
}
