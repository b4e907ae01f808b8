package initializers

import (
	"log"

	"github.com/solemart/storefront-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{})
	log.Println("Database synced successfully.")
}
