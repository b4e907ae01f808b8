package stores

import (
	"context"
	"errors"

	"github.com/solemart/storefront-api/models"
	"gorm.io/gorm"
)

// GormProductStore reads catalog rows from MySQL.
type GormProductStore struct {
	db *gorm.DB
}

func NewGormProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

func (s *GormProductStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	result := s.db.WithContext(ctx).First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &product, nil
}
