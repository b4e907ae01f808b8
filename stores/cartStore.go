package stores

import (
	"context"
	"errors"

	"github.com/solemart/storefront-api/models"
	"gorm.io/gorm"
)

// GormCartStore persists cart lines in MySQL. Every query filters on the
// owning user's id; there is no path that touches another user's lines.
type GormCartStore struct {
	db *gorm.DB
}

func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

func (s *GormCartStore) FindLine(ctx context.Context, userID, productID int) (*models.CartItem, error) {
	var line models.CartItem
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&line)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &line, nil
}

func (s *GormCartStore) FindLineByID(ctx context.Context, userID int, lineID uint) (*models.CartItem, error) {
	var line models.CartItem
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&line)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &line, nil
}

func (s *GormCartStore) InsertLine(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	line := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if result := s.db.WithContext(ctx).Create(&line); result.Error != nil {
		return nil, result.Error
	}
	return &line, nil
}

func (s *GormCartStore) UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) error {
	return s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

// Deletes are hard deletes. A soft-deleted row would still occupy the
// (user_id, product_id) unique index and block re-adding the product.
func (s *GormCartStore) DeleteLine(ctx context.Context, lineID uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&models.CartItem{}, lineID).Error
}

func (s *GormCartStore) DeleteAllLines(ctx context.Context, userID int) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

func (s *GormCartStore) ListLines(ctx context.Context, userID int) ([]models.CartItem, error) {
	var lines []models.CartItem
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines)
	if result.Error != nil {
		return nil, result.Error
	}
	return lines, nil
}
