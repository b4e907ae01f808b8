package stores

import (
	"context"
	"sync"

	"github.com/solemart/storefront-api/models"
)

// In-memory store implementations backing the service tests and local
// development without a database. They honor the same contracts as the
// gorm stores, including the (nil, nil) not-found convention and the
// per-user ownership filters.

type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[int]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[int]models.Product)}
}

// Put inserts or replaces a product row. Test setup helper; inventory
// management is outside the cart service.
func (s *MemoryProductStore) Put(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[int(product.ID)] = product
}

func (s *MemoryProductStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

type MemoryCartStore struct {
	mu     sync.Mutex
	nextID uint
	lines  map[uint]models.CartItem
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{lines: make(map[uint]models.CartItem)}
}

func (s *MemoryCartStore) FindLine(ctx context.Context, userID, productID int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.UserID == userID && line.ProductID == productID {
			found := line
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryCartStore) FindLineByID(ctx context.Context, userID int, lineID uint) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[lineID]
	if !ok || line.UserID != userID {
		return nil, nil
	}
	found := line
	return &found, nil
}

func (s *MemoryCartStore) InsertLine(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	line := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	line.ID = s.nextID
	s.lines[line.ID] = line
	return &line, nil
}

func (s *MemoryCartStore) UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[lineID]
	if !ok {
		return nil
	}
	line.Quantity = quantity
	s.lines[lineID] = line
	return nil
}

func (s *MemoryCartStore) DeleteLine(ctx context.Context, lineID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lines, lineID)
	return nil
}

func (s *MemoryCartStore) DeleteAllLines(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, line := range s.lines {
		if line.UserID == userID {
			delete(s.lines, id)
		}
	}
	return nil
}

func (s *MemoryCartStore) ListLines(ctx context.Context, userID int) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []models.CartItem
	for id := uint(1); id <= s.nextID; id++ {
		if line, ok := s.lines[id]; ok && line.UserID == userID {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
