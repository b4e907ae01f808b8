package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/solemart/storefront-api/models"
)

// ProductStore is the authoritative catalog. Read-only from here; the
// cart service never writes product rows.
type ProductStore interface {
	// GetProduct returns (nil, nil) when no such product exists.
	GetProduct(ctx context.Context, id int) (*models.Product, error)
}

// CartStore holds per-user cart lines. Every query that touches a line
// carries the owning user's id, so one user's request can never read or
// mutate another user's lines.
type CartStore interface {
	// FindLine and FindLineByID return (nil, nil) when no matching line
	// exists for that user.
	FindLine(ctx context.Context, userID, productID int) (*models.CartItem, error)
	FindLineByID(ctx context.Context, userID int, lineID uint) (*models.CartItem, error)
	InsertLine(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error)
	UpdateLineQuantity(ctx context.Context, lineID uint, quantity int) error
	DeleteLine(ctx context.Context, lineID uint) error
	DeleteAllLines(ctx context.Context, userID int) error
	ListLines(ctx context.Context, userID int) ([]models.CartItem, error)
}

const lockStripes = 64

// CartService applies the cart mutation rules against injected stores.
// Check-then-write sequences run under a per-(user, product) lock so two
// concurrent adds cannot both pass a stale stock check and together
// overshoot the available quantity.
type CartService struct {
	products ProductStore
	carts    CartStore
	locks    [lockStripes]sync.Mutex
}

func NewCartService(products ProductStore, carts CartStore) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
	}
}

func (s *CartService) lineLock(userID, productID int) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%d", userID, productID)
	return &s.locks[h.Sum32()%lockStripes]
}

// GetCart returns the user's lines joined with live product data plus
// the recomputed total. No side effects.
func (s *CartService) GetCart(ctx context.Context, userID int) (models.Cart, error) {
	return s.buildCart(ctx, userID)
}

// AddToCart is cumulative: an add for a product already in the cart
// replaces the line's quantity with existing + requested. The combined
// quantity must not exceed current stock; on any failure nothing is
// written.
func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, &ValidationError{Reason: "quantity must be a positive integer"}
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return models.Cart{}, &LookupError{Op: "product lookup", Err: err}
	}
	if product == nil {
		return models.Cart{}, &NotFoundError{Resource: "product"}
	}

	lock := s.lineLock(userID, productID)
	lock.Lock()
	defer lock.Unlock()

	line, err := s.carts.FindLine(ctx, userID, productID)
	if err != nil {
		return models.Cart{}, &LookupError{Op: "cart line lookup", Err: err}
	}

	newQuantity := quantity
	if line != nil {
		newQuantity = line.Quantity + quantity
	}
	if newQuantity > product.Stock {
		return models.Cart{}, &InsufficientStockError{
			ProductID: productID,
			Requested: newQuantity,
			Available: product.Stock,
		}
	}

	if line == nil {
		if _, err := s.carts.InsertLine(ctx, userID, productID, quantity); err != nil {
			return models.Cart{}, &LookupError{Op: "cart line insert", Err: err}
		}
	} else {
		if err := s.carts.UpdateLineQuantity(ctx, line.ID, newQuantity); err != nil {
			return models.Cart{}, &LookupError{Op: "cart line update", Err: err}
		}
	}

	return s.buildCart(ctx, userID)
}

// UpdateCartItem sets the line's quantity to exactly the given value.
// Zero and negative quantities are rejected, never treated as removal.
func (s *CartService) UpdateCartItem(ctx context.Context, userID int, lineID uint, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, &ValidationError{Reason: "quantity must be a positive integer"}
	}

	line, err := s.carts.FindLineByID(ctx, userID, lineID)
	if err != nil {
		return models.Cart{}, &LookupError{Op: "cart line lookup", Err: err}
	}
	if line == nil {
		return models.Cart{}, &NotFoundError{Resource: "cart item"}
	}

	product, err := s.products.GetProduct(ctx, line.ProductID)
	if err != nil {
		return models.Cart{}, &LookupError{Op: "product lookup", Err: err}
	}
	if product == nil {
		return models.Cart{}, &NotFoundError{Resource: "product"}
	}

	lock := s.lineLock(userID, line.ProductID)
	lock.Lock()
	defer lock.Unlock()

	if quantity > product.Stock {
		return models.Cart{}, &InsufficientStockError{
			ProductID: line.ProductID,
			Requested: quantity,
			Available: product.Stock,
		}
	}

	if err := s.carts.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
		return models.Cart{}, &LookupError{Op: "cart line update", Err: err}
	}

	return s.buildCart(ctx, userID)
}

// RemoveFromCart deletes the line if the user owns it. Removing a line
// that does not exist succeeds, so retries are harmless.
func (s *CartService) RemoveFromCart(ctx context.Context, userID int, lineID uint) (models.Cart, error) {
	line, err := s.carts.FindLineByID(ctx, userID, lineID)
	if err != nil {
		return models.Cart{}, &LookupError{Op: "cart line lookup", Err: err}
	}
	if line != nil {
		if err := s.carts.DeleteLine(ctx, line.ID); err != nil {
			return models.Cart{}, &LookupError{Op: "cart line delete", Err: err}
		}
	}
	return s.buildCart(ctx, userID)
}

// ClearCart deletes every line for the user. Idempotent. It returns no
// cart body; callers re-fetch if they need the cart shape.
func (s *CartService) ClearCart(ctx context.Context, userID int) error {
	if err := s.carts.DeleteAllLines(ctx, userID); err != nil {
		return &LookupError{Op: "cart clear", Err: err}
	}
	return nil
}

// buildCart joins the user's lines with current product rows and sums
// quantity * current price. Lines whose product has since been removed
// from the catalog are omitted from the view.
func (s *CartService) buildCart(ctx context.Context, userID int) (models.Cart, error) {
	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		return models.Cart{}, &LookupError{Op: "cart read", Err: err}
	}

	cart := models.Cart{Items: []models.CartEntry{}}
	for _, line := range lines {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return models.Cart{}, &LookupError{Op: "product lookup", Err: err}
		}
		if product == nil {
			continue
		}
		cart.Items = append(cart.Items, models.CartEntry{
			ID:       line.ID,
			Quantity: line.Quantity,
			Product:  *product,
		})
		cart.Total += float64(line.Quantity) * product.Price
	}
	return cart, nil
}
