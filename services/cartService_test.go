package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/solemart/storefront-api/models"
	"github.com/solemart/storefront-api/services"
	"github.com/solemart/storefront-api/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func product(id int, price float64, stock int) models.Product {
	p := models.Product{Name: "test product", Price: price, Stock: stock}
	p.ID = uint(id)
	return p
}

func newTestService(t *testing.T, products ...models.Product) (*services.CartService, *stores.MemoryProductStore) {
	t.Helper()
	productStore := stores.NewMemoryProductStore()
	for _, p := range products {
		productStore.Put(p)
	}
	return services.NewCartService(productStore, stores.NewMemoryCartStore()), productStore
}

func TestAddToCartCreatesLine(t *testing.T) {
	svc, _ := newTestService(t, product(1, 25.5, 10))

	cart, err := svc.AddToCart(context.Background(), 7, 1, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, uint(1), cart.Items[0].Product.ID)
	assert.InDelta(t, 76.5, cart.Total, 1e-9)
}

func TestAddToCartIsCumulative(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 7, 1, 3)
	require.NoError(t, err)
	cart, err := svc.AddToCart(ctx, 7, 1, 4)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "repeat adds must fold into one line")
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestAddToCartExactStockSucceeds(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 5))

	cart, err := svc.AddToCart(context.Background(), 7, 1, 5)
	require.NoError(t, err, "requested == available must succeed")
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCartInsufficientStockLeavesCartUnchanged(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 5))
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 7, 1, 3)
	require.NoError(t, err)

	before, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, 7, 1, 3)
	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	after, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed add must not partially apply")
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddToCart(context.Background(), 7, 99, 1)
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 5))

	for _, quantity := range []int{0, -1} {
		_, err := svc.AddToCart(context.Background(), 7, 1, quantity)
		var validation *services.ValidationError
		require.ErrorAs(t, err, &validation, "quantity %d", quantity)
	}
}

func TestUpdateCartItemSetsQuantityAbsolutely(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 7, 1, 3)
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = svc.UpdateCartItem(ctx, 7, lineID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity, "update is a set, not an add")
}

func TestUpdateCartItemRejectsZeroQuantity(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 7, 1, 3)
	require.NoError(t, err)

	_, err = svc.UpdateCartItem(ctx, 7, cart.Items[0].ID, 0)
	var validation *services.ValidationError
	require.ErrorAs(t, err, &validation, "zero is rejected, not treated as removal")

	cart, err = svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestUpdateCartItemInsufficientStock(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 5))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)

	_, err = svc.UpdateCartItem(ctx, 7, cart.Items[0].ID, 6)
	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
}

func TestUpdateCartItemOwnershipIsolation(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 1, 1, 3)
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	_, err = svc.UpdateCartItem(ctx, 2, lineID, 9)
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound, "foreign lines look nonexistent, never forbidden")

	cart, err = svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity, "owner's line must be untouched")
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 7, 1, 3)
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = svc.RemoveFromCart(ctx, 7, lineID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	cart, err = svc.RemoveFromCart(ctx, 7, lineID)
	require.NoError(t, err, "removing an absent line is success, not an error")
	assert.Empty(t, cart.Items)
}

func TestRemoveFromCartNeverTouchesOtherUsers(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 1, 1, 3)
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	_, err = svc.RemoveFromCart(ctx, 2, lineID)
	require.NoError(t, err)

	cart, err = svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestClearCartEmptiesAndIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t, product(1, 10, 10), product(2, 5, 10))
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 7, 2, 4)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, 7))
	require.NoError(t, svc.ClearCart(ctx, 7))

	cart, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartTotalTracksCurrentPrice(t *testing.T) {
	svc, productStore := newTestService(t, product(1, 10, 10))
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 20, cart.Total, 1e-9)

	// Price change with no cart mutation shows up on the next read.
	productStore.Put(product(1, 12.5, 10))

	cart, err = svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 25, cart.Total, 1e-9)
}

func TestConcurrentAddsExactlyFillStock(t *testing.T) {
	const stock = 40
	svc, _ := newTestService(t, product(1, 10, stock))
	ctx := context.Background()

	g := new(errgroup.Group)
	for i := 0; i < stock; i++ {
		g.Go(func() error {
			_, err := svc.AddToCart(ctx, 7, 1, 1)
			return err
		})
	}
	require.NoError(t, g.Wait(), "adds summing to exactly the stock must all succeed")

	cart, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, stock, cart.Items[0].Quantity)
}

func TestConcurrentAddsCannotOvershootStock(t *testing.T) {
	const stock = 40
	svc, _ := newTestService(t, product(1, 10, stock))
	ctx := context.Background()

	errs := make(chan error, stock+1)
	g := new(errgroup.Group)
	for i := 0; i < stock+1; i++ {
		g.Go(func() error {
			_, err := svc.AddToCart(ctx, 7, 1, 1)
			errs <- err
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(errs)

	failures := 0
	for err := range errs {
		if err != nil {
			var stockErr *services.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one add past the stock ceiling must fail")

	cart, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.LessOrEqual(t, cart.Items[0].Quantity, stock)
}

// failingCartStore forces store faults to check they surface as LookupError.
type failingCartStore struct {
	stores.MemoryCartStore
	err error
}

func (s *failingCartStore) ListLines(ctx context.Context, userID int) ([]models.CartItem, error) {
	return nil, s.err
}

func TestStoreFailureSurfacesAsLookupError(t *testing.T) {
	productStore := stores.NewMemoryProductStore()
	productStore.Put(product(1, 10, 10))
	carts := &failingCartStore{err: errors.New("connection refused")}
	svc := services.NewCartService(productStore, carts)

	_, err := svc.GetCart(context.Background(), 7)
	var lookup *services.LookupError
	require.ErrorAs(t, err, &lookup)
	assert.ErrorContains(t, err, "connection refused")
}
