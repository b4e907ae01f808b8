package services

import "fmt"

// The cart service reports every failure as one of four kinds so callers
// can react differently: validation and not-found are client faults and
// must not be retried, insufficient stock is a business-rule rejection
// the caller can retry with a smaller quantity, and lookup failures are
// infrastructure faults safe to retry whole because no operation leaves
// partial state behind.

// ValidationError marks malformed input rejected before any store access.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// NotFoundError marks a missing product or cart line. A line owned by a
// different user reports the same error as a line that does not exist,
// so existence of other users' lines never leaks.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// InsufficientStockError rejects a mutation that would push a line's
// quantity past the product's available stock. Available is included so
// the caller can retry with a smaller amount.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// LookupError wraps a store failure. It covers both failed reads and a
// failed cart re-read after a committed write; the caller must re-fetch
// rather than assume the cart is unchanged.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return "store failure during " + e.Op + ": " + e.Err.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
