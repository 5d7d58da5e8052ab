package ledger

import "fmt"

// InsufficientStockError means a requested quantity exceeds the product's
// available stock. The whole operation it belongs to is aborted.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s (available: %d)", e.ProductName, e.Available)
}

// ProductNotFoundError means a referenced product id no longer exists in the
// owner's catalog
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %d", e.ProductID)
}

// StockSyncError means the order write succeeded but the corresponding stock
// adjustment failed, leaving persisted state inconsistent. It is surfaced
// distinctly from validation failures and never silently recovered.
type StockSyncError struct {
	Op  string
	Err error
}

func (e *StockSyncError) Error() string {
	return fmt.Sprintf("order %s persisted but stock adjustment failed: %v", e.Op, e.Err)
}

func (e *StockSyncError) Unwrap() error {
	return e.Err
}
