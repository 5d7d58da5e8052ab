// Package ledger applies signed stock deltas to products when orders are
// created, deleted or edited. Validation always completes before any write
// is issued; the writes themselves are independent atomic increments.
package ledger

import (
	"fmt"
	"sort"

	orderdomain "github.com/tair/shop-tracker/internal/order/domain"
	productdomain "github.com/tair/shop-tracker/internal/product/domain"
)

// Ledger adjusts product stock through the product repository's atomic
// increment operation
type Ledger struct {
	products productdomain.ProductRepository
}

// New creates a stock ledger
func New(products productdomain.ProductRepository) *Ledger {
	return &Ledger{products: products}
}

// ApplyCreation decrements stock for every item of a freshly persisted order.
// The caller has already verified sufficient stock for every item.
func (l *Ledger) ApplyCreation(ownerID uint, items []orderdomain.OrderItem) error {
	for _, item := range items {
		if err := l.products.AdjustStock(ownerID, item.ProductID, -item.Quantity); err != nil {
			return fmt.Errorf("failed to decrement stock for product %d: %w", item.ProductID, err)
		}
	}
	return nil
}

// ApplyDeletion restores stock for every item of a deleted order,
// unconditionally
func (l *Ledger) ApplyDeletion(ownerID uint, items []orderdomain.OrderItem) error {
	for _, item := range items {
		if err := l.products.AdjustStock(ownerID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, err)
		}
	}
	return nil
}

// EditDeltas computes the per-product net stock change of an edit:
// original quantity minus new quantity. A positive delta returns stock,
// a negative delta consumes more.
func EditDeltas(original, updated []orderdomain.OrderItem) map[uint]int {
	deltas := make(map[uint]int)
	for _, item := range original {
		deltas[item.ProductID] += item.Quantity
	}
	for _, item := range updated {
		deltas[item.ProductID] -= item.Quantity
	}
	for productID, delta := range deltas {
		if delta == 0 {
			delete(deltas, productID)
		}
	}
	return deltas
}

// ValidateEdit checks that no product would go negative if the deltas were
// applied. Returns on the first violation; nothing is written.
func (l *Ledger) ValidateEdit(ownerID uint, deltas map[uint]int) error {
	for _, productID := range sortedKeys(deltas) {
		delta := deltas[productID]
		if delta >= 0 {
			// Returning stock cannot go negative
			continue
		}
		product, err := l.products.FindByID(ownerID, productID)
		if err != nil {
			return &ProductNotFoundError{ProductID: productID}
		}
		if product.Stock+delta < 0 {
			return &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   -delta,
			}
		}
	}
	return nil
}

// ApplyDeltas applies the per-product stock changes of a validated edit
func (l *Ledger) ApplyDeltas(ownerID uint, deltas map[uint]int) error {
	for _, productID := range sortedKeys(deltas) {
		if err := l.products.AdjustStock(ownerID, productID, deltas[productID]); err != nil {
			return fmt.Errorf("failed to adjust stock for product %d: %w", productID, err)
		}
	}
	return nil
}

// sortedKeys keeps repository writes in a stable order
func sortedKeys(deltas map[uint]int) []uint {
	keys := make([]uint, 0, len(deltas))
	for k := range deltas {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
