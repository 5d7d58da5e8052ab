package command

import (
	"sort"
	"time"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/ledger"
	"github.com/tair/shop-tracker/internal/order/domain"
	productdomain "github.com/tair/shop-tracker/internal/product/domain"
)

// CreateOrderCommand represents the command to place a new order from a cart
type CreateOrderCommand struct {
	OwnerID uint
	Cart    map[uint]int // productID -> requested quantity
	Date    time.Time
	Status  string
}

// CreateOrderHandler handles order creation
type CreateOrderHandler struct {
	orders   domain.OrderRepository
	products productdomain.ProductRepository
	ledger   *ledger.Ledger
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(orders domain.OrderRepository, products productdomain.ProductRepository, l *ledger.Ledger) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, products: products, ledger: l}
}

// Handle validates the cart against current stock, builds the denormalized
// item snapshots, persists the order and decrements stock. All validation
// completes before any write: a failing item aborts the whole operation with
// no stock change and no partial order.
func (h *CreateOrderHandler) Handle(cmd CreateOrderCommand) (*domain.Order, error) {
	productIDs := make([]uint, 0, len(cmd.Cart))
	for productID, quantity := range cmd.Cart {
		if quantity > 0 {
			productIDs = append(productIDs, productID)
		}
	}
	if len(productIDs) == 0 {
		return nil, domain.ErrEmptyCart
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	status := cmd.Status
	if status == "" {
		status = domain.StatusUnpaid
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	items := make(domain.OrderItems, 0, len(productIDs))
	for _, productID := range productIDs {
		quantity := cmd.Cart[productID]

		product, err := h.products.FindByID(cmd.OwnerID, productID)
		if err != nil {
			return nil, &ledger.ProductNotFoundError{ProductID: productID}
		}
		if product.Stock < quantity {
			return nil, &ledger.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   quantity,
			}
		}

		cost, revenue, tax := calc.ItemTotals(product.CostPrice, product.SellPrice, product.TaxRate, quantity)
		items = append(items, domain.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     quantity,
			CostPrice:    product.CostPrice,
			SellPrice:    product.SellPrice,
			TaxRate:      product.TaxRate,
			TotalCost:    cost,
			TotalRevenue: revenue,
			TotalTax:     tax,
		})
	}

	date := cmd.Date
	if date.IsZero() {
		date = time.Now()
	}

	totals := calc.OrderTotals(items)
	order := &domain.Order{
		OwnerID:      cmd.OwnerID,
		Date:         date,
		Items:        items,
		TotalRevenue: totals.Revenue,
		TotalCost:    totals.Cost,
		TotalTax:     totals.Tax,
		Profit:       totals.Profit,
		Status:       status,
	}

	if err := h.orders.Create(order); err != nil {
		return nil, err
	}

	if err := h.ledger.ApplyCreation(cmd.OwnerID, items); err != nil {
		// The order row exists but stock was not adjusted; surface the
		// inconsistency instead of papering over it
		return order, &ledger.StockSyncError{Op: "create", Err: err}
	}

	return order, nil
}
