package command

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/product/domain"
)

// UpdateProductCommand represents the command to update a product's fields.
// Historical order items keep their denormalized snapshot and are not
// affected by price or name changes.
type UpdateProductCommand struct {
	OwnerID   uint
	ID        uint
	Name      string
	CostPrice float64
	SellPrice float64
	TaxRate   float64
	Stock     int
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.CostPrice < 0 || cmd.SellPrice < 0 {
		return nil, fmt.Errorf("prices cannot be negative")
	}
	if cmd.TaxRate < 0 || cmd.TaxRate > 100 {
		return nil, fmt.Errorf("tax rate must be between 0 and 100")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product, err := h.repo.FindByID(cmd.OwnerID, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	product.Name = cmd.Name
	product.CostPrice = cmd.CostPrice
	product.SellPrice = cmd.SellPrice
	product.TaxRate = cmd.TaxRate
	product.Stock = cmd.Stock

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
