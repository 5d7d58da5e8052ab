package command

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/product/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	OwnerID   uint
	Name      string
	CostPrice float64
	SellPrice float64
	TaxRate   float64
	Stock     int
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.CostPrice < 0 {
		return nil, fmt.Errorf("cost price cannot be negative")
	}
	if cmd.SellPrice < 0 {
		return nil, fmt.Errorf("sell price cannot be negative")
	}
	if cmd.TaxRate < 0 || cmd.TaxRate > 100 {
		return nil, fmt.Errorf("tax rate must be between 0 and 100")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product := &domain.Product{
		OwnerID:   cmd.OwnerID,
		Name:      cmd.Name,
		CostPrice: cmd.CostPrice,
		SellPrice: cmd.SellPrice,
		TaxRate:   cmd.TaxRate,
		Stock:     cmd.Stock,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
