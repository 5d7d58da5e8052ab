package command

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/product/domain"
)

// DeleteProductCommand represents the command to delete a product. Past
// orders keep their snapshots; deletion has no cascade effect on them.
type DeleteProductCommand struct {
	OwnerID uint
	ID      uint
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if _, err := h.repo.FindByID(cmd.OwnerID, cmd.ID); err != nil {
		return fmt.Errorf("product not found")
	}

	if err := h.repo.Delete(cmd.OwnerID, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
