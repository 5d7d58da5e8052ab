package command

import (
	"fmt"

	"github.com/tair/shop-tracker/internal/product/domain"
)

// ToggleFavoriteCommand represents the command to flip a product's favorite
// flag, a sort hint for the catalog listing
type ToggleFavoriteCommand struct {
	OwnerID uint
	ID      uint
}

// ToggleFavoriteHandler handles the favorite toggle
type ToggleFavoriteHandler struct {
	repo domain.ProductRepository
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(repo domain.ProductRepository) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{repo: repo}
}

// Handle flips the flag and returns the new value
func (h *ToggleFavoriteHandler) Handle(cmd ToggleFavoriteCommand) (bool, error) {
	product, err := h.repo.FindByID(cmd.OwnerID, cmd.ID)
	if err != nil {
		return false, fmt.Errorf("product not found")
	}

	favorite := !product.IsFavorite
	if err := h.repo.SetFavorite(cmd.OwnerID, cmd.ID, favorite); err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return favorite, nil
}
