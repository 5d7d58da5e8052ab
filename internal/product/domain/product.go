package domain

import (
	"time"

	"gorm.io/gorm"
)

// Low stock warning threshold, products at or below it show up on the
// low-stock listing
const LowStockThreshold = 10

// Product represents a catalog entry. Stock is adjusted implicitly by every
// order create/edit/delete through the stock ledger and never goes negative
// via order creation.
type Product struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OwnerID    uint           `json:"owner_id" gorm:"not null;index"`
	Name       string         `json:"name" gorm:"not null"`
	CostPrice  float64        `json:"cost_price" gorm:"not null"`
	SellPrice  float64        `json:"sell_price" gorm:"not null"`
	TaxRate    float64        `json:"tax_rate" gorm:"not null;default:0"`
	Stock      int            `json:"stock" gorm:"not null;default:0"`
	IsFavorite bool           `json:"is_favorite" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product is at or below the warning threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= LowStockThreshold
}

// Sort modes for product listings
const (
	SortDefault         = "default"
	SortStockAsc        = "stock-asc"
	SortProfitMarginAsc = "profit-margin-asc"
)

// ProductRepository defines the contract for product data access.
// Every method is scoped to a single owner.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(ownerID, id uint) (*Product, error)
	FindAll(ownerID uint) ([]Product, error)
	FindLowStock(ownerID uint, threshold int) ([]Product, error)
	Update(product *Product) error
	Delete(ownerID, id uint) error
	Count(ownerID uint) (int64, error)
	SetFavorite(ownerID, id uint, favorite bool) error

	// AdjustStock applies a signed stock delta as an atomic increment,
	// used by the stock ledger
	AdjustStock(ownerID, id uint, delta int) error
}
