package domain

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s string) bool {
	return s == StatusPaid || s == StatusUnpaid
}

// OrderItem is a denormalized snapshot of a product at order time. The
// product may later be edited or deleted without affecting the snapshot.
// TotalCost, TotalRevenue and TotalTax are always recomputed from quantity
// and the unit prices, never edited independently.
type OrderItem struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	CostPrice    float64 `json:"cost_price"`
	SellPrice    float64 `json:"sell_price"`
	TaxRate      float64 `json:"tax_rate"`
	TotalCost    float64 `json:"total_cost"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalTax     float64 `json:"total_tax"`
}

// OrderItems is stored as a JSON column on the order row
type OrderItems []OrderItem

// Order represents a placed order. The monetary totals are redundant
// denormalized fields recomputed on every create/edit. Date is user-editable
// independent of CreatedAt and drives dashboard bucketing.
type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OwnerID      uint           `json:"owner_id" gorm:"not null;index"`
	Date         time.Time      `json:"date" gorm:"not null;index"`
	Items        OrderItems     `json:"items" gorm:"serializer:json"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalCost    float64        `json:"total_cost"`
	TotalTax     float64        `json:"total_tax"`
	Profit       float64        `json:"profit"`
	Status       string         `json:"status" gorm:"not null;default:'unpaid'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// IsPaid reports whether the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// OrderRepository defines the contract for order data access.
// Every method is scoped to a single owner; FindAll returns newest first.
type OrderRepository interface {
	Create(order *Order) error
	FindByID(ownerID, id uint) (*Order, error)
	FindAll(ownerID uint) ([]Order, error)
	Update(order *Order) error
	UpdateStatus(ownerID, id uint, status string) error
	Delete(ownerID, id uint) error
	Count(ownerID uint) (int64, error)

	// OwnerIDs lists every owner with at least one order, used to warm up
	// the reminder scheduler at startup
	OwnerIDs() ([]uint, error)
}
