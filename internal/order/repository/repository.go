package repository

import (
	"github.com/tair/shop-tracker/internal/order/domain"
	"gorm.io/gorm"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{})
}

func (r *GormOrderRepository) Create(order *domain.Order) error {
	return r.db.Create(order).Error
}

func (r *GormOrderRepository) FindByID(ownerID, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Where("owner_id = ?", ownerID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ownerID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) Update(order *domain.Order) error {
	return r.db.Save(order).Error
}

func (r *GormOrderRepository) UpdateStatus(ownerID, id uint, status string) error {
	return r.db.Model(&domain.Order{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("status", status).Error
}

func (r *GormOrderRepository) Delete(ownerID, id uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&domain.Order{}, id).Error
}

func (r *GormOrderRepository) Count(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Order{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) OwnerIDs() ([]uint, error) {
	var ownerIDs []uint
	err := r.db.Model(&domain.Order{}).Distinct("owner_id").Pluck("owner_id", &ownerIDs).Error
	return ownerIDs, err
}
