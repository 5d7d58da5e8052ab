package repository

import (
	"github.com/tair/shop-tracker/internal/product/domain"
	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(ownerID, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("owner_id = ?", ownerID).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ownerID uint) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("owner_id = ?", ownerID).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindLowStock(ownerID uint, threshold int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("owner_id = ? AND stock <= ?", ownerID, threshold).
		Order("stock ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Delete(ownerID, id uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&domain.Product{}, id).Error
}

func (r *GormProductRepository) Count(ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) SetFavorite(ownerID, id uint, favorite bool) error {
	return r.db.Model(&domain.Product{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("is_favorite", favorite).Error
}

func (r *GormProductRepository) AdjustStock(ownerID, id uint, delta int) error {
	return r.db.Model(&domain.Product{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error
}
