package command_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-tracker/internal/product/domain"
	"github.com/tair/shop-tracker/internal/product/usecase/command"
)

type memProductRepo struct {
	products map[uint]*domain.Product
	nextID   uint
}

func newMemProductRepo(products ...*domain.Product) *memProductRepo {
	repo := &memProductRepo{products: make(map[uint]*domain.Product), nextID: 1}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (m *memProductRepo) Create(p *domain.Product) error {
	p.ID = m.nextID
	m.nextID++
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *memProductRepo) FindByID(ownerID, id uint) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, errors.New("record not found")
	}
	copied := *p
	return &copied, nil
}

func (m *memProductRepo) FindAll(ownerID uint) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductRepo) FindLowStock(ownerID uint, threshold int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.OwnerID == ownerID && p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductRepo) Update(p *domain.Product) error {
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *memProductRepo) Delete(ownerID, id uint) error {
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return errors.New("record not found")
	}
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) Count(ownerID uint) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memProductRepo) SetFavorite(ownerID, id uint, favorite bool) error {
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return errors.New("record not found")
	}
	p.IsFavorite = favorite
	return nil
}

func (m *memProductRepo) AdjustStock(ownerID, id uint, delta int) error {
	p, ok := m.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Stock += delta
	return nil
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name    string
		cmd     command.CreateProductCommand
		wantErr string
	}{
		{
			name: "Success",
			cmd: command.CreateProductCommand{
				OwnerID: 7, Name: "Mug", CostPrice: 15, SellPrice: 25, TaxRate: 18, Stock: 50,
			},
		},
		{
			name:    "MissingName",
			cmd:     command.CreateProductCommand{OwnerID: 7, CostPrice: 15, SellPrice: 25},
			wantErr: "product name is required",
		},
		{
			name:    "NegativeCost",
			cmd:     command.CreateProductCommand{OwnerID: 7, Name: "Mug", CostPrice: -1},
			wantErr: "cost price cannot be negative",
		},
		{
			name:    "NegativeSell",
			cmd:     command.CreateProductCommand{OwnerID: 7, Name: "Mug", SellPrice: -1},
			wantErr: "sell price cannot be negative",
		},
		{
			name:    "TaxRateTooHigh",
			cmd:     command.CreateProductCommand{OwnerID: 7, Name: "Mug", TaxRate: 101},
			wantErr: "tax rate must be between 0 and 100",
		},
		{
			name:    "NegativeStock",
			cmd:     command.CreateProductCommand{OwnerID: 7, Name: "Mug", Stock: -5},
			wantErr: "stock cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := command.NewCreateProductHandler(newMemProductRepo())

			product, err := handler.Handle(tt.cmd)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, product.ID)
			assert.Equal(t, tt.cmd.Name, product.Name)
			assert.Equal(t, tt.cmd.Stock, product.Stock)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := newMemProductRepo(&domain.Product{ID: 1, OwnerID: 7, Name: "Mug", CostPrice: 15, SellPrice: 25, Stock: 50})
	handler := command.NewUpdateProductHandler(repo)

	product, err := handler.Handle(command.UpdateProductCommand{
		OwnerID: 7, ID: 1, Name: "Large Mug", CostPrice: 18, SellPrice: 30, TaxRate: 8, Stock: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, "Large Mug", product.Name)
	assert.Equal(t, 45, product.Stock)
	assert.Equal(t, "Large Mug", repo.products[1].Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	handler := command.NewUpdateProductHandler(newMemProductRepo())

	_, err := handler.Handle(command.UpdateProductCommand{OwnerID: 7, ID: 9, Name: "Mug"})

	assert.Error(t, err)
}

func TestUpdateProductWrongOwner(t *testing.T) {
	repo := newMemProductRepo(&domain.Product{ID: 1, OwnerID: 7, Name: "Mug"})
	handler := command.NewUpdateProductHandler(repo)

	_, err := handler.Handle(command.UpdateProductCommand{OwnerID: 8, ID: 1, Name: "Mug"})

	assert.Error(t, err)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMemProductRepo(&domain.Product{ID: 1, OwnerID: 7, Name: "Mug"})
	handler := command.NewDeleteProductHandler(repo)

	err := handler.Handle(command.DeleteProductCommand{OwnerID: 7, ID: 1})

	require.NoError(t, err)
	assert.Empty(t, repo.products)
}

func TestToggleFavorite(t *testing.T) {
	repo := newMemProductRepo(&domain.Product{ID: 1, OwnerID: 7, Name: "Mug"})
	handler := command.NewToggleFavoriteHandler(repo)

	favorite, err := handler.Handle(command.ToggleFavoriteCommand{OwnerID: 7, ID: 1})
	require.NoError(t, err)
	assert.True(t, favorite)
	assert.True(t, repo.products[1].IsFavorite)

	favorite, err = handler.Handle(command.ToggleFavoriteCommand{OwnerID: 7, ID: 1})
	require.NoError(t, err)
	assert.False(t, favorite)
	assert.False(t, repo.products[1].IsFavorite)
}
