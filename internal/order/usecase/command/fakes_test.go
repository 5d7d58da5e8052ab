package command_test

import (
	"errors"

	orderdomain "github.com/tair/shop-tracker/internal/order/domain"
	productdomain "github.com/tair/shop-tracker/internal/product/domain"
)

// fakeOrderRepo keeps orders in memory
type fakeOrderRepo struct {
	orders    map[uint]*orderdomain.Order
	nextID    uint
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*orderdomain.Order), nextID: 1}
}

// cloneOrder detaches the items slice so stored state never aliases
// caller-held slices
func cloneOrder(order *orderdomain.Order) *orderdomain.Order {
	copied := *order
	copied.Items = append(orderdomain.OrderItems(nil), order.Items...)
	return &copied
}

func (f *fakeOrderRepo) Create(order *orderdomain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = cloneOrder(order)
	return nil
}

func (f *fakeOrderRepo) FindByID(ownerID, id uint) (*orderdomain.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.OwnerID != ownerID {
		return nil, errors.New("record not found")
	}
	return cloneOrder(order), nil
}

func (f *fakeOrderRepo) FindAll(ownerID uint) ([]orderdomain.Order, error) {
	var out []orderdomain.Order
	for _, order := range f.orders {
		if order.OwnerID == ownerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(order *orderdomain.Order) error {
	f.orders[order.ID] = cloneOrder(order)
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(ownerID, id uint, status string) error {
	order, ok := f.orders[id]
	if !ok || order.OwnerID != ownerID {
		return errors.New("record not found")
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) Delete(ownerID, id uint) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) Count(ownerID uint) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) OwnerIDs() ([]uint, error) {
	seen := make(map[uint]bool)
	var out []uint
	for _, order := range f.orders {
		if !seen[order.OwnerID] {
			seen[order.OwnerID] = true
			out = append(out, order.OwnerID)
		}
	}
	return out, nil
}

// fakeProductRepo keeps products in memory with atomic-style stock updates
type fakeProductRepo struct {
	products  map[uint]*productdomain.Product
	adjustErr error
}

func newFakeProductRepo(products ...*productdomain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uint]*productdomain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) Create(p *productdomain.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) FindByID(ownerID, id uint) (*productdomain.Product, error) {
	p, ok := f.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, errors.New("record not found")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindAll(ownerID uint) ([]productdomain.Product, error) {
	var out []productdomain.Product
	for _, p := range f.products {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindLowStock(ownerID uint, threshold int) ([]productdomain.Product, error) {
	var out []productdomain.Product
	for _, p := range f.products {
		if p.OwnerID == ownerID && p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *productdomain.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) Delete(ownerID, id uint) error { delete(f.products, id); return nil }

func (f *fakeProductRepo) Count(ownerID uint) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) SetFavorite(ownerID, id uint, favorite bool) error {
	if p, ok := f.products[id]; ok {
		p.IsFavorite = favorite
	}
	return nil
}

func (f *fakeProductRepo) AdjustStock(ownerID, id uint, delta int) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	p, ok := f.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Stock += delta
	return nil
}
