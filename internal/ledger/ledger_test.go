package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-tracker/internal/ledger"
	orderdomain "github.com/tair/shop-tracker/internal/order/domain"
	productdomain "github.com/tair/shop-tracker/internal/product/domain"
)

// fakeProductRepo keeps products in memory and records stock adjustments
type fakeProductRepo struct {
	products    map[uint]*productdomain.Product
	adjustments []adjustment
	adjustErr   error
}

type adjustment struct {
	productID uint
	delta     int
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
	return p, nil
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
	f.adjustments = append(f.adjustments, adjustment{productID: id, delta: delta})
	return nil
}

func TestApplyCreationDecrementsStock(t *testing.T) {
	repo := newFakeProductRepo(
		&productdomain.Product{ID: 1, OwnerID: 7, Name: "Mug", Stock: 50},
		&productdomain.Product{ID: 2, OwnerID: 7, Name: "Plate", Stock: 20},
	)
	l := ledger.New(repo)

	err := l.ApplyCreation(7, []orderdomain.OrderItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 5},
	})

	require.NoError(t, err)
	assert.Equal(t, 47, repo.products[1].Stock)
	assert.Equal(t, 15, repo.products[2].Stock)
}

func TestApplyDeletionRestoresStock(t *testing.T) {
	repo := newFakeProductRepo(
		&productdomain.Product{ID: 1, OwnerID: 7, Name: "Mug", Stock: 47},
	)
	l := ledger.New(repo)

	err := l.ApplyDeletion(7, []orderdomain.OrderItem{{ProductID: 1, Quantity: 3}})

	require.NoError(t, err)
	assert.Equal(t, 50, repo.products[1].Stock)
}

func TestEditDeltas(t *testing.T) {
	original := []orderdomain.OrderItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	}
	updated := []orderdomain.OrderItem{
		{ProductID: 1, Quantity: 5}, // consumes 2 more
		{ProductID: 2, Quantity: 2}, // unchanged, dropped from deltas
		{ProductID: 4, Quantity: 4}, // new line consumes 4
	}

	deltas := ledger.EditDeltas(original, updated)

	assert.Equal(t, map[uint]int{
		1: -2,
		3: 1, // removed line returns its quantity
		4: -4,
	}, deltas)
}

func TestEditDeltasIdentical(t *testing.T) {
	items := []orderdomain.OrderItem{{ProductID: 1, Quantity: 3}}
	assert.Empty(t, ledger.EditDeltas(items, items))
}

func TestValidateEdit(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		deltas  map[uint]int
		wantErr bool
	}{
		{name: "EnoughStock", stock: 10, deltas: map[uint]int{1: -5}, wantErr: false},
		{name: "ExactlyEnough", stock: 5, deltas: map[uint]int{1: -5}, wantErr: false},
		{name: "Insufficient", stock: 4, deltas: map[uint]int{1: -5}, wantErr: true},
		{name: "PositiveDeltaIgnoresStock", stock: 0, deltas: map[uint]int{1: 5}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProductRepo(
				&productdomain.Product{ID: 1, OwnerID: 7, Name: "Mug", Stock: tt.stock},
			)
			l := ledger.New(repo)

			err := l.ValidateEdit(7, tt.deltas)

			if tt.wantErr {
				var insufficientErr *ledger.InsufficientStockError
				require.ErrorAs(t, err, &insufficientErr)
				assert.Equal(t, uint(1), insufficientErr.ProductID)
				assert.Equal(t, tt.stock, insufficientErr.Available)
			} else {
				assert.NoError(t, err)
			}
			// Validation never writes
			assert.Empty(t, repo.adjustments)
		})
	}
}

func TestValidateEditMissingProduct(t *testing.T) {
	l := ledger.New(newFakeProductRepo())

	err := l.ValidateEdit(7, map[uint]int{9: -1})

	var notFound *ledger.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(9), notFound.ProductID)
}

func TestApplyDeltas(t *testing.T) {
	repo := newFakeProductRepo(
		&productdomain.Product{ID: 1, OwnerID: 7, Stock: 10},
		&productdomain.Product{ID: 2, OwnerID: 7, Stock: 10},
	)
	l := ledger.New(repo)

	err := l.ApplyDeltas(7, map[uint]int{1: -2, 2: 3})

	require.NoError(t, err)
	assert.Equal(t, 8, repo.products[1].Stock)
	assert.Equal(t, 13, repo.products[2].Stock)
	// Writes happen in ascending product id order
	assert.Equal(t, []adjustment{{productID: 1, delta: -2}, {productID: 2, delta: 3}}, repo.adjustments)
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &ledger.InsufficientStockError{ProductID: 1, ProductName: "Mug", Available: 4, Requested: 5}
	assert.Equal(t, "not enough stock for Mug (available: 4)", err.Error())
}

func TestStockSyncErrorUnwraps(t *testing.T) {
	inner := errors.New("db down")
	err := &ledger.StockSyncError{Op: "create", Err: inner}
	assert.ErrorIs(t, err, inner)
}
