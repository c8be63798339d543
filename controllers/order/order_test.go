package orderControllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

type mockCarts struct {
	items map[string][]models.CartItem
}

func (m *mockCarts) GetOrCreate(_ context.Context, userID string) (*models.Cart, error) {
	return &models.Cart{ID: "cart-" + userID, UserID: userID, Items: m.items[userID]}, nil
}

func (m *mockCarts) AddItem(context.Context, string, models.CartItem) error { return nil }

func (m *mockCarts) UpdateItem(context.Context, string, models.CartItem) error { return nil }

func (m *mockCarts) RemoveItem(context.Context, string, string, string, string) error { return nil }

func (m *mockCarts) Clear(_ context.Context, userID string) error {
	m.items[userID] = nil
	return nil
}

type mockProducts struct {
	products map[string]*models.Product
}

func (m *mockProducts) Create(_ context.Context, p *models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProducts) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProducts) List(context.Context, store.ProductFilter) ([]models.Product, error) {
	return nil, nil
}

func (m *mockProducts) Count(context.Context) (int64, error) { return 0, nil }

type mockOrders struct {
	created []*models.Order
}

func (m *mockOrders) Create(_ context.Context, order *models.Order) error {
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrders) FindForUser(context.Context, string, string) (*models.Order, error) {
	return nil, store.ErrNotFound
}

func (m *mockOrders) ListForUser(context.Context, string) ([]models.Order, error) { return nil, nil }

func (m *mockOrders) ListAll(context.Context) ([]models.Order, error) { return nil, nil }

func (m *mockOrders) SetSession(context.Context, string, string) error { return nil }

func (m *mockOrders) ConfirmPaid(context.Context, string, string) error { return nil }

var testAddress = models.ShippingAddress{
	FirstName:  "Iris",
	LastName:   "Moreau",
	Address:    "12 rue des Palmiers",
	City:       "Nice",
	PostalCode: "06000",
	Country:    "FR",
	Phone:      "+33600000000",
}

func newTestService(carts *mockCarts, products *mockProducts, orders *mockOrders) *Service {
	return &Service{Carts: carts, Products: products, Orders: orders}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := newTestService(
		&mockCarts{items: map[string][]models.CartItem{}},
		&mockProducts{products: map[string]*models.Product{}},
		&mockOrders{},
	)

	_, _, err := svc.Create(context.Background(), "user-1", testAddress)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderTotalsFromCurrentCatalogPrices(t *testing.T) {
	carts := &mockCarts{items: map[string][]models.CartItem{
		"user-1": {
			{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2},
			{ProductID: "p2", Size: "S", Color: "Doré", Quantity: 3},
		},
	}}
	products := &mockProducts{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Maillot Tropical Eden", Price: 10.00},
		"p2": {ID: "p2", Name: "Bikini Feuillage Doré", Price: 5.00},
	}}
	orders := &mockOrders{}

	svc := newTestService(carts, products, orders)

	order, dropped, err := svc.Create(context.Background(), "user-1", testAddress)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.InDelta(t, 35.00, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, order.OrderStatus)
	assert.Empty(t, order.SessionID)

	// The snapshot is frozen: a later catalog price change must not alter
	// the persisted order.
	products.products["p1"].Price = 99.00
	assert.InDelta(t, 35.00, orders.created[0].TotalAmount, 0.001)
	assert.InDelta(t, 10.00, orders.created[0].Items[0].Price, 0.001)
}

func TestCreateOrderDropsVanishedProducts(t *testing.T) {
	carts := &mockCarts{items: map[string][]models.CartItem{
		"user-1": {
			{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 1},
			{ProductID: "gone", Size: "S", Color: "Doré", Quantity: 4},
		},
	}}
	products := &mockProducts{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Maillot Tropical Eden", Price: 89.00},
	}}

	svc := newTestService(carts, products, &mockOrders{})

	order, dropped, err := svc.Create(context.Background(), "user-1", testAddress)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 89.00, order.TotalAmount, 0.001)
}

func TestCreateOrderAllProductsVanished(t *testing.T) {
	carts := &mockCarts{items: map[string][]models.CartItem{
		"user-1": {{ProductID: "gone", Size: "M", Color: "Noir", Quantity: 1}},
	}}

	svc := newTestService(carts, &mockProducts{products: map[string]*models.Product{}}, &mockOrders{})

	_, dropped, err := svc.Create(context.Background(), "user-1", testAddress)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 1, dropped)
}

func TestCreateOrderLeavesCartIntact(t *testing.T) {
	carts := &mockCarts{items: map[string][]models.CartItem{
		"user-1": {{ProductID: "p1", Size: "M", Color: "Noir", Quantity: 2}},
	}}
	products := &mockProducts{products: map[string]*models.Product{
		"p1": {ID: "p1", Name: "Maillot Tropical Eden", Price: 89.00},
	}}
	orders := &mockOrders{}

	svc := newTestService(carts, products, orders)

	// The cart is only cleared at payment confirmation, so two orders can
	// be drafted from the same cart.
	_, _, err := svc.Create(context.Background(), "user-1", testAddress)
	require.NoError(t, err)
	_, _, err = svc.Create(context.Background(), "user-1", testAddress)
	require.NoError(t, err)

	assert.Len(t, orders.created, 2)
	assert.Len(t, carts.items["user-1"], 1)
}
