package paymentControllers

import (
	"context"
	"sync"
	"time"

	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/payments"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

type mockOrders struct {
	mu           sync.Mutex
	orders       map[string]*models.Order
	carts        *mockCarts
	confirmCalls int
	sessionSets  int
}

func newMockOrders(orders ...*models.Order) *mockOrders {
	m := &mockOrders{orders: make(map[string]*models.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrders) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrders) FindForUser(_ context.Context, orderID, userID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, store.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *mockOrders) ListForUser(context.Context, string) ([]models.Order, error) {
	return nil, nil
}

func (m *mockOrders) ListAll(context.Context) ([]models.Order, error) {
	return nil, nil
}

func (m *mockOrders) SetSession(_ context.Context, orderID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionSets++
	if order, ok := m.orders[orderID]; ok {
		order.SessionID = sessionID
	}
	return nil
}

// ConfirmPaid mirrors the real store: the order transition and the cart
// clear are one operation.
func (m *mockOrders) ConfirmPaid(ctx context.Context, orderID, userID string) error {
	m.mu.Lock()
	m.confirmCalls++
	if order, ok := m.orders[orderID]; ok {
		order.PaymentStatus = models.PaymentStatusPaid
		order.OrderStatus = models.OrderStatusConfirmed
	}
	m.mu.Unlock()
	return m.carts.Clear(ctx, userID)
}

type mockTransactions struct {
	mu        sync.Mutex
	bySession map[string]*models.PaymentTransaction
	creates   int
}

func newMockTransactions(txs ...*models.PaymentTransaction) *mockTransactions {
	m := &mockTransactions{bySession: make(map[string]*models.PaymentTransaction)}
	for _, tx := range txs {
		m.bySession[tx.SessionID] = tx
	}
	return m
}

func (m *mockTransactions) Create(_ context.Context, tx *models.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.bySession[tx.SessionID] = tx
	return nil
}

func (m *mockTransactions) FindBySession(_ context.Context, sessionID string) (*models.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.bySession[sessionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

// MarkPaid mirrors the conditional-update gate of the real store: the
// transition succeeds at most once per session.
func (m *mockTransactions) MarkPaid(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.bySession[sessionID]
	if !ok || tx.PaymentStatus == models.PaymentStatusPaid {
		return false, nil
	}
	tx.PaymentStatus = models.PaymentStatusPaid
	tx.UpdatedAt = time.Now()
	return true, nil
}

func (m *mockTransactions) ListUnreconciled(context.Context) ([]models.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// The mock has no view of the orders table, so it over-reports every
	// paid transaction; Reconcile skips the ones whose order is already paid.
	var txs []models.PaymentTransaction
	for _, tx := range m.bySession {
		if tx.PaymentStatus == models.PaymentStatusPaid {
			txs = append(txs, *tx)
		}
	}
	return txs, nil
}

type mockCarts struct {
	mu         sync.Mutex
	items      map[string][]models.CartItem
	clearCalls int
}

func newMockCarts() *mockCarts {
	return &mockCarts{items: make(map[string][]models.CartItem)}
}

func (m *mockCarts) GetOrCreate(_ context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &models.Cart{ID: "cart-" + userID, UserID: userID, Items: m.items[userID]}, nil
}

func (m *mockCarts) AddItem(_ context.Context, userID string, line models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = models.MergeLine(m.items[userID], line)
	return nil
}

func (m *mockCarts) UpdateItem(_ context.Context, userID string, line models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = models.SetLineQuantity(m.items[userID], line)
	return nil
}

func (m *mockCarts) RemoveItem(_ context.Context, userID, productID, size, color string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[userID] = models.RemoveLine(m.items[userID], productID, size, color)
	return nil
}

func (m *mockCarts) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	m.items[userID] = nil
	return nil
}

type mockUsers struct {
	users map[string]*models.User
}

func newMockUsers(users ...*models.User) *mockUsers {
	m := &mockUsers{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUsers) Create(_ context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

type mockProvider struct {
	mu           sync.Mutex
	session      *payments.Session
	createErr    error
	lastRequest  payments.SessionRequest
	status       string
	statusErr    error
	statusCalls  int
	webhookEvent *payments.Event
	webhookErr   error
}

func (m *mockProvider) CreateSession(_ context.Context, req payments.SessionRequest) (*payments.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRequest = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.session, nil
}

func (m *mockProvider) GetStatus(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls++
	return m.status, m.statusErr
}

func (m *mockProvider) VerifyWebhook([]byte, string) (*payments.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.webhookErr != nil {
		return nil, m.webhookErr
	}
	return m.webhookEvent, nil
}
