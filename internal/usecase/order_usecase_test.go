package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/mailer"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す。
// FailCommit を立てると fn 成功後でも rollback 扱いのエラーを返す
type TxManagerMock struct {
	Repos      repo.TxRepos
	FailCommit bool

	mu    sync.Mutex
	Calls int
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if err := fn(m.Repos); err != nil {
		return err
	}
	if m.FailCommit {
		return NewHTTPError(500, "db error")
	}
	return nil
}

type TxReposMock struct {
	orders    repo.OrderRepository
	products  repo.ProductRepository
	counters  repo.CounterRepository
	shipments repo.ShipmentRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository       { return r.orders }
func (r *TxReposMock) Products() repo.ProductRepository   { return r.products }
func (r *TxReposMock) Counters() repo.CounterRepository   { return r.counters }
func (r *TxReposMock) Shipments() repo.ShipmentRepository { return r.shipments }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByOrderNo(ctx context.Context, orderNo string) (model.Order, error) {
	args := m.Called(ctx, orderNo)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByOrderNoForUpdate(ctx context.Context, orderNo string) (model.Order, error) {
	args := m.Called(ctx, orderNo)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByInvoiceDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	args := m.Called(ctx, from, to)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderNo string, status model.OrderStatus, invoiceNo *string, invoiceDate *time.Time) error {
	args := m.Called(ctx, orderNo, status, invoiceNo, invoiceDate)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePayment(ctx context.Context, orderNo string, paymentID string, gatewayOrderID string) error {
	args := m.Called(ctx, orderNo, paymentID, gatewayOrderID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListByStatus(ctx context.Context, status string) ([]model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in OrderUsecase tests")
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *ProductRepoMock) CountByStatus(ctx context.Context, status string) (int64, error) {
	panic("not used in OrderUsecase tests")
}

func (m *ProductRepoMock) DecrementStockClamped(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

// CounterFakeはDBの連番と同じ性質（単調増加・重複なし）のインメモリ版
type CounterFake struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewCounterFake() *CounterFake {
	return &CounterFake{values: map[string]int64{}}
}

func (f *CounterFake) Next(ctx context.Context, counterType string, defaultBase int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.values[counterType]
	if !ok {
		cur = defaultBase
	}
	next := cur + 1
	f.values[counterType] = next
	return next, nil
}

type AdminUserRepoMock struct{ mock.Mock }

func (m *AdminUserRepoMock) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminUserRepoMock) Create(ctx context.Context, u model.AdminUser) (model.AdminUser, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.AdminUser)
	return created, args.Error(1)
}

func (m *AdminUserRepoMock) ListNotifiableEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	emails, _ := args.Get(0).([]string)
	return emails, args.Error(1)
}

// =====================
// Renderer / Notifier fakes
// =====================

type RendererFake struct {
	Err   error
	Calls int
}

func (f *RendererFake) Render(ctx context.Context, order model.Order) ([]byte, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return []byte("%PDF-fake"), nil
}

type NotifierFake struct {
	mu       sync.Mutex
	Messages []mailer.Message
}

func (f *NotifierFake) Notify(ctx context.Context, msg mailer.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Messages = append(f.Messages, msg)
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func newOrderUsecaseForTest(tx *TxManagerMock, adminUsers repo.AdminUserRepository, renderer *RendererFake, notifier *NotifierFake) *OrderUsecase {
	return NewOrderUsecase(
		tx, adminUsers, renderer, notifier,
		func(orderNo string) string { return strings.Replace(orderNo, "VITA-", "INV-VITA-", 1) },
		"http://localhost:3000",
		zap.NewNop(),
	)
}

func snapshotJSON(t *testing.T, items []model.LineItem) []byte {
	t.Helper()
	raw, err := json.Marshal(items)
	assert.NoError(t, err)
	return raw
}

// =====================
// CreatePending tests
// =====================

func validCreateInput() CreatePendingInput {
	return CreatePendingInput{
		Name:        "Asha",
		City:        "Chennai",
		State:       "TN",
		Country:     "India",
		Address:     "12 Beach Rd",
		Pin:         "600001",
		Email:       "asha@example.com",
		Mobile:      "9876543210",
		Quantity:    2,
		TotalAmount: 210,
		Products: []CreatePendingItem{
			{ProductID: 7, Title: "Moringa Powder", Qty: 2, Price: 105},
		},
	}
}

func TestOrderUsecase_CreatePending_MissingFields(t *testing.T) {
	tx := &TxManagerMock{}
	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	in := validCreateInput()
	in.Name = ""
	in.Pin = "  "

	_, err := uc.CreatePending(context.Background(), in)
	assertErrContains(t, err, "name")
	assertErrContains(t, err, "pin")
	//バリデーションで弾かれたらTxは開かない
	assert.Equal(t, 0, tx.Calls)
}

func TestOrderUsecase_CreatePending_AllocatesSequentialOrderNo(t *testing.T) {
	ctx := context.Background()

	ordersRepo := new(OrderRepoMock)
	productsRepo := new(ProductRepoMock)
	counters := NewCounterFake()
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo, products: productsRepo, counters: counters}}

	hsn := "1211"
	productsRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, HSN: &hsn}, nil)
	ordersRepo.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	orderNo, err := uc.CreatePending(ctx, validCreateInput())
	assert.NoError(t, err)
	assert.Equal(t, "VITA-10001", orderNo)

	orderNo2, err := uc.CreatePending(ctx, validCreateInput())
	assert.NoError(t, err)
	assert.Equal(t, "VITA-10002", orderNo2)

	//スナップショットにHSNが写っていること
	created := ordersRepo.Calls[0].Arguments.Get(1).(model.Order)
	items := created.LineItems()
	assert.Len(t, items, 1)
	assert.Equal(t, "1211", items[0].HSN)
	assert.Equal(t, float64(105), items[0].SalePrice)
	assert.Equal(t, model.OrderStatusPending, created.Status)
	assert.Equal(t, model.PaymentStatusNotPaid, created.PaymentStatus)
}

func TestOrderUsecase_CreatePending_UnknownProductKeepsEmptyHSN(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	productsRepo := new(ProductRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo, products: productsRepo, counters: NewCounterFake()}}

	productsRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Product{}, repo.ErrNotFound)
	ordersRepo.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	_, err := uc.CreatePending(context.Background(), validCreateInput())
	assert.NoError(t, err)

	created := ordersRepo.Calls[0].Arguments.Get(1).(model.Order)
	assert.Equal(t, "", created.LineItems()[0].HSN)
}

func TestOrderUsecase_CreatePending_ConcurrentNosAreUnique(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	productsRepo := new(ProductRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo, products: productsRepo, counters: NewCounterFake()}}

	productsRepo.On("FindByID", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrNotFound)
	ordersRepo.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	const n = 50
	var wg sync.WaitGroup
	nos := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			no, err := uc.CreatePending(context.Background(), validCreateInput())
			assert.NoError(t, err)
			nos <- no
		}()
	}
	wg.Wait()
	close(nos)

	seen := map[string]bool{}
	for no := range nos {
		assert.False(t, seen[no], "duplicate order no %s", no)
		seen[no] = true
	}
	assert.Len(t, seen, n)
}

// =====================
// UpdateStatus tests
// =====================

func TestOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	tx := &TxManagerMock{}
	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	_, err := uc.UpdateStatus(context.Background(), "VITA-10001", "PACKED")
	assertErrContains(t, err, "invalid status")
	assert.Equal(t, 0, tx.Calls)
}

func TestOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-404").Return(model.Order{}, repo.ErrNotFound)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	_, err := uc.UpdateStatus(context.Background(), "VITA-404", "SHIPPED")
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_UpdateStatus_ShippedAssignsInvoiceOnce(t *testing.T) {
	ctx := context.Background()

	ordersRepo := new(OrderRepoMock)
	adminUsers := new(AdminUserRepoMock)
	renderer := &RendererFake{}
	notifier := &NotifierFake{}
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	order := model.Order{
		OrderNo: "VITA-10031",
		Email:   "asha@example.com",
		Status:  model.OrderStatusOrderPlaced,
	}
	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10031").Return(order, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, "VITA-10031", model.OrderStatusShipped,
		mock.MatchedBy(func(no *string) bool { return no != nil && *no == "INV-VITA-10031" }),
		mock.MatchedBy(func(d *time.Time) bool { return d != nil }),
	).Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{"staff@vitalimes.in"}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, renderer, notifier)

	out, err := uc.UpdateStatus(ctx, "VITA-10031", "SHIPPED")
	assert.NoError(t, err)
	assert.Equal(t, "SHIPPED", out.Status)
	if assert.NotNil(t, out.InvoiceNo) {
		assert.Equal(t, "INV-VITA-10031", *out.InvoiceNo)
	}

	//PDFを添付した通知が顧客とスタッフに出ている
	assert.Equal(t, 1, renderer.Calls)
	assert.Len(t, notifier.Messages, 2)
	assert.Equal(t, []string{"asha@example.com"}, notifier.Messages[0].To)
	assert.Len(t, notifier.Messages[0].Attachments, 1)
	assert.Equal(t, "INV-VITA-10031.pdf", notifier.Messages[0].Attachments[0].Filename)
	assert.Equal(t, []string{"staff@vitalimes.in"}, notifier.Messages[1].Bcc)

	ordersRepo.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_ShippedTwiceKeepsInvoiceNo(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	adminUsers := new(AdminUserRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	existing := "INV-VITA-10031"
	existingDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order := model.Order{
		OrderNo:     "VITA-10031",
		Status:      model.OrderStatusShipped,
		InvoiceNo:   &existing,
		InvoiceDate: &existingDate,
	}
	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10031").Return(order, nil)
	//発番済みなのでinvoice_noはそのまま、invoice_dateはnil（更新しない）
	ordersRepo.On("UpdateStatus", mock.Anything, "VITA-10031", model.OrderStatusShipped,
		&existing, (*time.Time)(nil),
	).Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, &RendererFake{}, &NotifierFake{})

	out, err := uc.UpdateStatus(context.Background(), "VITA-10031", "SHIPPED")
	assert.NoError(t, err)
	if assert.NotNil(t, out.InvoiceNo) {
		assert.Equal(t, existing, *out.InvoiceNo)
	}

	ordersRepo.AssertExpectations(t)
}

func TestOrderUsecase_UpdateStatus_RenderFailureStillNotifies(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	adminUsers := new(AdminUserRepoMock)
	renderer := &RendererFake{Err: errors.New("wkhtmltopdf not found")}
	notifier := &NotifierFake{}
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	order := model.Order{OrderNo: "VITA-10040", Email: "asha@example.com"}
	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10040").Return(order, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, "VITA-10040", model.OrderStatusShipped,
		mock.Anything, mock.Anything).Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, renderer, notifier)

	out, err := uc.UpdateStatus(context.Background(), "VITA-10040", "SHIPPED")
	//描画失敗でもステータス遷移は成功扱い
	assert.NoError(t, err)
	assert.Equal(t, "SHIPPED", out.Status)

	//添付なしで通知は出る
	assert.Len(t, notifier.Messages, 1)
	assert.Empty(t, notifier.Messages[0].Attachments)
}

func TestOrderUsecase_UpdateStatus_DeliveredDoesNotRender(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	adminUsers := new(AdminUserRepoMock)
	renderer := &RendererFake{}
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10050").Return(model.Order{OrderNo: "VITA-10050"}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, "VITA-10050", model.OrderStatusDelivered,
		(*string)(nil), (*time.Time)(nil)).Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, renderer, &NotifierFake{})

	_, err := uc.UpdateStatus(context.Background(), "VITA-10050", "DELIVERED")
	assert.NoError(t, err)
	assert.Equal(t, 0, renderer.Calls)
}

func TestOrderUsecase_UpdateStatus_CommitFailureSkipsSideEffects(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	renderer := &RendererFake{}
	notifier := &NotifierFake{}
	tx := &TxManagerMock{
		Repos:      &TxReposMock{orders: ordersRepo},
		FailCommit: true,
	}

	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10060").Return(model.Order{OrderNo: "VITA-10060"}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, "VITA-10060", model.OrderStatusShipped,
		mock.Anything, mock.Anything).Return(nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), renderer, notifier)

	_, err := uc.UpdateStatus(context.Background(), "VITA-10060", "SHIPPED")
	assert.Error(t, err)
	//rollbackされたらPDFもメールも走らない
	assert.Equal(t, 0, renderer.Calls)
	assert.Empty(t, notifier.Messages)
}

// =====================
// UpdatePayment tests
// =====================

func TestOrderUsecase_UpdatePayment_DecrementsStockPerItem(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	productsRepo := new(ProductRepoMock)
	adminUsers := new(AdminUserRepoMock)
	notifier := &NotifierFake{}
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo, products: productsRepo}}

	order := model.Order{
		OrderNo:     "VITA-10070",
		Name:        "Asha",
		Email:       "asha@example.com",
		TotalAmount: 420,
		ProductsJSON: snapshotJSON(t, []model.LineItem{
			{ProductID: 7, Qty: 2},
			{ProductID: 9, Qty: 1},
		}),
	}
	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10070").Return(order, nil)
	ordersRepo.On("UpdatePayment", mock.Anything, "VITA-10070", "pay_123", "rzp_456").Return(nil)
	productsRepo.On("DecrementStockClamped", mock.Anything, int64(7), int64(2)).Return(nil)
	productsRepo.On("DecrementStockClamped", mock.Anything, int64(9), int64(1)).Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{"staff@vitalimes.in"}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, &RendererFake{}, notifier)

	err := uc.UpdatePayment(context.Background(), "VITA-10070", "pay_123", "rzp_456")
	assert.NoError(t, err)

	productsRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)

	//顧客＋スタッフ通知
	assert.Len(t, notifier.Messages, 2)
	assert.Contains(t, notifier.Messages[0].Subject, "Payment Confirmed")
}

func TestOrderUsecase_UpdatePayment_SkipsVanishedProduct(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	productsRepo := new(ProductRepoMock)
	adminUsers := new(AdminUserRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo, products: productsRepo}}

	order := model.Order{
		OrderNo: "VITA-10071",
		ProductsJSON: snapshotJSON(t, []model.LineItem{
			{ProductID: 7, Qty: 1},
			{ProductID: 8, Qty: 1},
		}),
	}
	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10071").Return(order, nil)
	ordersRepo.On("UpdatePayment", mock.Anything, "VITA-10071", "pay_1", "rzp_1").Return(nil)
	//削除済み商品の減算はスキップして続行
	productsRepo.On("DecrementStockClamped", mock.Anything, int64(7), int64(1)).Return(repo.ErrNotFound)
	productsRepo.On("DecrementStockClamped", mock.Anything, int64(8), int64(1)).Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, &RendererFake{}, &NotifierFake{})

	err := uc.UpdatePayment(context.Background(), "VITA-10071", "pay_1", "rzp_1")
	assert.NoError(t, err)
	productsRepo.AssertExpectations(t)
}

// ProductStockFakeはGREATEST(stock - qty, 0)と同じ打ち止め挙動のインメモリ版
type ProductStockFake struct {
	ProductRepoMock
	mu    sync.Mutex
	stock map[int64]int64
}

func (f *ProductStockFake) DecrementStockClamped(ctx context.Context, productID int64, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.stock[productID]
	if !ok {
		return repo.ErrNotFound
	}
	cur -= qty
	if cur < 0 {
		cur = 0
	}
	f.stock[productID] = cur
	return nil
}

func TestOrderUsecase_UpdatePayment_StockNeverGoesNegative(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	adminUsers := new(AdminUserRepoMock)
	products := &ProductStockFake{stock: map[int64]int64{7: 3}}
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo, products: products}}

	order := model.Order{
		OrderNo: "VITA-10072",
		ProductsJSON: snapshotJSON(t, []model.LineItem{
			{ProductID: 7, Qty: 5},
		}),
	}
	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-10072").Return(order, nil)
	ordersRepo.On("UpdatePayment", mock.Anything, "VITA-10072", "pay_1", "rzp_1").Return(nil)
	adminUsers.On("ListNotifiableEmails", mock.Anything).Return([]string{}, nil)

	uc := newOrderUsecaseForTest(tx, adminUsers, &RendererFake{}, &NotifierFake{})

	//在庫3に対して数量5。決済確定は成功し、在庫は0で止まる
	err := uc.UpdatePayment(context.Background(), "VITA-10072", "pay_1", "rzp_1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), products.stock[7])
}

func TestOrderUsecase_UpdatePayment_NotFound(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	ordersRepo.On("FindByOrderNoForUpdate", mock.Anything, "VITA-404").Return(model.Order{}, repo.ErrNotFound)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	err := uc.UpdatePayment(context.Background(), "VITA-404", "pay_1", "rzp_1")
	assertErrContains(t, err, "not found")
}

// =====================
// Read tests
// =====================

func TestOrderUsecase_GetByOrderNo_ParsesSnapshot(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	order := model.Order{
		OrderNo: "VITA-10080",
		ProductsJSON: snapshotJSON(t, []model.LineItem{
			{ProductID: 7, Title: "Moringa Powder", Qty: 2},
		}),
	}
	ordersRepo.On("FindByOrderNo", mock.Anything, "VITA-10080").Return(order, nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	out, err := uc.GetByOrderNo(context.Background(), "VITA-10080")
	assert.NoError(t, err)
	assert.Len(t, out.Products, 1)
	assert.Equal(t, "Moringa Powder", out.Products[0].Title)
}

func TestOrderUsecase_GetByOrderNo_CorruptSnapshotIsEmptyList(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	order := model.Order{OrderNo: "VITA-10081", ProductsJSON: []byte("{oops")}
	ordersRepo.On("FindByOrderNo", mock.Anything, "VITA-10081").Return(order, nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	out, err := uc.GetByOrderNo(context.Background(), "VITA-10081")
	assert.NoError(t, err)
	assert.NotNil(t, out.Products)
	assert.Empty(t, out.Products)
}

func TestOrderUsecase_ListAll(t *testing.T) {
	ordersRepo := new(OrderRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: ordersRepo}}

	orders := make([]model.Order, 0, 3)
	for i := 0; i < 3; i++ {
		orders = append(orders, model.Order{OrderNo: fmt.Sprintf("VITA-1000%d", i+1)})
	}
	ordersRepo.On("ListAll", mock.Anything).Return(orders, nil)

	uc := newOrderUsecaseForTest(tx, new(AdminUserRepoMock), &RendererFake{}, &NotifierFake{})

	outs, err := uc.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, outs, 3)
}
