package usecase

import (
	"context"
	"sync"

	"github.com/LavaJover/shvark-mpesa-service/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[int64]*domain.Order
	markCalls int
	getErr    error
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[int64]*domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, orderID int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetUserOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	o, err := r.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) MarkOrderPaid(_ context.Context, orderID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	o, ok := r.orders[orderID]
	if !ok || o.IsPaid() || !o.PaidByMpesa() {
		return false, nil
	}
	o.PaymentStatus = domain.PaymentStatusPaid
	return true, nil
}

func (r *fakeOrderRepo) status(orderID int64) domain.PaymentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[orderID].PaymentStatus
}

type fakeTransactionRepo struct {
	mu        sync.Mutex
	nextID    int64
	txns      []*domain.PaymentTransaction
	updates   int
	updateErr error
}

func (r *fakeTransactionRepo) CreateTransaction(_ context.Context, txn *domain.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	txn.ID = r.nextID
	cp := *txn
	r.txns = append(r.txns, &cp)
	return nil
}

func (r *fakeTransactionRepo) GetByCheckoutRequestID(_ context.Context, id string) (*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.CheckoutRequestID != nil && *t.CheckoutRequestID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) GetLatestByMerchantRequestID(_ context.Context, id string) (*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.txns) - 1; i >= 0; i-- {
		t := r.txns[i]
		if t.MerchantRequestID != nil && *t.MerchantRequestID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) GetLatestByOrderID(_ context.Context, orderID int64) (*domain.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.txns) - 1; i >= 0; i-- {
		if r.txns[i].OrderID == orderID {
			cp := *r.txns[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) UpdateResult(_ context.Context, txnID int64, result domain.TransactionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	t := r.find(txnID)
	if t == nil {
		return domain.ErrTransactionNotFound
	}
	r.updates++
	t.Status = result.Status
	t.ResultCode = result.ResultCode
	t.ResultDesc = result.ResultDesc
	t.MpesaReceiptNumber = result.MpesaReceiptNumber
	t.RawCallback = result.RawCallback
	return nil
}

func (r *fakeTransactionRepo) find(id int64) *domain.PaymentTransaction {
	for _, t := range r.txns {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (r *fakeTransactionRepo) get(id int64) domain.PaymentTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.find(id)
}

func (r *fakeTransactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.txns)
}

type fakeGateway struct {
	pushFn    func(ctx context.Context, req domain.StkPushRequest) (*domain.StkPushResult, error)
	lastPush  domain.StkPushRequest
	pushCalls int
}

func (g *fakeGateway) NormalizePhone(raw string) string {
	if len(raw) > 0 && raw[0] == '0' {
		return "254" + raw[1:]
	}
	return raw
}

func (g *fakeGateway) PushPayment(ctx context.Context, req domain.StkPushRequest) (*domain.StkPushResult, error) {
	g.pushCalls++
	g.lastPush = req
	if g.pushFn != nil {
		return g.pushFn(ctx, req)
	}
	return &domain.StkPushResult{
		RequestBody: []byte(`{"Amount":1000}`),
		Response: domain.StkPushResponse{
			MerchantRequestID: "m-1",
			CheckoutRequestID: "ws_CO_1",
			ResponseCode:      "0",
		},
	}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.Message
}

func (p *fakePublisher) Publish(_ context.Context, msgs ...domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, msgs...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) messages() []domain.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Message(nil), p.events...)
}

type fakeCallbackLogger struct {
	mu      sync.Mutex
	entries []domain.CallbackLog
}

func (l *fakeCallbackLogger) LogCallback(_ context.Context, entry domain.CallbackLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func mpesaOrder(id, userID int64, total string) *domain.Order {
	return &domain.Order{
		ID:            id,
		UserID:        userID,
		Total:         decimal.RequireFromString(total),
		Status:        "pending",
		PaymentMethod: domain.PaymentMethodMpesa,
		PaymentStatus: domain.PaymentStatusPending,
	}
}
