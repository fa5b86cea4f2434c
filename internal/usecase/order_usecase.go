package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/mailer"
	repo "app/internal/repository"

	"go.uber.org/zap"
)

// 注文番号の採番。カウンター行は初回に10000で作られるので最初はVITA-10001
const (
	orderCounterType = "ORDER"
	orderCounterBase = 10000
)

// 請求書PDFの生成。usecaseはinvoice.Composerの実装詳細を知らない
type InvoiceRenderer interface {
	Render(ctx context.Context, order model.Order) ([]byte, error)
}

// 通知はベストエフォート。エラーは返ってこない
type OrderNotifier interface {
	Notify(ctx context.Context, msg mailer.Message)
}

// 注文番号から請求書番号への変換（invoice.InvoiceNoFromOrderNo）
type InvoiceNoFunc func(orderNo string) string

type OrderUsecase struct {
	tx         repo.TransactionManager
	adminUsers repo.AdminUserRepository
	renderer   InvoiceRenderer
	notifier   OrderNotifier
	invoiceNo  InvoiceNoFunc
	feURL      string
	log        *zap.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	adminUsers repo.AdminUserRepository,
	renderer InvoiceRenderer,
	notifier OrderNotifier,
	invoiceNo InvoiceNoFunc,
	feURL string,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		adminUsers: adminUsers,
		renderer:   renderer,
		notifier:   notifier,
		invoiceNo:  invoiceNo,
		feURL:      feURL,
		log:        log,
	}
}

type CreatePendingItem struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Qty       int64   `json:"qty"`
	Weight    string  `json:"weight"`
	Units     string  `json:"units"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price"`
	Img       string  `json:"img"`
}

type CreatePendingInput struct {
	Name        string
	City        string
	State       string
	Country     string
	Address     string
	Pin         string
	Email       string
	Mobile      string
	Quantity    int64
	TotalAmount float64
	OrderDate   time.Time
	Products    []CreatePendingItem
}

type OrderItemOutput = model.LineItem

type OrderOutput struct {
	ID                int64             `json:"id"`
	OrderNo           string            `json:"order_no"`
	Name              string            `json:"name"`
	City              string            `json:"city"`
	State             string            `json:"state"`
	Country           string            `json:"country"`
	Address           string            `json:"address"`
	Pin               string            `json:"pin"`
	Email             string            `json:"email"`
	Mobile            string            `json:"mobile"`
	Quantity          int64             `json:"quantity"`
	TotalAmount       float64           `json:"total_amount"`
	OrderDate         time.Time         `json:"order_date"`
	Status            string            `json:"status"`
	PaymentStatus     string            `json:"payment_status"`
	RazorpayPaymentID *string           `json:"razorpay_payment_id"`
	RazorpayOrderID   *string           `json:"razorpay_order_id"`
	InvoiceNo         *string           `json:"invoice_no"`
	InvoiceDate       *time.Time        `json:"invoice_date"`
	Products          []OrderItemOutput `json:"products"`
	CreatedAt         time.Time         `json:"created_at"`
}

type UpdateStatusOutput struct {
	Status    string  `json:"status"`
	InvoiceNo *string `json:"invoice_no"`
}

// CreatePendingはPENDING/NOT_PAIDで注文を保存して注文番号を返す。
// 採番と行の挿入は同じトランザクション（番号を消費したのに注文が無い、は起きない）。
func (u *OrderUsecase) CreatePending(ctx context.Context, in CreatePendingInput) (string, error) {
	//必須チェック。足りない項目は全部まとめて返す
	missing := make([]string, 0, 7)
	for _, f := range []struct{ name, v string }{
		{"name", in.Name},
		{"address", in.Address},
		{"city", in.City},
		{"state", in.State},
		{"country", in.Country},
		{"pin", in.Pin},
		{"mobile", in.Mobile},
	} {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", NewHTTPError(http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
	}

	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	var orderNo string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		next, err := r.Counters().Next(ctx, orderCounterType, orderCounterBase)
		if err != nil {
			return mapRepoError(err)
		}
		orderNo = fmt.Sprintf("VITA-%d", next)

		//商品ごとに現在のHSNをスナップショットへ写す
		items := make([]model.LineItem, 0, len(in.Products))
		for _, p := range in.Products {
			item := model.LineItem{
				ProductID: p.ProductID,
				Title:     p.Title,
				Qty:       p.Qty,
				Weight:    p.Weight,
				Units:     p.Units,
				Price:     p.Price,
				SalePrice: p.SalePrice,
				Img:       p.Img,
			}
			if item.SalePrice == 0 {
				item.SalePrice = p.Price
			}

			prod, err := r.Products().FindByID(ctx, p.ProductID)
			if err == nil && prod.HSN != nil {
				item.HSN = *prod.HSN
			} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return mapRepoError(err)
			}

			items = append(items, item)
		}

		productsJSON, err := json.Marshal(items)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		order := model.Order{
			OrderNo:       orderNo,
			Name:          in.Name,
			City:          in.City,
			State:         in.State,
			Country:       in.Country,
			Address:       in.Address,
			Pin:           in.Pin,
			Email:         in.Email,
			Mobile:        in.Mobile,
			Quantity:      in.Quantity,
			TotalAmount:   in.TotalAmount,
			OrderDate:     orderDate,
			ProductsJSON:  productsJSON,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusNotPaid,
		}
		if len(in.Products) > 0 {
			order.Weight = in.Products[0].Weight
			order.Units = in.Products[0].Units
		}
		if order.Quantity <= 0 {
			order.Quantity = 1
		}

		if _, err := r.Orders().Create(ctx, order); err != nil {
			return mapRepoError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return orderNo, nil
}

var validStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:     true,
	model.OrderStatusOrderPlaced: true,
	model.OrderStatusShipped:     true,
	model.OrderStatusDelivered:   true,
}

// UpdateStatusはステータス遷移のワークフロー本体。
// 状態の更新はトランザクションでコミットしてから、請求書生成とメールを
// ベストエフォートで行う（副作用の失敗でコミット済みの遷移は巻き戻らない）。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderNo string, status string) (UpdateStatusOutput, error) {
	newStatus := model.OrderStatus(strings.TrimSpace(status))
	if !validStatuses[newStatus] {
		return UpdateStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if strings.TrimSpace(orderNo) == "" {
		return UpdateStatusOutput{}, NewHTTPError(http.StatusBadRequest, "order_no required")
	}

	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック。同じ注文の並行更新はここで直列化される
		o, err := r.Orders().FindByOrderNoForUpdate(ctx, orderNo)
		if err != nil {
			return mapRepoError(err)
		}

		invoiceNo := o.InvoiceNo
		var invoiceDate *time.Time

		//SHIPPEDへの遷移で未発番なら請求書番号を割り当てる。
		//すでに発番済みなら二度目の呼び出しでも書き換えない
		if newStatus == model.OrderStatusShipped && invoiceNo == nil {
			no := u.invoiceNo(o.OrderNo)
			now := time.Now()
			invoiceNo = &no
			invoiceDate = &now
		}

		if err := r.Orders().UpdateStatus(ctx, orderNo, newStatus, invoiceNo, invoiceDate); err != nil {
			return mapRepoError(err)
		}

		o.Status = newStatus
		o.InvoiceNo = invoiceNo
		if invoiceDate != nil {
			o.InvoiceDate = invoiceDate
		}
		order = o
		return nil
	})
	if err != nil {
		return UpdateStatusOutput{}, err
	}

	//ここから先は副作用。コミット済みなので失敗してもログだけ
	var attachments []mailer.Attachment
	if newStatus == model.OrderStatusShipped {
		pdf, err := u.renderer.Render(ctx, order)
		if err != nil {
			//請求書は後から再生成できる。通知は添付なしで出す
			u.log.Error("invoice render failed",
				zap.String("order_no", orderNo), zap.Error(err))
		} else if order.InvoiceNo != nil {
			attachments = append(attachments, mailer.Attachment{
				Filename: *order.InvoiceNo + ".pdf",
				Content:  pdf,
			})
		}
	}

	subject := fmt.Sprintf("Order %s: %s", orderNo, newStatus)

	if order.Email != "" {
		u.notifier.Notify(ctx, mailer.Message{
			To:          []string{order.Email},
			Subject:     subject,
			HTML:        fmt.Sprintf("<h3>Your order %s has been %s</h3>", orderNo, newStatus),
			Attachments: attachments,
		})
	}

	staff, err := u.adminUsers.ListNotifiableEmails(ctx)
	if err != nil {
		u.log.Warn("staff email lookup failed", zap.Error(err))
	}
	if len(staff) > 0 {
		u.notifier.Notify(ctx, mailer.Message{
			Bcc:         staff,
			Subject:     subject,
			HTML:        fmt.Sprintf("<h3>Order %s status changed to %s</h3>", orderNo, newStatus),
			Attachments: attachments,
		})
	}

	return UpdateStatusOutput{Status: string(newStatus), InvoiceNo: order.InvoiceNo}, nil
}

// UpdatePaymentは決済確定。PAID/ORDER_PLACEDにして在庫を引き落とす。
// 在庫は0で打ち止め（別注文と競合しても負にはならない。売り越しは許容）。
func (u *OrderUsecase) UpdatePayment(ctx context.Context, orderNo string, paymentID string, gatewayOrderID string) error {
	if strings.TrimSpace(orderNo) == "" {
		return NewHTTPError(http.StatusBadRequest, "order_no required")
	}

	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByOrderNoForUpdate(ctx, orderNo)
		if err != nil {
			return mapRepoError(err)
		}

		if err := r.Orders().UpdatePayment(ctx, orderNo, paymentID, gatewayOrderID); err != nil {
			return mapRepoError(err)
		}

		for _, item := range o.LineItems() {
			qty := item.Qty
			if qty <= 0 {
				qty = 1
			}
			err := r.Products().DecrementStockClamped(ctx, item.ProductID, qty)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return mapRepoError(err)
			}
		}

		o.PaymentStatus = model.PaymentStatusPaid
		o.Status = model.OrderStatusOrderPlaced
		order = o
		return nil
	})
	if err != nil {
		return err
	}

	//通知（ベストエフォート）
	if order.Email != "" {
		u.notifier.Notify(ctx, mailer.Message{
			To:      []string{order.Email},
			Subject: fmt.Sprintf("Payment Confirmed: %s", orderNo),
			HTML: fmt.Sprintf(
				"<h2>Payment Confirmed</h2><p>Hi %s,</p><p>Your payment of &#8377;%.2f has been successfully received for order <strong>%s</strong>.</p><p>We will notify you when your order is shipped.</p><p><a href=\"%s/orders/%s\">View Order</a></p>",
				order.Name, order.TotalAmount, orderNo, u.feURL, orderNo),
		})
	}

	staff, err := u.adminUsers.ListNotifiableEmails(ctx)
	if err != nil {
		u.log.Warn("staff email lookup failed", zap.Error(err))
	}
	if len(staff) > 0 {
		u.notifier.Notify(ctx, mailer.Message{
			Bcc:     staff,
			Subject: fmt.Sprintf("New Paid Order: %s", orderNo),
			HTML: fmt.Sprintf(
				"<h2>New Paid Order</h2><p>Order <strong>%s</strong> has been paid by %s (&#8377;%.2f).</p><p><a href=\"%s/admin/orders/%s\">View Order</a></p>",
				orderNo, order.Name, order.TotalAmount, u.feURL, orderNo),
		})
	}

	return nil
}

func (u *OrderUsecase) GetByOrderNo(ctx context.Context, orderNo string) (OrderOutput, error) {
	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByOrderNo(ctx, orderNo)
		if err != nil {
			return mapRepoError(err)
		}
		out = toOrderOutput(o)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetByID(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return mapRepoError(err)
		}
		out = toOrderOutput(o)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListAll(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return mapRepoError(err)
		}
		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	items := o.LineItems()
	if items == nil {
		items = []model.LineItem{}
	}
	return OrderOutput{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		Name:              o.Name,
		City:              o.City,
		State:             o.State,
		Country:           o.Country,
		Address:           o.Address,
		Pin:               o.Pin,
		Email:             o.Email,
		Mobile:            o.Mobile,
		Quantity:          o.Quantity,
		TotalAmount:       o.TotalAmount,
		OrderDate:         o.OrderDate,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		RazorpayPaymentID: o.RazorpayPaymentID,
		RazorpayOrderID:   o.RazorpayOrderID,
		InvoiceNo:         o.InvoiceNo,
		InvoiceDate:       o.InvoiceDate,
		Products:          items,
		CreatedAt:         o.CreatedAt,
	}
}
