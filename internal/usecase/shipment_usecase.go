package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ShipmentUsecase struct {
	shipments repo.ShipmentRepository
	orders    repo.OrderRepository
}

func NewShipmentUsecase(shipments repo.ShipmentRepository, orders repo.OrderRepository) *ShipmentUsecase {
	return &ShipmentUsecase{shipments: shipments, orders: orders}
}

type ShipmentInput struct {
	OrderNo string `json:"order_no"`

	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Address string `json:"address"`
	Pin     string `json:"pin"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile"`

	Quantity    int64      `json:"quantity"`
	TotalAmount float64    `json:"total_amount"`
	OrderDate   *time.Time `json:"order_date"`

	Waybill         string     `json:"waybill"`
	Weight          string     `json:"weight"`
	ShipmentLength  float64    `json:"shipment_length"`
	ShipmentBreadth float64    `json:"shipment_breadth"`
	ShipmentHeight  float64    `json:"shipment_height"`
	PaymentMode     string     `json:"payment_mode"`
	CODAmount       float64    `json:"cod_amount"`
	ProductsDesc    string     `json:"products_desc"`
	ShippingMode    string     `json:"shipping_mode"`
	FragileItem     bool       `json:"fragile_item"`
	ShipDate        *time.Time `json:"ship_date"`
	BarcodeValue    *string    `json:"barcode_value"`
	BarcodeImage    *string    `json:"barcode_image"`
}

// Createは配送票を登録する。注文が存在しない伝票は作れない。
// 宛先が空なら注文側の住所を写す。
func (u *ShipmentUsecase) Create(ctx context.Context, in ShipmentInput) (int64, error) {
	if strings.TrimSpace(in.OrderNo) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "order_no required")
	}

	order, err := u.orders.FindByOrderNo(ctx, in.OrderNo)
	if err != nil {
		return 0, mapRepoError(err)
	}

	s := u.fromInput(in)
	if s.Name == "" {
		s.Name = order.Name
		s.City = order.City
		s.State = order.State
		s.Country = order.Country
		s.Address = order.Address
		s.Pin = order.Pin
		s.Mobile = order.Mobile
	}
	if s.Quantity == 0 {
		s.Quantity = order.Quantity
	}
	if s.TotalAmount == 0 {
		s.TotalAmount = order.TotalAmount
	}
	if s.OrderDate == nil {
		d := order.OrderDate
		s.OrderDate = &d
	}

	id, err := u.shipments.Create(ctx, s)
	if err != nil {
		return 0, mapRepoError(err)
	}
	return id, nil
}

func (u *ShipmentUsecase) Get(ctx context.Context, id int64) (model.Shipment, error) {
	if id <= 0 {
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s, err := u.shipments.FindByID(ctx, id)
	if err != nil {
		return model.Shipment{}, mapRepoError(err)
	}
	return s, nil
}

func (u *ShipmentUsecase) GetByOrderNo(ctx context.Context, orderNo string) (model.Shipment, error) {
	if strings.TrimSpace(orderNo) == "" {
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "order_no required")
	}
	s, err := u.shipments.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return model.Shipment{}, mapRepoError(err)
	}
	return s, nil
}

func (u *ShipmentUsecase) ListAll(ctx context.Context) ([]repo.ShipmentWithOrder, error) {
	list, err := u.shipments.ListWithOrder(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if list == nil {
		list = []repo.ShipmentWithOrder{}
	}
	return list, nil
}

func (u *ShipmentUsecase) Update(ctx context.Context, id int64, in ShipmentInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := u.shipments.FindByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	s := u.fromInput(in)
	s.ID = id
	if s.OrderNo == "" {
		s.OrderNo = existing.OrderNo
	}
	s.CreatedAt = existing.CreatedAt

	if err := u.shipments.Update(ctx, s); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (u *ShipmentUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.shipments.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (u *ShipmentUsecase) fromInput(in ShipmentInput) model.Shipment {
	return model.Shipment{
		OrderNo:         strings.TrimSpace(in.OrderNo),
		Name:            in.Name,
		City:            in.City,
		State:           in.State,
		Country:         in.Country,
		Address:         in.Address,
		Pin:             in.Pin,
		Phone:           in.Phone,
		Mobile:          in.Mobile,
		Quantity:        in.Quantity,
		TotalAmount:     in.TotalAmount,
		OrderDate:       in.OrderDate,
		Waybill:         in.Waybill,
		Weight:          in.Weight,
		ShipmentLength:  in.ShipmentLength,
		ShipmentBreadth: in.ShipmentBreadth,
		ShipmentHeight:  in.ShipmentHeight,
		PaymentMode:     in.PaymentMode,
		CODAmount:       in.CODAmount,
		ProductsDesc:    in.ProductsDesc,
		ShippingMode:    in.ShippingMode,
		FragileItem:     in.FragileItem,
		ShipDate:        in.ShipDate,
		BarcodeValue:    in.BarcodeValue,
		BarcodeImage:    in.BarcodeImage,
	}
}
