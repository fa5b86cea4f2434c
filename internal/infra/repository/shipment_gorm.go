package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ShipmentGormRepository struct {
	db *gorm.DB
}

func NewShipmentGormRepository(db *gorm.DB) *ShipmentGormRepository {
	return &ShipmentGormRepository{db: db}
}

func (r *ShipmentGormRepository) Create(ctx context.Context, s model.Shipment) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (r *ShipmentGormRepository) FindByID(ctx context.Context, id int64) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) FindByOrderNo(ctx context.Context, orderNo string) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

// 注文側のinvoice_no等をLEFT JOINで載せる
func (r *ShipmentGormRepository) ListWithOrder(ctx context.Context) ([]repo.ShipmentWithOrder, error) {
	var items []repo.ShipmentWithOrder
	err := r.db.WithContext(ctx).
		Model(&model.Shipment{}).
		Select("shipments.*, orders.invoice_no AS invoice_no, orders.order_date AS order_order_date, orders.total_amount AS order_total_amount").
		Joins("LEFT JOIN orders ON orders.order_no = shipments.order_no").
		Order("shipments.id desc").
		Find(&items).Error
	if err != nil {
		return []repo.ShipmentWithOrder{}, err
	}
	return items, nil
}

func (r *ShipmentGormRepository) Update(ctx context.Context, s model.Shipment) error {
	res := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"waybill":          s.Waybill,
			"weight":           s.Weight,
			"shipment_length":  s.ShipmentLength,
			"shipment_breadth": s.ShipmentBreadth,
			"shipment_height":  s.ShipmentHeight,
			"payment_mode":     s.PaymentMode,
			"cod_amount":       s.CODAmount,
			"products_desc":    s.ProductsDesc,
			"shipping_mode":    s.ShippingMode,
			"fragile_item":     s.FragileItem,
			"ship_date":        s.ShipDate,
			"barcode_value":    s.BarcodeValue,
			"barcode_image":    s.BarcodeImage,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShipmentGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Shipment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
