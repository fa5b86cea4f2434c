package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListByStatus(ctx context.Context, status string) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	// アクティブ商品数（ダッシュボード用）
	CountByStatus(ctx context.Context, status string) (int64, error)

	// 在庫減算。0で打ち止め（マイナスにはしない）
	DecrementStockClamped(ctx context.Context, productID int64, qty int64) error
}
